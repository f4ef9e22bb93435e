/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package pipeline

import (
	"context"
	"fmt"

	"github.com/charleseiq/eiq-manager-tools/internal/domain"
	"github.com/charleseiq/eiq-manager-tools/internal/report"
	"github.com/charleseiq/eiq-manager-tools/internal/resolve"
)

// RunPackage assembles the final review package for one user and period from
// whatever sources exist on disk. Absent sources fall through; the package is
// always produced, with explicit placeholders when nothing covers a section.
func RunPackage(ctx context.Context, env Env, user domain.User, period domain.Period) error {
	if err := ctx.Err(); err != nil { return err }
	slug := resolve.Slug(user)

	notes, err := readNotes(env.Cfg.NotesDir, slug)
	if err != nil { return err }

	src := report.PackageSources{
		HumanNotes: notes,
		Reports:    map[domain.Tool]string{},
	}
	for _, tool := range []domain.Tool{domain.ToolGitHub, domain.ToolJira, domain.ToolGDocs, domain.ToolNotes} {
		path := report.Path(env.Cfg.ReportsDir, slug, period.Key, tool)
		if !env.Out.Exists(path) { continue }
		data, err := env.Out.ReadFile(path)
		if err != nil { return fmt.Errorf("reading %s: %w", path, err) }
		if tool == domain.ToolNotes {
			src.NotesAnalysis = string(data)
		}
		src.Reports[tool] = string(data)
	}

	doc := report.BuildPackage(user, period, src)
	path := report.PackagePath(env.Cfg.ReportsDir, slug, period.Key)
	if err := report.Write(env.Out, path, doc); err != nil { return err }
	fmt.Println(path)
	env.Log.Info().Str("user", slug).Str("path", path).Msg("review package written")
	return nil
}
