/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package pipeline

import (
	"context"
	"path/filepath"

	"github.com/charleseiq/eiq-manager-tools/internal/adapters/gdrive"
	"github.com/charleseiq/eiq-manager-tools/internal/domain"
	"github.com/charleseiq/eiq-manager-tools/internal/ladder"
	"github.com/charleseiq/eiq-manager-tools/internal/report"
	"github.com/charleseiq/eiq-manager-tools/internal/resolve"
)

// DocsFetcher is the slice of the Drive adapter this pipeline needs.
type DocsFetcher interface {
	ListOwnedDocs(ctx context.Context, ownerEmail string, period domain.Period) ([]domain.Document, error)
	ExportMarkdown(ctx context.Context, docID string) (string, error)
	FetchComments(ctx context.Context, docID string) ([]domain.DocComment, error)
}

// RunGDocs produces reports/<slug>/<period>/gdocs-analysis.md and exports
// each analyzed document under the period's artifacts/ directory so the
// report's evidence can be read offline. When the user has a configured
// level, the career ladder criteria for that level and the next are added
// to the analyzer prompt.
func RunGDocs(ctx context.Context, env Env, fetcher DocsFetcher, user domain.User, period domain.Period) error {
	var (
		docs     []domain.Document
		analysis string
	)
	steps := []Step{
		{Name: "list owned documents", Run: func(ctx context.Context) error {
			var err error
			docs, err = fetcher.ListOwnedDocs(ctx, user.Email, period)
			return err
		}},
		{Name: "export documents", Run: func(ctx context.Context) error {
			dir := report.ArtifactsDir(env.Cfg.ReportsDir, resolve.Slug(user), period.Key)
			for i := range docs {
				md, err := fetcher.ExportMarkdown(ctx, docs[i].ID)
				if err != nil {
					env.Log.Warn().Err(err).Str("doc", docs[i].Title).Msg("export failed, skipping document")
					continue
				}
				docs[i].Markdown = md
				if comments, err := fetcher.FetchComments(ctx, docs[i].ID); err != nil {
					env.Log.Warn().Err(err).Str("doc", docs[i].Title).Msg("comment fetch failed")
				} else {
					docs[i].Comments = comments
				}
				name := gdrive.SafeFileName(docs[i].Title) + ".md"
				if err := env.Out.WriteFile(filepath.Join(dir, name), []byte(md)); err != nil {
					return err
				}
			}
			return nil
		}},
		{Name: "analyze documents", Run: func(ctx context.Context) error {
			criteria := ""
			if user.Level != "" {
				matrix, err := ladder.Load(env.Cfg.LadderFile)
				if err != nil { return err }
				criteria = matrix.FormatForPrompt(user.Level)
			}
			raw, err := env.LLM.Generate(ctx, gdocsSystem, buildPrompt(user, period, gdocsDigest(docs), criteria))
			if err != nil { return err }
			analysis = stripAnalysis(raw)
			return nil
		}},
		{Name: "render report", Run: func(ctx context.Context) error {
			values := headerValues(user, user.Email, period)
			values["documents"] = docListMarkdown(docs)
			values["analysis"] = analysis
			return finishReport(env, gdocsTemplate, values, user, period, domain.ToolGDocs)
		}},
	}
	return runSteps(ctx, env.Log, steps)
}
