/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charleseiq/eiq-manager-tools/internal/analyze"
	"github.com/charleseiq/eiq-manager-tools/internal/domain"
	"github.com/charleseiq/eiq-manager-tools/internal/resolve"
)

// readNotes concatenates every markdown or text file under
// notes/<slug>/, in filename order, with a heading per file. A missing
// directory is not an error; there are simply no notes yet.
func readNotes(notesDir, slug string) (string, error) {
	dir := filepath.Join(notesDir, slug)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) { return "", nil }
	if err != nil { return "", fmt.Errorf("reading notes dir %s: %w", dir, err) }

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() { continue }
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".md" && ext != ".txt" { continue }
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil { return "", fmt.Errorf("reading notes file %s: %w", name, err) }
		text := strings.TrimSpace(string(data))
		if text == "" { continue }
		fmt.Fprintf(&b, "### %s\n\n%s\n\n", name, text)
	}
	return strings.TrimSpace(b.String()), nil
}

// RunNotes produces reports/<slug>/<period>/notes-analysis.md from the
// free-form observation notes under notes/<slug>/. A user with no notes
// still gets a report saying so.
func RunNotes(ctx context.Context, env Env, user domain.User, period domain.Period) error {
	var (
		notes    string
		analysis string
	)
	steps := []Step{
		{Name: "read notes", Run: func(ctx context.Context) error {
			var err error
			notes, err = readNotes(env.Cfg.NotesDir, resolve.Slug(user))
			return err
		}},
		{Name: "analyze notes", Run: func(ctx context.Context) error {
			digest := analyze.Scrub(notes)
			if digest == "" {
				digest = "No observation notes were recorded for this period."
			}
			raw, err := env.LLM.Generate(ctx, notesSystem, buildPrompt(user, period, digest, ""))
			if err != nil { return err }
			analysis = stripAnalysis(raw)
			return nil
		}},
		{Name: "render report", Run: func(ctx context.Context) error {
			values := headerValues(user, user.Username, period)
			values["analysis"] = analysis
			return finishReport(env, notesTemplate, values, user, period, domain.ToolNotes)
		}},
	}
	return runSteps(ctx, env.Log, steps)
}
