/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */

// Package pipeline composes the per-tool analysis runs. Each run is an
// ordered list of fallible steps (fetch, analyze, render, write) executed
// sequentially; the first failing step aborts the run for that user.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/charleseiq/eiq-manager-tools/internal/analyze"
	"github.com/charleseiq/eiq-manager-tools/internal/config"
	"github.com/charleseiq/eiq-manager-tools/internal/domain"
	"github.com/charleseiq/eiq-manager-tools/internal/report"
	"github.com/charleseiq/eiq-manager-tools/internal/resolve"
)

// Env carries the shared collaborators of every pipeline. Out and LLM are
// interfaces so tests can run pipelines against an in-memory tree and a
// canned analyzer.
type Env struct {
	Cfg *config.Config
	Log zerolog.Logger
	Out report.Writer
	LLM analyze.Analyzer
}

// Step is one named fallible stage of a run.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

var stepColor = color.New(color.FgCyan)

// runSteps executes steps in order and short-circuits on the first error,
// wrapping it with the step name. Cancellation is checked between steps so
// an interrupted batch stops at a step boundary.
func runSteps(ctx context.Context, log zerolog.Logger, steps []Step) error {
	for _, s := range steps {
		if err := ctx.Err(); err != nil { return err }
		stepColor.Fprintf(os.Stderr, "  -> %s\n", s.Name)
		log.Debug().Str("step", s.Name).Msg("step start")
		if err := s.Run(ctx); err != nil {
			return fmt.Errorf("%s: %w", s.Name, err)
		}
	}
	return nil
}

// finishReport validates the analyzer's output against the tool template,
// persists the rendered report, and prints its path on stdout.
func finishReport(env Env, tpl *report.Template, values map[string]string, user domain.User, period domain.Period, tool domain.Tool) error {
	doc, err := tpl.Render(values)
	if err != nil { return err }
	if err := report.CheckFilled(doc); err != nil { return err }

	path := report.Path(env.Cfg.ReportsDir, resolve.Slug(user), period.Key, tool)
	if err := report.Write(env.Out, path, doc); err != nil { return err }
	fmt.Println(path)
	env.Log.Info().Str("user", resolve.Slug(user)).Str("tool", string(tool)).Str("path", path).Msg("report written")
	return nil
}

// stripAnalysis normalizes raw model output before it is slotted into a
// template. Models occasionally wrap the whole response in a markdown fence.
func stripAnalysis(raw string) string {
	return strings.TrimSpace(report.StripFences(raw))
}

// orDash fills optional header slots so rendered reports never carry empty
// bold labels.
func orDash(s string) string {
	if s == "" { return "-" }
	return s
}
