/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package pipeline

import (
	"context"
	"fmt"

	"github.com/charleseiq/eiq-manager-tools/internal/adapters/github"
	"github.com/charleseiq/eiq-manager-tools/internal/domain"
)

// GitHubFetcher is the slice of the GitHub adapter this pipeline needs.
type GitHubFetcher interface {
	FetchActivity(ctx context.Context, username string, period domain.Period) (*github.Activity, error)
}

// RunGitHub produces reports/<slug>/<period>/github-review-analysis.md. A
// period with zero PR activity still renders a report; the analyzer states
// the absence rather than failing the run.
func RunGitHub(ctx context.Context, env Env, fetcher GitHubFetcher, user domain.User, period domain.Period) error {
	var (
		activity *github.Activity
		analysis string
	)
	steps := []Step{
		{Name: "fetch github activity", Run: func(ctx context.Context) error {
			var err error
			activity, err = fetcher.FetchActivity(ctx, user.Username, period)
			return err
		}},
		{Name: "analyze review quality", Run: func(ctx context.Context) error {
			prompt := buildPrompt(user, period, githubDigest(activity, user.Username), "")
			raw, err := env.LLM.Generate(ctx, githubSystem, prompt)
			if err != nil { return err }
			analysis = stripAnalysis(raw)
			return nil
		}},
		{Name: "render report", Run: func(ctx context.Context) error {
			values := headerValues(user, user.Username, period)
			values["activity_overview"] = fmt.Sprintf("PRs reviewed: %d  \nPRs authored: %d", len(activity.Reviewed), len(activity.Authored))
			values["analysis"] = analysis
			return finishReport(env, githubTemplate, values, user, period, domain.ToolGitHub)
		}},
	}
	return runSteps(ctx, env.Log, steps)
}
