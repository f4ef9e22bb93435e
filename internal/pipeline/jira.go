/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package pipeline

import (
	"context"

	"github.com/charleseiq/eiq-manager-tools/internal/adapters/jira"
	"github.com/charleseiq/eiq-manager-tools/internal/domain"
)

// JiraFetcher is the slice of the JIRA adapter this pipeline needs.
type JiraFetcher interface {
	FetchActivity(ctx context.Context, assignee string, period domain.Period) (*jira.Activity, error)
}

// RunJira produces reports/<slug>/<period>/jira-analysis.md. Sprint metrics
// and the epic allocation table are computed locally and rendered verbatim;
// only the qualitative assessment comes from the analyzer.
func RunJira(ctx context.Context, env Env, fetcher JiraFetcher, user domain.User, period domain.Period) error {
	assignee := user.Email
	if assignee == "" { assignee = user.Username }

	var (
		activity *jira.Activity
		analysis string
	)
	steps := []Step{
		{Name: "fetch jira activity", Run: func(ctx context.Context) error {
			var err error
			activity, err = fetcher.FetchActivity(ctx, assignee, period)
			return err
		}},
		{Name: "analyze delivery", Run: func(ctx context.Context) error {
			digest := jiraDigest(activity) +
				"\n\n### Computed sprint metrics\n\n" + sprintMetricsMarkdown(activity.Metrics) +
				"\n\n### Computed epic allocation\n\n" + epicAllocationMarkdown(activity.Metrics, activity.Epics)
			raw, err := env.LLM.Generate(ctx, jiraSystem, buildPrompt(user, period, digest, ""))
			if err != nil { return err }
			analysis = stripAnalysis(raw)
			return nil
		}},
		{Name: "render report", Run: func(ctx context.Context) error {
			values := headerValues(user, assignee, period)
			values["sprint_metrics"] = sprintMetricsMarkdown(activity.Metrics)
			values["epic_allocation"] = epicAllocationMarkdown(activity.Metrics, activity.Epics)
			values["analysis"] = analysis
			return finishReport(env, jiraTemplate, values, user, period, domain.ToolJira)
		}},
	}
	return runSteps(ctx, env.Log, steps)
}
