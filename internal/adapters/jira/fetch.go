/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package jira

import (
	"context"
	"errors"

	"github.com/charleseiq/eiq-manager-tools/internal/domain"
)

// ErrNoProject is returned before any network call when the project key is
// unset: without it the JQL query is unbounded and the instance rejects it.
var ErrNoProject = errors.New("jira: project key required, set JIRA_PROJECT")

// Activity is everything the sprint analysis consumes for one user/window.
type Activity struct {
	Issues   []domain.Issue
	Sprints  []domain.Sprint
	Worklogs []domain.Worklog
	Epics    []domain.Epic
	Metrics  []domain.SprintMetrics
}

// FetchActivity pulls the user's issues for the window and derives sprints,
// worklogs, epic names, and sprint metrics from them. Individual issue or
// worklog fetch failures are logged and skipped; the search itself failing is
// fatal.
func (c *Client) FetchActivity(ctx context.Context, assignee string, period domain.Period) (*Activity, error) {
	if c.project == "" { return nil, ErrNoProject }
	if assignee == "" { return nil, errors.New("jira: empty assignee") }

	jql := BuildJQL(c.project, assignee, period.Start.Format("2006-01-02"), period.End.Format("2006-01-02"))
	c.log.Debug().Str("jql", jql).Msg("jira search")
	keys, err := c.SearchKeys(ctx, jql)
	if err != nil { return nil, err }
	c.log.Info().Int("issues", len(keys)).Msg("jira search done")

	act := &Activity{}
	var raws []map[string]any
	for _, key := range keys {
		raw, err := c.Issue(ctx, key)
		if err != nil {
			c.log.Warn().Str("issue", key).Err(err).Msg("skip issue")
			continue
		}
		raws = append(raws, raw)
		act.Issues = append(act.Issues, ParseIssue(raw))
	}

	act.Sprints = ExtractSprints(raws, period)

	for _, iss := range act.Issues {
		raw, err := c.Worklogs(ctx, iss.Key)
		if err != nil {
			c.log.Warn().Str("issue", iss.Key).Err(err).Msg("skip worklogs")
			continue
		}
		act.Worklogs = append(act.Worklogs, ParseWorklogs(iss.Key, raw)...)
	}

	for _, key := range EpicKeys(act.Issues) {
		name := key
		if raw, err := c.Issue(ctx, key); err == nil {
			if fields, _ := raw["fields"].(map[string]any); fields != nil {
				if s, _ := fields["summary"].(string); s != "" { name = s }
			}
		} else {
			c.log.Warn().Str("epic", key).Err(err).Msg("epic name unavailable")
		}
		act.Epics = append(act.Epics, domain.Epic{Key: key, Name: name})
	}

	act.Metrics = ComputeMetrics(act.Sprints, act.Issues)
	return act, nil
}
