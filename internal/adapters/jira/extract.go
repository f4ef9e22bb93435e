/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package jira

import (
	"strings"
	"time"

	"github.com/charleseiq/eiq-manager-tools/internal/domain"
)

// Atlassian cloud custom fields: sprint membership and story points.
const (
	sprintField = "customfield_10020"
	pointsField = "customfield_10033"
)

// ParseIssue maps one raw /issue payload to the domain type.
func ParseIssue(raw map[string]any) domain.Issue {
	iss := domain.Issue{}
	iss.Key, _ = raw["key"].(string)
	fields, _ := raw["fields"].(map[string]any)
	if fields == nil { return iss }

	iss.Summary, _ = fields["summary"].(string)
	iss.Description = ADFText(fields["description"])
	iss.Type = nestedName(fields, "issuetype")
	iss.Status = nestedName(fields, "status")
	iss.Priority = nestedName(fields, "priority")
	iss.EpicKey = epicKey(iss.Key, fields)

	if pts, ok := fields[pointsField].(float64); ok { iss.StoryPoints = pts }
	if v, ok := fields["timespent"].(float64); ok { iss.TimeSpent = int(v) }
	if v, ok := fields["timeoriginalestimate"].(float64); ok { iss.TimeEstim = int(v) }

	iss.CreatedAt = parseTime(fields["created"])
	iss.UpdatedAt = parseTime(fields["updated"])
	iss.ResolvedAt = parseTime(fields["resolutiondate"])

	for _, s := range sprintEntries(fields) {
		if id, ok := s["id"].(float64); ok { iss.SprintIDs = append(iss.SprintIDs, int64(id)) }
	}
	return iss
}

// ExtractSprints collects the distinct sprints referenced by the issues'
// sprint field, keeping only those overlapping the window.
func ExtractSprints(raws []map[string]any, period domain.Period) []domain.Sprint {
	seen := map[int64]bool{}
	var out []domain.Sprint
	for _, raw := range raws {
		fields, _ := raw["fields"].(map[string]any)
		if fields == nil { continue }
		for _, s := range sprintEntries(fields) {
			id, ok := s["id"].(float64)
			if !ok || seen[int64(id)] { continue }
			seen[int64(id)] = true
			sp := domain.Sprint{ID: int64(id)}
			sp.Name, _ = s["name"].(string)
			sp.State, _ = s["state"].(string)
			sp.Start = parseTime(s["startDate"])
			sp.End = parseTime(s["endDate"])
			if sp.Start == nil || sp.End == nil { continue }
			if sp.Start.After(period.End) || sp.End.Before(period.Start) { continue }
			out = append(out, sp)
		}
	}
	return out
}

// ParseWorklogs maps one /worklog payload to domain entries.
func ParseWorklogs(issueKey string, raw map[string]any) []domain.Worklog {
	entries, _ := raw["worklogs"].([]any)
	var out []domain.Worklog
	for _, e0 := range entries {
		e, _ := e0.(map[string]any)
		if e == nil { continue }
		wl := domain.Worklog{IssueKey: issueKey}
		if a, _ := e["author"].(map[string]any); a != nil { wl.Author, _ = a["displayName"].(string) }
		if t := parseTime(e["started"]); t != nil { wl.StartedAt = *t }
		if v, ok := e["timeSpentSeconds"].(float64); ok { wl.Seconds = int(v) }
		out = append(out, wl)
	}
	return out
}

// ADFText flattens an Atlassian Document Format tree (v3 descriptions and
// comments) to plain text.
func ADFText(v any) string {
	node, _ := v.(map[string]any)
	if node == nil { return "" }
	var parts []string
	var walk func(any)
	walk = func(item any) {
		m, _ := item.(map[string]any)
		if m == nil { return }
		if t, _ := m["type"].(string); t == "text" {
			if s, _ := m["text"].(string); s != "" { parts = append(parts, s) }
			return
		}
		if content, ok := m["content"].([]any); ok {
			for _, c := range content { walk(c) }
		}
	}
	if content, ok := node["content"].([]any); ok {
		for _, c := range content { walk(c) }
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// epicKey resolves the issue's epic: its parent when present, itself when the
// issue is an epic, otherwise empty.
func epicKey(selfKey string, fields map[string]any) string {
	if parent, _ := fields["parent"].(map[string]any); parent != nil {
		if k, _ := parent["key"].(string); k != "" { return k }
	}
	if strings.EqualFold(nestedName(fields, "issuetype"), "epic") { return selfKey }
	return ""
}

func sprintEntries(fields map[string]any) []map[string]any {
	list, _ := fields[sprintField].([]any)
	var out []map[string]any
	for _, s0 := range list {
		if s, _ := s0.(map[string]any); s != nil { out = append(out, s) }
	}
	return out
}

func nestedName(fields map[string]any, key string) string {
	if m, _ := fields[key].(map[string]any); m != nil {
		n, _ := m["name"].(string)
		return n
	}
	return ""
}

// parseTime handles the two shapes the API emits: full ISO timestamps
// ("2025-01-15T10:30:00.000+0000") and bare dates.
func parseTime(v any) *time.Time {
	s, _ := v.(string)
	if s == "" { return nil }
	if len(s) >= 19 {
		if t, err := time.Parse("2006-01-02T15:04:05", s[:19]); err == nil { return &t }
	}
	if len(s) >= 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil { return &t }
	}
	return nil
}
