/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package jira

import (
	"sort"
	"strings"

	"github.com/charleseiq/eiq-manager-tools/internal/domain"
)

// Uncategorized groups issues carrying no epic in allocation tables.
const Uncategorized = "Uncategorized"

func isCompleted(status string) bool {
	switch strings.ToLower(status) {
	case "done", "closed", "resolved":
		return true
	}
	return false
}

// ComputeMetrics derives per-sprint metrics from the user's own issues.
// Sprints none of the issues belong to are skipped; output is ordered most
// recent sprint first. Allocation percentages are by story points, falling
// back to issue count when the sprint carries no points at all.
func ComputeMetrics(sprints []domain.Sprint, issues []domain.Issue) []domain.SprintMetrics {
	var out []domain.SprintMetrics
	for _, sp := range sprints {
		var mine []domain.Issue
		for _, iss := range issues {
			for _, id := range iss.SprintIDs {
				if id == sp.ID {
					mine = append(mine, iss)
					break
				}
			}
		}
		if len(mine) == 0 { continue }

		m := domain.SprintMetrics{Sprint: sp, TotalIssues: len(mine), EpicAllocation: map[string]float64{}}
		points := map[string]float64{}
		counts := map[string]int{}
		var totalPoints float64
		for _, iss := range mine {
			epic := iss.EpicKey
			if epic == "" { epic = Uncategorized }
			points[epic] += iss.StoryPoints
			counts[epic]++
			totalPoints += iss.StoryPoints
			if isCompleted(iss.Status) {
				m.CompletedIssues++
				m.Velocity += iss.StoryPoints
				m.Accomplishments = append(m.Accomplishments, iss)
			}
		}
		m.CompletionRate = float64(m.CompletedIssues) / float64(len(mine)) * 100
		if totalPoints > 0 {
			for epic, p := range points { m.EpicAllocation[epic] = p / totalPoints * 100 }
		} else {
			for epic, n := range counts { m.EpicAllocation[epic] = float64(n) / float64(len(mine)) * 100 }
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Sprint.Start, out[j].Sprint.Start
		if a == nil || b == nil { return b == nil && a != nil }
		return a.After(*b)
	})
	return out
}

// EpicKeys returns the distinct epic keys the issues reference, sorted.
func EpicKeys(issues []domain.Issue) []string {
	seen := map[string]bool{}
	var out []string
	for _, iss := range issues {
		if iss.EpicKey == "" || seen[iss.EpicKey] { continue }
		seen[iss.EpicKey] = true
		out = append(out, iss.EpicKey)
	}
	sort.Strings(out)
	return out
}
