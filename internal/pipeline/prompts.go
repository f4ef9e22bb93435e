/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package pipeline

import (
	"fmt"
	"strings"

	"github.com/charleseiq/eiq-manager-tools/internal/domain"
)

// Every analysis body follows the same section contract so calibration and
// packaging can locate content by heading.
const sectionContract = `Structure your response as markdown with exactly these second-level headings, in this order:

## Executive Summary
## Strengths
## Growth Areas
## Score Table

The Score Table section must contain a markdown table with columns
Dimension | Score (1-5) | Evidence. Cite concrete URLs from the provided
data as evidence wherever possible. Do not invent activity that is not in
the data. Do not use template placeholder syntax such as double curly
braces anywhere in the response.`

const githubSystem = `You are an engineering manager preparing a performance review.
You evaluate the quality of a developer's code review activity: depth of
review comments, rigor (catching real defects vs rubber-stamping),
communication tone, and responsiveness. Judge quality over quantity.`

const jiraSystem = `You are an engineering manager preparing a performance review.
You evaluate a developer's delivery record from sprint data: completion
consistency, velocity trend, scope of work across epics, and estimation
discipline. The sprint metric tables provided are computed from raw issue
data and are authoritative; do not recompute them.`

const gdocsSystem = `You are an engineering manager preparing a performance review.
You evaluate a developer's design and technical writing from documents they
authored: clarity of problem statements, consideration of alternatives,
handling of reviewer comments, and influence on technical direction.`

const notesSystem = `You are an engineering manager preparing a performance review.
You distill free-form observation notes about a developer into a balanced
qualitative assessment. Preserve the observer's judgment; do not soften
criticism or inflate praise.`

const calibrateSystem = `You are calibrating performance reviews across a peer group of
engineers at the same level. Compare the Score Table and Growth Areas
sections across the reports and flag only genuine inconsistencies, where
similar evidence received clearly different scores. Most groups need no
adjustment.`

// buildPrompt assembles the user prompt for one tool run: the subject line,
// the activity digest, optional ladder criteria, then the section contract.
func buildPrompt(user domain.User, period domain.Period, digest, ladderCriteria string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s (period %s)\n\n", user.Name, period.Key)
	b.WriteString(digest)
	if ladderCriteria != "" {
		b.WriteString("\n\nEvaluate against the career ladder expectations below.\n\n")
		b.WriteString(ladderCriteria)
	}
	b.WriteString("\n\n")
	b.WriteString(sectionContract)
	return b.String()
}

// buildCalibrationPrompt lists the peer reports of one level group and asks
// for a JSON adjustment list. An empty array means no changes.
func buildCalibrationPrompt(level string, peers []peerInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Peer group: level %s, %d reports.\n\n", level, len(peers))
	for _, p := range peers {
		fmt.Fprintf(&b, "--- report for user %q ---\n\n%s\n\n", p.Slug, p.Doc)
	}
	b.WriteString(`Respond with a JSON array only. Each element adjusts one section of one
report: {"user": "<user id as given>", "heading": "<exact heading text>",
"body": "<full replacement markdown body for that section>"}.
Only include sections that must change. If the group is consistent,
respond with [].`)
	return b.String()
}

type peerInput struct {
	Slug string
	Doc  string
}
