/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charleseiq/eiq-manager-tools/internal/adapters/github"
	"github.com/charleseiq/eiq-manager-tools/internal/adapters/jira"
	"github.com/charleseiq/eiq-manager-tools/internal/analyze"
	"github.com/charleseiq/eiq-manager-tools/internal/domain"
)

// maxBodyChars bounds each quoted body so one verbose PR description cannot
// crowd the rest of the window out of the prompt.
const maxBodyChars = 1500

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n { return s }
	return s[:n] + " [...]"
}

// quote scrubs and truncates a free-text body for prompt inclusion.
func quote(s string) string {
	return truncate(analyze.Scrub(s), maxBodyChars)
}

// githubDigest renders the PR activity as markdown for the analyzer. Peer
// author names are aliased; the subject's own username is kept so the model
// can attribute comments.
func githubDigest(a *github.Activity, username string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "### PRs reviewed by %s (%d)\n\n", username, len(a.Reviewed))
	for _, pr := range a.Reviewed {
		writePR(&b, pr, true)
	}
	if len(a.Reviewed) == 0 { b.WriteString("None in this period.\n\n") }

	fmt.Fprintf(&b, "### PRs authored by %s (%d)\n\n", username, len(a.Authored))
	for _, pr := range a.Authored {
		writePR(&b, pr, false)
	}
	if len(a.Authored) == 0 { b.WriteString("None in this period.\n\n") }

	authors := make([]string, 0, len(a.Reviewed))
	for _, pr := range a.Reviewed { authors = append(authors, pr.Author) }
	body := b.String()
	_, scrubbed := analyze.AliasAuthors(authors, username, []string{body})
	return scrubbed[0]
}

func writePR(b *strings.Builder, pr domain.PullRequest, withReviews bool) {
	fmt.Fprintf(b, "- **%s** (%s/%s#%d, author %s, %s)\n", quote(pr.Title), pr.Owner, pr.Repo, pr.Number, pr.Author, pr.State)
	fmt.Fprintf(b, "  %s\n", pr.HTMLURL)
	fmt.Fprintf(b, "  +%d/-%d across %d files\n", pr.Additions, pr.Deletions, pr.ChangedFiles)
	if !withReviews {
		if body := quote(pr.Body); body != "" { fmt.Fprintf(b, "  Description: %s\n", body) }
		b.WriteString("\n")
		return
	}
	for _, r := range pr.Reviews {
		fmt.Fprintf(b, "  Review [%s] %s", r.State, r.SubmittedAt.Format("2006-01-02"))
		if body := quote(r.Body); body != "" { fmt.Fprintf(b, ": %s", body) }
		b.WriteString("\n")
	}
	for _, c := range pr.Comments {
		fmt.Fprintf(b, "  Comment %s: %s\n", c.CreatedAt.Format("2006-01-02"), quote(c.Body))
	}
	b.WriteString("\n")
}

// jiraDigest lists the issues and worklog totals behind the sprint tables.
func jiraDigest(a *jira.Activity) string {
	var b strings.Builder

	fmt.Fprintf(&b, "### Issues (%d)\n\n", len(a.Issues))
	for _, is := range a.Issues {
		fmt.Fprintf(&b, "- **%s** %s [%s, %s", is.Key, quote(is.Summary), is.Type, is.Status)
		if is.StoryPoints > 0 { fmt.Fprintf(&b, ", %.1f pts", is.StoryPoints) }
		if is.EpicKey != "" { fmt.Fprintf(&b, ", epic %s", is.EpicKey) }
		b.WriteString("]\n")
		if desc := quote(is.Description); desc != "" { fmt.Fprintf(&b, "  %s\n", desc) }
	}
	if len(a.Issues) == 0 { b.WriteString("None in this period.\n") }

	if hours := worklogHours(a.Worklogs); len(hours) > 0 {
		b.WriteString("\n### Logged time by issue\n\n")
		keys := make([]string, 0, len(hours))
		for k := range hours { keys = append(keys, k) }
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %.1fh\n", k, hours[k])
		}
	}

	if len(a.Epics) > 0 {
		b.WriteString("\n### Epics touched\n\n")
		for _, e := range a.Epics {
			fmt.Fprintf(&b, "- %s: %s\n", e.Key, quote(e.Name))
		}
	}
	return b.String()
}

func worklogHours(logs []domain.Worklog) map[string]float64 {
	out := map[string]float64{}
	for _, w := range logs {
		out[w.IssueKey] += float64(w.Seconds) / 3600
	}
	return out
}

// sprintMetricsMarkdown renders the locally computed sprint table. This text
// goes into the report verbatim, not through the analyzer.
func sprintMetricsMarkdown(metrics []domain.SprintMetrics) string {
	if len(metrics) == 0 {
		return "_No sprint activity in this period._"
	}
	var b strings.Builder
	b.WriteString("| Sprint | Issues | Completed | Completion | Velocity (pts) |\n")
	b.WriteString("|--------|--------|-----------|------------|----------------|\n")
	for _, m := range metrics {
		fmt.Fprintf(&b, "| %s | %d | %d | %.1f%% | %.1f |\n",
			m.Sprint.Name, m.TotalIssues, m.CompletedIssues, m.CompletionRate, m.Velocity)
	}
	return strings.TrimRight(b.String(), "\n")
}

// epicAllocationMarkdown aggregates each sprint's epic split into one table.
// Percentages are averaged across the sprints an epic appears in.
func epicAllocationMarkdown(metrics []domain.SprintMetrics, epics []domain.Epic) string {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, m := range metrics {
		for key, pct := range m.EpicAllocation {
			sums[key] += pct
			counts[key]++
		}
	}
	if len(sums) == 0 {
		return "_No epic allocation data in this period._"
	}
	names := map[string]string{}
	for _, e := range epics { names[e.Key] = e.Name }

	keys := make([]string, 0, len(sums))
	for k := range sums { keys = append(keys, k) }
	sort.Slice(keys, func(i, j int) bool {
		ai, aj := sums[keys[i]]/float64(counts[keys[i]]), sums[keys[j]]/float64(counts[keys[j]])
		if ai != aj { return ai > aj }
		return keys[i] < keys[j]
	})

	var b strings.Builder
	b.WriteString("| Epic | Share of work |\n")
	b.WriteString("|------|---------------|\n")
	for _, k := range keys {
		label := k
		if n, ok := names[k]; ok && n != "" && n != k { label = fmt.Sprintf("%s (%s)", k, n) }
		fmt.Fprintf(&b, "| %s | %.1f%% |\n", label, sums[k]/float64(counts[k]))
	}
	return strings.TrimRight(b.String(), "\n")
}

// gdocsDigest renders exported documents and their comment threads.
func gdocsDigest(docs []domain.Document) string {
	if len(docs) == 0 {
		return "No documents authored in this period.\n"
	}
	var b strings.Builder
	for _, d := range docs {
		fmt.Fprintf(&b, "### %s\n\n", quote(d.Title))
		fmt.Fprintf(&b, "%s (modified %s)\n\n", d.WebLink, d.ModifiedAt.Format("2006-01-02"))
		if body := truncate(analyze.Scrub(d.Markdown), 8000); body != "" {
			fmt.Fprintf(&b, "%s\n\n", body)
		}
		if len(d.Comments) > 0 {
			fmt.Fprintf(&b, "Reviewer comments (%d):\n\n", len(d.Comments))
			for _, c := range d.Comments {
				status := "open"
				if c.Resolved { status = "resolved" }
				fmt.Fprintf(&b, "- [%s, %d replies] %s\n", status, c.Replies, quote(c.Body))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// docListMarkdown is the local "Documents Reviewed" section of the gdocs
// report, listing titles and links without analyzer involvement.
func docListMarkdown(docs []domain.Document) string {
	if len(docs) == 0 {
		return "_No documents found for this period._"
	}
	var b strings.Builder
	for _, d := range docs {
		fmt.Fprintf(&b, "- [%s](%s), %d comments\n", d.Title, d.WebLink, len(d.Comments))
	}
	return strings.TrimRight(b.String(), "\n")
}
