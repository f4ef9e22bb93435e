/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package report

import (
	"fmt"
	"strings"

	"github.com/charleseiq/eiq-manager-tools/internal/domain"
)

// NoDataPlaceholder keeps the package schema stable for downstream readers:
// a section with no source still appears, explicitly empty.
const NoDataPlaceholder = "_No data available for this section._"

// PackageSources are the documents available to the aggregator for one
// (user, period), in descending priority: human notes beat the notes
// analysis, which beats the per-source reports (already calibrated in place
// when a calibration pass has run).
type PackageSources struct {
	HumanNotes    string                 // raw manager/peer notes, may be empty
	NotesAnalysis string                 // rendered notes-analysis.md, may be empty
	Reports       map[domain.Tool]string // rendered per-source reports
}

// packageSection is one fixed question of the review package. Tool names the
// per-source report consulted when no higher-priority source covers it.
type packageSection struct {
	Title string
	Tool  domain.Tool
}

// The package always contains exactly these sections, in this order.
var packageSections = []packageSection{
	{Title: "Code Review Quality", Tool: domain.ToolGitHub},
	{Title: "Delivery & Execution", Tool: domain.ToolJira},
	{Title: "Design & Technical Communication", Tool: domain.ToolGDocs},
	{Title: "Manager Observations", Tool: domain.ToolNotes},
}

// BuildPackage merges the available documents into the final review package.
// For each section the highest-priority source that speaks to it wins: a
// matching heading in the human notes, then in the notes analysis, then the
// whole per-source report, then the explicit no-data placeholder. Aggregation
// never errors and never omits a section.
func BuildPackage(user domain.User, period domain.Period, src PackageSources) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Review Package: %s\n\n", user.Name)
	fmt.Fprintf(&b, "**Period:** %s  \n", period.Key)
	fmt.Fprintf(&b, "**Level:** %s\n\n", orDash(user.Level))

	for _, sec := range packageSections {
		fmt.Fprintf(&b, "## %s\n\n", sec.Title)
		body, source := sectionContent(sec, src)
		fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(body))
		if source != "" { fmt.Fprintf(&b, "_Source: %s_\n\n", source) }
	}
	return b.String()
}

func sectionContent(sec packageSection, src PackageSources) (body, source string) {
	if src.HumanNotes != "" {
		if s, ok := SectionBody(src.HumanNotes, sec.Title); ok && strings.TrimSpace(s) != "" {
			return s, "manager notes"
		}
	}
	if src.NotesAnalysis != "" {
		if s, ok := SectionBody(src.NotesAnalysis, sec.Title); ok && strings.TrimSpace(s) != "" {
			return s, "notes analysis"
		}
	}
	if sec.Tool == domain.ToolNotes {
		// The notes section falls through to the full notes material when no
		// heading matched: human text verbatim first, then the analysis.
		if strings.TrimSpace(src.HumanNotes) != "" { return src.HumanNotes, "manager notes" }
		if strings.TrimSpace(src.NotesAnalysis) != "" { return src.NotesAnalysis, "notes analysis" }
	}
	if doc, ok := src.Reports[sec.Tool]; ok && strings.TrimSpace(doc) != "" {
		return stripTitle(doc), fmt.Sprintf("%s report", sec.Tool)
	}
	return NoDataPlaceholder, ""
}

// stripTitle drops a report's own H1 so embedded reports do not introduce a
// second top-level heading into the package.
func stripTitle(doc string) string {
	sections := SplitSections(doc)
	if len(sections) > 0 && sections[0].Level == 1 {
		rest := sections[1:]
		if strings.TrimSpace(sections[0].Body) != "" {
			return sections[0].Body + JoinSections(rest)
		}
		return JoinSections(rest)
	}
	return doc
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" { return "-" }
	return s
}
