/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package report

import (
	"fmt"
	"sort"
	"strings"
)

// Section is one block of a markdown document: a heading line and everything
// under it up to the next heading. A document with leading prose before the
// first heading yields a preamble section with an empty Heading.
type Section struct {
	Heading string // heading text without the leading #'s; "" for preamble
	Level   int    // number of #'s; 0 for preamble
	Body    string // raw lines after the heading line, newlines preserved
	rawHead string // heading line exactly as it appeared
}

// SplitSections parses a markdown document into its ordered section blocks.
// Heading markers inside fenced code blocks are not treated as headings.
// JoinSections(SplitSections(doc)) == doc for any input.
func SplitSections(doc string) []Section {
	lines := strings.SplitAfter(doc, "\n")
	// SplitAfter leaves a trailing "" when doc ends with \n
	if n := len(lines); n > 0 && lines[n-1] == "" { lines = lines[:n-1] }

	var out []Section
	cur := Section{}
	started := false
	inFence := false
	flush := func() {
		if started || cur.Body != "" { out = append(out, cur) }
	}
	for _, ln := range lines {
		trimmed := strings.TrimSpace(ln)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
		}
		if !inFence && isHeadingLine(trimmed) {
			flush()
			level := 0
			for level < len(trimmed) && trimmed[level] == '#' { level++ }
			cur = Section{
				Heading: strings.TrimSpace(trimmed[level:]),
				Level:   level,
				rawHead: ln,
			}
			started = true
			continue
		}
		cur.Body += ln
	}
	flush()
	return out
}

func isHeadingLine(trimmed string) bool {
	if !strings.HasPrefix(trimmed, "#") { return false }
	i := 0
	for i < len(trimmed) && trimmed[i] == '#' { i++ }
	return i <= 6 && (i == len(trimmed) || trimmed[i] == ' ')
}

// JoinSections reassembles a document from its section blocks byte-for-byte.
func JoinSections(sections []Section) string {
	var b strings.Builder
	for _, s := range sections {
		b.WriteString(s.rawHead)
		b.WriteString(s.Body)
	}
	return b.String()
}

// SectionBody returns the body of the first section whose heading matches
// (case-insensitive) and whether one was found.
func SectionBody(doc, heading string) (string, bool) {
	for _, s := range SplitSections(doc) {
		if strings.EqualFold(s.Heading, heading) { return s.Body, true }
	}
	return "", false
}

// PatchSections replaces the bodies of the named sections, leaving every
// other byte of the document untouched. Headings are matched exactly. If any
// patch key has no matching heading the document is returned unmodified with
// an error naming the missing headings; a partial patch is never produced.
func PatchSections(doc string, patches map[string]string) (string, error) {
	if len(patches) == 0 { return doc, nil }
	sections := SplitSections(doc)

	matched := map[string]bool{}
	for i := range sections {
		if body, ok := patches[sections[i].Heading]; ok && sections[i].Level > 0 {
			sections[i].Body = normalizeBody(body)
			matched[sections[i].Heading] = true
		}
	}
	var missing []string
	for h := range patches {
		if !matched[h] { missing = append(missing, h) }
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return doc, fmt.Errorf("cannot patch report: heading(s) not found: %s", strings.Join(missing, "; "))
	}
	return JoinSections(sections), nil
}

// normalizeBody makes replacement text splice cleanly between a heading line
// and the following one: exactly one blank line on each side.
func normalizeBody(body string) string {
	trimmed := strings.Trim(body, "\n")
	if trimmed == "" { return "\n" }
	return "\n" + trimmed + "\n\n"
}
