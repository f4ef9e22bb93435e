/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */

// Package ladder parses the organizational engineering ladder (an exported
// HTML table, levels L3-L8) and formats level criteria for analysis prompts.
package ladder

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var dimensions = []string{
	"Technical skills",
	"Delivery",
	"Feedback, Communication, Collaboration",
	"Leadership",
}

var attributes = []string{
	"Quality",
	"Operational Excellence",
	"Design & architecture",
	"Incremental value delivery",
	"Self-organization",
	"Feedback",
	"Communication",
	"Collaboration",
	"Process thinking",
	"Influence",
	"Strategy",
}

// Competency is one rubric row: a "Dimension - Attribute - Name" key and the
// criteria bullets collected for it at a given level.
type Competency struct {
	Key      string
	Criteria []string
}

// Criteria holds one level's competencies in matrix row order.
type Criteria []Competency

// Matrix maps level (L3..L8) to that level's criteria.
type Matrix map[string]Criteria

var spaceRe = regexp.MustCompile(`\s+`)

// Load parses the ladder matrix HTML file. A missing file is not an error:
// analyses simply run without rubric context.
func Load(path string) (Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) { return Matrix{}, nil }
		return nil, fmt.Errorf("open ladder file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse extracts the criteria matrix from the exported HTML table.
func Parse(r io.Reader) (Matrix, error) {
	doc, err := html.Parse(r)
	if err != nil { return nil, fmt.Errorf("parse ladder html: %w", err) }
	rows := tableRows(doc)

	levelCols, headerIdx := findHeader(rows)
	m := Matrix{}
	if len(levelCols) == 0 { return m, nil }
	for level := range levelCols { m[level] = nil }

	maxCol := 0
	for _, c := range levelCols {
		if c > maxCol { maxCol = c }
	}

	var curDim, curAttr string
	// The rows between the level header and the data carry title/focus text.
	for _, row := range rows[min(headerIdx+3, len(rows)):] {
		if len(row) < maxCol+1 { continue }

		cells := row
		if isDigits(strings.TrimSpace(row[0])) { cells = row[1:] }
		if len(cells) < 3 { continue }

		dimCell := strings.TrimSpace(cells[0])
		attrCell := strings.TrimSpace(cells[1])
		compCell := strings.TrimSpace(cells[2])

		if contains(dimensions, dimCell) {
			curDim = dimCell
			if contains(attributes, attrCell) {
				curAttr = attrCell
			} else {
				curAttr = ""
			}
		}
		if contains(attributes, attrCell) { curAttr = attrCell }

		comp := competencyName(dimCell, compCell)
		if comp == "" { continue }

		key := comp
		switch {
		case curDim != "" && curAttr != "":
			key = curDim + " - " + curAttr + " - " + comp
		case curDim != "":
			key = curDim + " - " + comp
		}

		for level, col := range levelCols {
			if col >= len(row) { continue }
			crit := strings.TrimSpace(row[col])
			if crit == "" || isSkipWord(crit) || strings.HasPrefix(strings.ToLower(crit), "see l") { continue }
			m[level] = m[level].add(key, crit)
		}
	}
	return m, nil
}

// Level returns a level's criteria, nil when the level is unknown.
func (m Matrix) Level(level string) Criteria { return m[level] }

// NextLevel returns the level one above (L4 -> L5), empty at the top or for
// malformed input.
func NextLevel(level string) string {
	if len(level) != 2 || level[0] != 'L' { return "" }
	n := int(level[1] - '0')
	if n < 3 || n >= 8 { return "" }
	return fmt.Sprintf("L%d", n+1)
}

// FormatForPrompt renders a level's criteria (and the next level's, as growth
// areas) as markdown for inclusion in an analysis prompt. Returns "" when the
// matrix has nothing for the level.
func (m Matrix) FormatForPrompt(level string) string {
	criteria := m.Level(level)
	if len(criteria) == 0 { return "" }

	var b strings.Builder
	fmt.Fprintf(&b, "## Level %s Expectations\n\n", level)
	b.WriteString("The following criteria should be used to evaluate performance at this level:\n")
	writeGrouped(&b, criteria)

	next := NextLevel(level)
	if next == "" { return b.String() }
	nextCriteria := m.Level(next)
	if len(nextCriteria) == 0 { return b.String() }

	fmt.Fprintf(&b, "\n## Next Level (%s) Growth Areas\n\n", next)
	b.WriteString("The following criteria represent expectations for the next level. " +
		"Use these to identify growth opportunities and promotion readiness, " +
		"not as the primary evaluation criteria:\n")
	writeGrouped(&b, nextCriteria)
	return b.String()
}

func writeGrouped(b *strings.Builder, criteria Criteria) {
	order := append(append([]string{}, dimensions...), "Other")
	for _, dim := range order {
		var group Criteria
		for _, c := range criteria {
			if dimensionOf(c.Key) == dim { group = append(group, c) }
		}
		if len(group) == 0 { continue }
		fmt.Fprintf(b, "\n### %s\n\n", dim)
		for _, c := range group {
			parts := strings.Split(c.Key, " - ")
			fmt.Fprintf(b, "**%s:**\n", parts[len(parts)-1])
			for _, v := range c.Criteria { fmt.Fprintf(b, "- %s\n", v) }
			b.WriteString("\n")
		}
	}
}

func dimensionOf(key string) string {
	parts := strings.Split(key, " - ")
	if len(parts) >= 2 && contains(dimensions, parts[0]) { return parts[0] }
	return "Other"
}

func (c Criteria) add(key, crit string) Criteria {
	for i := range c {
		if c[i].Key == key {
			c[i].Criteria = append(c[i].Criteria, crit)
			return c
		}
	}
	return append(c, Competency{Key: key, Criteria: []string{crit}})
}

// tableRows flattens every <tr> in the document into whitespace-normalized
// cell text, in document order.
func tableRows(doc *html.Node) [][]string {
	var rows [][]string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			var row []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					row = append(row, spaceRe.ReplaceAllString(strings.TrimSpace(cellText(c)), " "))
				}
			}
			if len(row) > 0 { rows = append(rows, row) }
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling { walk(c) }
	}
	walk(doc)
	return rows
}

func cellText(n *html.Node) string {
	if n.Type == html.TextNode { return n.Data }
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling { b.WriteString(cellText(c)) }
	return b.String()
}

// findHeader locates the row naming the level columns (the one mentioning
// both L3 and L4) and maps each Ln header to its column index.
func findHeader(rows [][]string) (map[string]int, int) {
	for i, row := range rows {
		joined := strings.Join(row, " ")
		if !strings.Contains(joined, "L3") || !strings.Contains(joined, "L4") { continue }
		cols := map[string]int{}
		for j, cell := range row {
			cell = strings.TrimSpace(cell)
			if len(cell) == 2 && cell[0] == 'L' && cell[1] >= '0' && cell[1] <= '9' { cols[cell] = j }
		}
		if len(cols) > 0 { return cols, i }
	}
	return nil, 0
}

func competencyName(dimCell, compCell string) string {
	if compCell != "" && !isSkipWord(compCell) { return compCell }
	if dimCell == "" || contains(dimensions, dimCell) || isSkipWord(dimCell) || isDigits(dimCell) { return "" }
	return dimCell
}

func isSkipWord(s string) bool {
	switch strings.ToLower(s) {
	case "n/a", "title", "focus", "scaling of competencies", "":
		return true
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s { return true }
	}
	return false
}

func isDigits(s string) bool {
	if s == "" { return false }
	for _, r := range s {
		if r < '0' || r > '9' { return false }
	}
	return true
}
