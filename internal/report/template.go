/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package report

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var slotRe = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// Template is a markdown report template with named {{slot}} placeholders.
// The slot set is closed: rendering validates that a value is supplied for
// every slot before anything is written.
type Template struct {
	raw   string
	slots []string
}

func ParseTemplate(raw string) *Template {
	seen := map[string]bool{}
	var slots []string
	for _, m := range slotRe.FindAllStringSubmatch(raw, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			slots = append(slots, m[1])
		}
	}
	return &Template{raw: raw, slots: slots}
}

// Slots returns the template's placeholder names in order of first appearance.
func (t *Template) Slots() []string { return append([]string(nil), t.slots...) }

// MissingSlotError reports slots the analyzer failed to supply. The report is
// not written when this is returned.
type MissingSlotError struct {
	Slots []string
}

func (e *MissingSlotError) Error() string {
	return fmt.Sprintf("analysis did not fill required template slot(s): %s", strings.Join(e.Slots, ", "))
}

// Render substitutes values into the template. Substitution is deterministic:
// the same values always produce the same bytes. Every slot must be present
// and non-empty in values or a MissingSlotError is returned.
func (t *Template) Render(values map[string]string) (string, error) {
	var missing []string
	for _, s := range t.slots {
		if strings.TrimSpace(values[s]) == "" { missing = append(missing, s) }
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return "", &MissingSlotError{Slots: missing}
	}
	out := slotRe.ReplaceAllStringFunc(t.raw, func(m string) string {
		name := slotRe.FindStringSubmatch(m)[1]
		return values[name]
	})
	return out, nil
}

// CheckFilled rejects analyzer output that still contains placeholder syntax.
// A report with literal {{...}} in it means the model returned an incomplete
// fill; the run fails rather than persisting a partially-templated report.
func CheckFilled(markdown string) error {
	if m := slotRe.FindStringSubmatch(markdown); m != nil {
		return fmt.Errorf("analysis output incomplete: unresolved placeholder {{%s}}", m[1])
	}
	return nil
}

// StripFences removes a wrapping markdown code fence from model output.
// Models frequently wrap whole reports in ``` blocks; the inner document is
// what gets persisted.
func StripFences(s string) string {
	out := strings.TrimSpace(s)
	if !strings.HasPrefix(out, "```") { return out }
	lines := strings.Split(out, "\n")
	if len(lines) > 0 && strings.HasPrefix(lines[0], "```") { lines = lines[1:] }
	if n := len(lines); n > 0 && strings.TrimSpace(lines[n-1]) == "```" { lines = lines[:n-1] }
	return strings.Join(lines, "\n")
}
