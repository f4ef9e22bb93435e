/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// PeerReport is one rendered report included in a calibration group.
type PeerReport struct {
	Slug  string
	Level string
	Doc   string
}

// Adjustment is one subsection the analyzer flagged as miscalibrated against
// the peer group: the replacement body for one heading of one user's report.
type Adjustment struct {
	Slug    string `json:"user"`
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// GroupByLevel buckets peer reports for calibration. Reports with no level
// configured cannot be compared against a peer group and are skipped.
func GroupByLevel(peers []PeerReport) map[string][]PeerReport {
	out := map[string][]PeerReport{}
	for _, p := range peers {
		lvl := strings.ToUpper(strings.TrimSpace(p.Level))
		if lvl == "" { continue }
		out[lvl] = append(out[lvl], p)
	}
	return out
}

// ParseAdjustments decodes the analyzer's calibration verdict. The model is
// prompted for a JSON array of {user, heading, body} objects; an empty array
// means the group is already calibrated.
func ParseAdjustments(raw string) ([]Adjustment, error) {
	text := StripFences(raw)
	var adjs []Adjustment
	if err := json.Unmarshal([]byte(text), &adjs); err != nil {
		return nil, fmt.Errorf("calibration output is not a JSON adjustment list: %w", err)
	}
	for i, a := range adjs {
		if strings.TrimSpace(a.Slug) == "" || strings.TrimSpace(a.Heading) == "" {
			return nil, fmt.Errorf("calibration adjustment %d is missing user or heading", i)
		}
	}
	return adjs, nil
}

// ApplyAdjustments patches flagged sections into the peer reports and returns
// the documents that changed, keyed by slug. Sections not named in any
// adjustment stay byte-identical. Any adjustment that cannot be located (an
// unknown user, or a heading missing from that user's report) aborts the
// whole pass with no documents modified.
func ApplyAdjustments(reports map[string]string, adjs []Adjustment) (map[string]string, error) {
	bySlug := map[string]map[string]string{}
	for _, a := range adjs {
		if _, ok := reports[a.Slug]; !ok {
			return nil, fmt.Errorf("calibration flagged unknown user %q", a.Slug)
		}
		if bySlug[a.Slug] == nil { bySlug[a.Slug] = map[string]string{} }
		bySlug[a.Slug][a.Heading] = a.Body
	}

	// Validate every patch before mutating anything: a heading mismatch in
	// the last report must not leave earlier ones half-patched.
	patched := map[string]string{}
	slugs := make([]string, 0, len(bySlug))
	for s := range bySlug { slugs = append(slugs, s) }
	sort.Strings(slugs)
	for _, slug := range slugs {
		doc, err := PatchSections(reports[slug], bySlug[slug])
		if err != nil {
			return nil, fmt.Errorf("calibration for %s: %w", slug, err)
		}
		if doc != reports[slug] { patched[slug] = doc }
	}
	return patched, nil
}
