/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package resolve

import (
	"regexp"
	"strings"
)

var (
	slugSeparators = regexp.MustCompile(`[\s_]+`)
	slugInvalid    = regexp.MustCompile(`[^a-z0-9-]`)
	slugCollapse   = regexp.MustCompile(`-+`)
)

// Slugify normalizes a person's name to the lower-case hyphenated form used
// in report paths and CLI flags ("Varun Sundar" -> "varun-sundar").
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = slugSeparators.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugCollapse.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Unslugify converts a slug back to title case ("varun-sundar" -> "Varun Sundar").
func Unslugify(slug string) string {
	if slug == "" { return slug }
	words := strings.Split(slug, "-")
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" { continue }
		out = append(out, strings.ToUpper(w[:1])+strings.ToLower(w[1:]))
	}
	return strings.Join(out, " ")
}
