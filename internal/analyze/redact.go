/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package analyze

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRe    = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+`)
	phoneRe    = regexp.MustCompile(`\b\+?\d[\d\-\s]{7,}\b`)
	tokenRe    = regexp.MustCompile(`(?i)\b(?:token|secret|password|apikey|api_key|bearer)[:=\s]+[A-Za-z0-9\-\._~+/]{8,}\b`)
	jiraUserRe = regexp.MustCompile(`\bJIRAUSER\d+\b`)
)

// Scrub removes obvious PII and secrets before text reaches the LLM. Links
// are kept: reports cite PRs and documents by URL.
func Scrub(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = emailRe.ReplaceAllString(s, "<email>")
	s = phoneRe.ReplaceAllString(s, "<phone>")
	s = tokenRe.ReplaceAllString(s, "<secret>")
	s = jiraUserRe.ReplaceAllString(s, "<user>")
	return s
}

// AliasAuthors rewrites third-party author names in the given bodies to
// stable anonymous aliases, so peer feedback reaches the model without names
// attached. The subject's own name stays: the analysis is about them.
func AliasAuthors(authors []string, keep string, bodies []string) ([]string, []string) {
	alias := map[string]string{}
	next := 1
	outAuthors := make([]string, len(authors))
	for i, a := range authors {
		a = strings.TrimSpace(a)
		if a == "" || strings.EqualFold(a, keep) {
			outAuthors[i] = a
			continue
		}
		if _, ok := alias[a]; !ok {
			alias[a] = fmt.Sprintf("user%02d", next)
			next++
		}
		outAuthors[i] = alias[a]
	}
	outBodies := make([]string, len(bodies))
	for i, body := range bodies {
		body = Scrub(body)
		for name, al := range alias {
			re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
			body = re.ReplaceAllString(body, al)
		}
		outBodies[i] = body
	}
	return outAuthors, outBodies
}
