/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package pipeline

import (
	_ "embed"

	"github.com/charleseiq/eiq-manager-tools/internal/domain"
	"github.com/charleseiq/eiq-manager-tools/internal/report"
	"github.com/charleseiq/eiq-manager-tools/internal/resolve"
)

//go:embed templates/github.md
var githubTemplateRaw string

//go:embed templates/jira.md
var jiraTemplateRaw string

//go:embed templates/gdocs.md
var gdocsTemplateRaw string

//go:embed templates/notes.md
var notesTemplateRaw string

var (
	githubTemplate = report.ParseTemplate(githubTemplateRaw)
	jiraTemplate   = report.ParseTemplate(jiraTemplateRaw)
	gdocsTemplate  = report.ParseTemplate(gdocsTemplateRaw)
	notesTemplate  = report.ParseTemplate(notesTemplateRaw)
)

// headerValues fills the slots shared by every tool template.
func headerValues(user domain.User, username string, period domain.Period) map[string]string {
	return map[string]string{
		"name":            user.Name,
		"username":        username,
		"level":           orDash(user.Level),
		"analysis_period": resolve.FormatAnalysisPeriod(period),
	}
}
