package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleseiq/eiq-manager-tools/internal/config"
	"github.com/charleseiq/eiq-manager-tools/internal/domain"
)

func TestApplyPositionals(t *testing.T) {
	o := &options{}
	o.applyPositionals([]string{"Varun Sundar", "2025H2"})
	assert.Equal(t, "Varun Sundar", o.name)
	assert.Equal(t, "2025H2", o.period)
}

func TestApplyPositionalsFlagsWin(t *testing.T) {
	o := &options{name: "Flag Name", period: "2025Q1"}
	o.applyPositionals([]string{"Positional Name", "2025H2"})
	assert.Equal(t, "Flag Name", o.name)
	assert.Equal(t, "2025Q1", o.period)
}

func TestApplyPositionalsExplicitDatesWin(t *testing.T) {
	o := &options{start: "2025-01-01", end: "2025-03-31"}
	o.applyPositionals([]string{"Someone", "2025H2"})
	assert.Empty(t, o.period, "positional period must not override explicit dates")
}

func TestToolByName(t *testing.T) {
	for name, want := range map[string]domain.Tool{
		"github":        domain.ToolGitHub,
		"github-review": domain.ToolGitHub,
		"jira":          domain.ToolJira,
		"gdocs":         domain.ToolGDocs,
		"notes":         domain.ToolNotes,
	} {
		got, err := toolByName(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := toolByName("slack")
	assert.Error(t, err)
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"github", "jira", "gdocs", "notes", "calibrate", "package", "auth"} {
		assert.Contains(t, names, want)
	}
}

func TestApplyCredOverrides(t *testing.T) {
	cfg := config.Config{
		GitHubToken: "env-gh",
		JiraURL:     "https://env.atlassian.net",
		JiraToken:   "env-jira",
		JiraProject: "ENV",
		JiraEmail:   "env@example.com",
	}
	o := &options{
		githubToken: "flag-gh",
		jiraURL:     "https://flag.atlassian.net/",
		jiraProject: "FLAG",
	}
	o.applyCredOverrides(&cfg)

	assert.Equal(t, "flag-gh", cfg.GitHubToken)
	assert.Equal(t, "https://flag.atlassian.net", cfg.JiraURL, "trailing slash is trimmed like the env path")
	assert.Equal(t, "FLAG", cfg.JiraProject)
	assert.Equal(t, "env-jira", cfg.JiraToken, "unset flags leave the environment value")
	assert.Equal(t, "env@example.com", cfg.JiraEmail)
}
