package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"organization": "EvolutionIQ",
		"users": [
			{"username": "vsundar", "name": "Varun Sundar", "email": "varun@evolutioniq.com", "level": "L5"},
			{"username": "aledesma", "name": "Ariel Ledesma", "email": "ariel@evolutioniq.com"}
		],
		"gdocs_folders": ["Design Docs"]
	}`)

	t.Setenv("JIRA_PROJECT", "EIQ")
	t.Setenv("JIRA_URL", "https://evolutioniq.atlassian.net/")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "EvolutionIQ", cfg.Organization)
	require.Len(t, cfg.Users, 2)
	assert.Equal(t, "Varun Sundar", cfg.Users[0].Name)
	assert.Equal(t, "L5", cfg.Users[0].Level)
	assert.Equal(t, []string{"Design Docs"}, cfg.GDocsFolders)
	assert.Equal(t, "EIQ", cfg.JiraProject)
	// trailing slash trimmed so path joins stay predictable
	assert.Equal(t, "https://evolutioniq.atlassian.net", cfg.JiraURL)
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadBadJSON(t *testing.T) {
	path := writeConfig(t, `{"users": [`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestLoadDefaultsOrganization(t *testing.T) {
	path := writeConfig(t, `{"users": []}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "EvolutionIQ", cfg.Organization)
}
