/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charleseiq/eiq-manager-tools/internal/domain"
)

// Config is the read-once configuration passed by reference through every
// pipeline. It merges the shared config.json with environment overrides;
// nothing reads the environment after Load returns.
type Config struct {
	AppEnv string

	Organization string
	Users        []domain.User

	// Legacy per-source filters kept for older config.json files.
	GDocsFolders []string
	DocTypes     []string

	GitHubToken string

	JiraURL     string
	JiraToken   string
	JiraProject string
	JiraEmail   string

	GoogleCloudProject  string
	GoogleCloudLocation string
	DriveTokenFile      string

	OpenAIKey   string
	OpenAIModel string

	GeminiModel string
	LLMTimeout  time.Duration
	HTTPTimeout time.Duration
	MaxRetries  int

	ReportsDir string
	NotesDir   string
	LadderFile string
}

type fileConfig struct {
	Organization string        `json:"organization"`
	Users        []domain.User `json:"users"`
	GDocsFolders []string      `json:"gdocs_folders"`
	DocTypes     []string      `json:"doc_types"`
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" { return def }
	return v
}

func atoi(key string, def int) int {
	v := os.Getenv(key)
	if v == "" { return def }
	i, err := strconv.Atoi(v)
	if err != nil { return def }
	return i
}

func dur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" { return def }
	d, err := time.ParseDuration(v)
	if err != nil { return def }
	return d
}

// Load reads config.json at path (default "config.json") and overlays
// environment variables. Credential values may be empty here; each fetcher
// validates the ones it needs before any network call.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" { path = "config.json" }

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config file not found: %s", path)
	}
	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("config file %s is not valid JSON: %w", path, err)
	}

	home, _ := os.UserHomeDir()
	cfg := Config{
		AppEnv: getenv("APP_ENV", "dev"),

		Organization: fc.Organization,
		Users:        fc.Users,
		GDocsFolders: fc.GDocsFolders,
		DocTypes:     fc.DocTypes,

		GitHubToken: getenv("GITHUB_TOKEN", ""),

		JiraURL:     strings.TrimRight(getenv("JIRA_URL", ""), "/"),
		JiraToken:   getenv("JIRA_TOKEN", ""),
		JiraProject: getenv("JIRA_PROJECT", ""),
		JiraEmail:   getenv("EVOLUTIONIQ_EMAIL", ""),

		GoogleCloudProject:  getenv("GOOGLE_CLOUD_PROJECT", ""),
		GoogleCloudLocation: getenv("GOOGLE_CLOUD_LOCATION", "us-east4"),
		DriveTokenFile:      getenv("DRIVE_TOKEN_FILE", home+"/.config/eiq/token.json"),

		OpenAIKey:   getenv("OPENAI_API_KEY", ""),
		OpenAIModel: getenv("OPENAI_MODEL", "gpt-4.1-mini"),

		GeminiModel: getenv("GEMINI_MODEL", "gemini-2.5-pro"),
		LLMTimeout:  dur("LLM_TIMEOUT", 5*time.Minute),
		HTTPTimeout: dur("HTTP_TIMEOUT", 30*time.Second),
		MaxRetries:  atoi("MAX_RETRIES", 3),

		ReportsDir: getenv("REPORTS_DIR", "reports"),
		NotesDir:   getenv("NOTES_DIR", "notes"),
		LadderFile: getenv("LADDER_FILE", "ladder/Matrix.html"),
	}
	if cfg.Organization == "" { cfg.Organization = "EvolutionIQ" }
	return cfg, nil
}
