package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleseiq/eiq-manager-tools/internal/domain"
)

func pkgUser() domain.User {
	return domain.User{Username: "vsundar", Name: "Varun Sundar", Level: "L5"}
}

func pkgPeriod() domain.Period {
	return domain.Period{
		Key:   "2025H2",
		Start: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Every fixed section appears exactly once, whatever sources exist.
func TestBuildPackageAlwaysTotal(t *testing.T) {
	cases := []PackageSources{
		{}, // nothing at all
		{HumanNotes: "## Code Review Quality\n\nCareful reviewer.\n"},
		{Reports: map[domain.Tool]string{domain.ToolJira: "# Sprint Analysis\n\nShipped on time.\n"}},
	}
	for _, src := range cases {
		doc := BuildPackage(pkgUser(), pkgPeriod(), src)
		for _, sec := range packageSections {
			assert.Equal(t, 1, strings.Count(doc, "## "+sec.Title+"\n"), "section %q", sec.Title)
		}
		assert.Contains(t, doc, "# Review Package: Varun Sundar")
		assert.Contains(t, doc, "**Period:** 2025H2")
		assert.Contains(t, doc, "**Level:** L5")
	}
}

func TestBuildPackageEmptySources(t *testing.T) {
	doc := BuildPackage(pkgUser(), pkgPeriod(), PackageSources{})
	assert.Equal(t, len(packageSections), strings.Count(doc, NoDataPlaceholder))
	assert.NotContains(t, doc, "_Source:")
}

// Human notes beat the notes analysis, which beats the per-source report.
func TestBuildPackagePriority(t *testing.T) {
	src := PackageSources{
		HumanNotes:    "## Code Review Quality\n\nhuman says thorough\n",
		NotesAnalysis: "## Code Review Quality\n\nmodel says thorough\n\n## Delivery & Execution\n\nmodel says on time\n",
		Reports: map[domain.Tool]string{
			domain.ToolGitHub: "# PR Review Analysis\n\nreport body\n",
			domain.ToolGDocs:  "# Design Doc Analysis\n\n## Findings\n\ndocs body\n",
		},
	}
	doc := BuildPackage(pkgUser(), pkgPeriod(), src)

	assert.Contains(t, doc, "human says thorough")
	assert.NotContains(t, doc, "model says thorough")
	assert.Contains(t, doc, "_Source: manager notes_")

	assert.Contains(t, doc, "model says on time")
	assert.Contains(t, doc, "_Source: notes analysis_")

	assert.Contains(t, doc, "docs body")
	assert.Contains(t, doc, "_Source: gdocs report_")
}

// An embedded report loses its own H1 so the package keeps a single title.
func TestBuildPackageStripsEmbeddedTitle(t *testing.T) {
	src := PackageSources{Reports: map[domain.Tool]string{
		domain.ToolJira: "# Sprint Analysis: vsundar\n\n## Velocity\n\n12 points/sprint\n",
	}}
	doc := BuildPackage(pkgUser(), pkgPeriod(), src)
	require.Contains(t, doc, "12 points/sprint")
	assert.True(t, strings.HasPrefix(doc, "# Review Package:"))
	assert.Zero(t, strings.Count(doc, "\n# "), "embedded H1 must not survive")
	assert.NotContains(t, doc, "Sprint Analysis: vsundar")
}

// With no heading match the notes section falls back to the full notes text.
func TestBuildPackageNotesFallthrough(t *testing.T) {
	src := PackageSources{HumanNotes: "Varun mentored two interns this half.\n"}
	doc := BuildPackage(pkgUser(), pkgPeriod(), src)
	body, ok := SectionBody(doc, "Manager Observations")
	require.True(t, ok)
	assert.Contains(t, body, "mentored two interns")
}

func TestBuildPackageMissingLevel(t *testing.T) {
	u := pkgUser()
	u.Level = ""
	doc := BuildPackage(u, pkgPeriod(), PackageSources{})
	assert.Contains(t, doc, "**Level:** -")
}
