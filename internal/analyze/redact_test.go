package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrub(t *testing.T) {
	in := "Reach me at alice@example.com or +1 555 123 4567. token: abcdEFGH1234 see https://github.com/charleseiq/claims-engine/pull/12"
	out := Scrub(in)

	assert.NotContains(t, out, "alice@example.com")
	assert.Contains(t, out, "<email>")
	assert.NotContains(t, out, "555 123 4567")
	assert.Contains(t, out, "<phone>")
	assert.NotContains(t, out, "abcdEFGH1234")
	assert.Contains(t, out, "<secret>")
	// PR and doc links survive, reports cite them.
	assert.Contains(t, out, "https://github.com/charleseiq/claims-engine/pull/12")
}

func TestScrubJiraAccountRefs(t *testing.T) {
	out := Scrub("reassigned from JIRAUSER10042 after triage")
	assert.Equal(t, "reassigned from <user> after triage", out)
}

func TestAliasAuthors(t *testing.T) {
	authors := []string{"Alice Smith", "Bob Jones", "Alice Smith", "Varun Sundar"}
	bodies := []string{
		"Alice Smith suggested a simpler schema.",
		"agreed with alice smith here",
	}
	outAuthors, outBodies := AliasAuthors(authors, "Varun Sundar", bodies)

	// Same person gets the same alias, different people different ones.
	assert.Equal(t, outAuthors[0], outAuthors[2])
	assert.NotEqual(t, outAuthors[0], outAuthors[1])
	assert.NotEqual(t, "Alice Smith", outAuthors[0])
	// The subject of the analysis is never aliased.
	assert.Equal(t, "Varun Sundar", outAuthors[3])

	require.Len(t, outBodies, 2)
	assert.NotContains(t, outBodies[0], "Alice Smith")
	assert.Contains(t, outBodies[0], outAuthors[0])
	// Alias replacement is case-insensitive.
	assert.NotContains(t, outBodies[1], "alice smith")
}
