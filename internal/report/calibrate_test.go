package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peerDoc(name, summary string) string {
	return "# PR Review Analysis: " + name + "\n\n## Executive Summary\n\n" + summary + "\n\n## Scores\n\nContext: 4/5\n"
}

func TestGroupByLevel(t *testing.T) {
	peers := []PeerReport{
		{Slug: "a", Level: "L4"},
		{Slug: "b", Level: "l4"},
		{Slug: "c", Level: "L5"},
		{Slug: "d", Level: ""}, // no level, not comparable
	}
	groups := GroupByLevel(peers)
	require.Len(t, groups, 2)
	assert.Len(t, groups["L4"], 2)
	assert.Len(t, groups["L5"], 1)
}

func TestParseAdjustments(t *testing.T) {
	adjs, err := ParseAdjustments("```json\n[{\"user\":\"varun-sundar\",\"heading\":\"Scores\",\"body\":\"Context: 3/5\"}]\n```")
	require.NoError(t, err)
	require.Len(t, adjs, 1)
	assert.Equal(t, "varun-sundar", adjs[0].Slug)

	adjs, err = ParseAdjustments("[]")
	require.NoError(t, err)
	assert.Empty(t, adjs)

	_, err = ParseAdjustments("the model rambled instead of returning JSON")
	assert.Error(t, err)

	_, err = ParseAdjustments(`[{"user":"","heading":"Scores","body":"x"}]`)
	assert.Error(t, err)
}

func TestApplyAdjustments(t *testing.T) {
	reports := map[string]string{
		"varun-sundar":  peerDoc("vsundar", "Strong half."),
		"ariel-ledesma": peerDoc("aledesma", "Solid half."),
	}
	adjs := []Adjustment{{Slug: "varun-sundar", Heading: "Scores", Body: "Context: 3/5 (peer-normalized)"}}

	patched, err := ApplyAdjustments(reports, adjs)
	require.NoError(t, err)
	require.Len(t, patched, 1)
	assert.Contains(t, patched["varun-sundar"], "peer-normalized")
	// Untouched peer is not returned at all.
	_, ok := patched["ariel-ledesma"]
	assert.False(t, ok)
	// Unflagged sections stay byte-identical.
	body, _ := SectionBody(patched["varun-sundar"], "Executive Summary")
	orig, _ := SectionBody(reports["varun-sundar"], "Executive Summary")
	assert.Equal(t, orig, body)
}

// Applying the same verdict to an already-patched report changes nothing.
func TestApplyAdjustmentsIdempotent(t *testing.T) {
	reports := map[string]string{"varun-sundar": peerDoc("vsundar", "Strong half.")}
	adjs := []Adjustment{{Slug: "varun-sundar", Heading: "Scores", Body: "Context: 3/5"}}

	once, err := ApplyAdjustments(reports, adjs)
	require.NoError(t, err)
	twice, err := ApplyAdjustments(map[string]string{"varun-sundar": once["varun-sundar"]}, adjs)
	require.NoError(t, err)
	assert.Empty(t, twice, "re-applying an identical adjustment must be a no-op")
}

// A no-adjustment verdict leaves every document untouched.
func TestApplyAdjustmentsEmpty(t *testing.T) {
	reports := map[string]string{"varun-sundar": peerDoc("vsundar", "Strong half.")}
	patched, err := ApplyAdjustments(reports, nil)
	require.NoError(t, err)
	assert.Empty(t, patched)
}

func TestApplyAdjustmentsStructureErrors(t *testing.T) {
	reports := map[string]string{"varun-sundar": peerDoc("vsundar", "Strong half.")}

	// Unknown user is fatal.
	_, err := ApplyAdjustments(reports, []Adjustment{{Slug: "ghost", Heading: "Scores", Body: "x"}})
	assert.Error(t, err)

	// Malformed report (heading renamed) is fatal with no partial patch.
	_, err = ApplyAdjustments(reports, []Adjustment{{Slug: "varun-sundar", Heading: "Score Table", Body: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Score Table")
}
