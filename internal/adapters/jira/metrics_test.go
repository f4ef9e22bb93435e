package jira

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charleseiq/eiq-manager-tools/internal/domain"
)

func sprintAt(id int64, name string, start time.Time) domain.Sprint {
	end := start.AddDate(0, 0, 13)
	return domain.Sprint{ID: id, Name: name, Start: &start, End: &end}
}

func TestComputeMetrics(t *testing.T) {
	s41 := sprintAt(41, "Sprint 41", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	s42 := sprintAt(42, "Sprint 42", time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC))
	issues := []domain.Issue{
		{Key: "WC-1", Status: "Done", StoryPoints: 5, EpicKey: "WC-100", SprintIDs: []int64{41}},
		{Key: "WC-2", Status: "In Progress", StoryPoints: 3, EpicKey: "WC-100", SprintIDs: []int64{41}},
		{Key: "WC-3", Status: "Closed", StoryPoints: 2, SprintIDs: []int64{41}},
	}

	metrics := ComputeMetrics([]domain.Sprint{s41, s42}, issues)
	require.Len(t, metrics, 1, "sprint with no user issues is skipped")

	m := metrics[0]
	assert.Equal(t, int64(41), m.Sprint.ID)
	assert.Equal(t, 3, m.TotalIssues)
	assert.Equal(t, 2, m.CompletedIssues)
	assert.InDelta(t, 66.7, m.CompletionRate, 0.1)
	assert.Equal(t, 7.0, m.Velocity, "velocity is completed story points, not issue count")
	require.Len(t, m.Accomplishments, 2)

	// Allocation is by story points and covers every issue, epic or not.
	assert.InDelta(t, 80.0, m.EpicAllocation["WC-100"], 0.01)
	assert.InDelta(t, 20.0, m.EpicAllocation[Uncategorized], 0.01)
	var total float64
	for _, p := range m.EpicAllocation { total += p }
	assert.InDelta(t, 100.0, total, 0.01)
}

func TestComputeMetricsCountFallback(t *testing.T) {
	s := sprintAt(41, "Sprint 41", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	issues := []domain.Issue{
		{Key: "WC-1", Status: "Done", EpicKey: "WC-100", SprintIDs: []int64{41}},
		{Key: "WC-2", Status: "Done", SprintIDs: []int64{41}},
	}
	m := ComputeMetrics([]domain.Sprint{s}, issues)[0]
	// No story points anywhere: allocation falls back to issue count.
	assert.InDelta(t, 50.0, m.EpicAllocation["WC-100"], 0.01)
	assert.InDelta(t, 50.0, m.EpicAllocation[Uncategorized], 0.01)
	assert.Zero(t, m.Velocity)
}

func TestComputeMetricsOrdering(t *testing.T) {
	s41 := sprintAt(41, "Sprint 41", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))
	s42 := sprintAt(42, "Sprint 42", time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC))
	issues := []domain.Issue{{Key: "WC-1", Status: "Done", SprintIDs: []int64{41, 42}}}

	metrics := ComputeMetrics([]domain.Sprint{s41, s42}, issues)
	require.Len(t, metrics, 2)
	assert.Equal(t, "Sprint 42", metrics[0].Sprint.Name, "most recent sprint first")
}

func TestEpicKeys(t *testing.T) {
	issues := []domain.Issue{
		{Key: "WC-1", EpicKey: "WC-200"},
		{Key: "WC-2", EpicKey: "WC-100"},
		{Key: "WC-3", EpicKey: "WC-200"},
		{Key: "WC-4"},
	}
	assert.Equal(t, []string{"WC-100", "WC-200"}, EpicKeys(issues))
}
