package resolve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	cases := []struct {
		token      string
		start, end string
	}{
		{"2025H1", "2025-01-01", "2025-06-30"},
		{"2025H2", "2025-07-01", "2025-12-31"},
		{"2025Q1", "2025-01-01", "2025-03-31"},
		{"2025Q2", "2025-04-01", "2025-06-30"},
		{"2025Q3", "2025-07-01", "2025-09-30"},
		{"2025Q4", "2025-10-01", "2025-12-31"},
		{"2025", "2025-01-01", "2025-12-31"},
		{"2025h2", "2025-07-01", "2025-12-31"}, // case-insensitive
		{" 2025H1 ", "2025-01-01", "2025-06-30"},
	}
	for _, c := range cases {
		p, err := ParsePeriod(c.token)
		require.NoError(t, err, c.token)
		assert.Equal(t, c.start, p.Start.Format("2006-01-02"), c.token)
		assert.Equal(t, c.end, p.End.Format("2006-01-02"), c.token)
	}
}

func TestParsePeriodInvalid(t *testing.T) {
	for _, tok := range []string{"H2", "2025H3", "2025Q5", "2025Q0", "25H1", "2025-H2", "bogus"} {
		_, err := ParsePeriod(tok)
		assert.Error(t, err, tok)
	}
}

// Adjacent periods of the same granularity must tile the calendar with no
// gap and no overlap.
func TestPeriodsContiguous(t *testing.T) {
	quarters := []string{"2025Q1", "2025Q2", "2025Q3", "2025Q4"}
	for i := 1; i < len(quarters); i++ {
		prev, err := ParsePeriod(quarters[i-1])
		require.NoError(t, err)
		next, err := ParsePeriod(quarters[i])
		require.NoError(t, err)
		assert.Equal(t, prev.End.AddDate(0, 0, 1), next.Start, "gap between %s and %s", quarters[i-1], quarters[i])
	}
	h1, _ := ParsePeriod("2025H1")
	h2, _ := ParsePeriod("2025H2")
	assert.Equal(t, h1.End.AddDate(0, 0, 1), h2.Start)

	year, _ := ParsePeriod("2025")
	q1, _ := ParsePeriod("2025Q1")
	q4, _ := ParsePeriod("2025Q4")
	assert.Equal(t, year.Start, q1.Start)
	assert.Equal(t, year.End, q4.End)
}

func TestTimeRange(t *testing.T) {
	p, err := TimeRange("2025H2", "", "")
	require.NoError(t, err)
	assert.Equal(t, "2025H2", p.Key)

	// Explicit dates derive the matching period key.
	p, err = TimeRange("", "2025-07-01", "2025-12-31")
	require.NoError(t, err)
	assert.Equal(t, "2025H2", p.Key)

	p, err = TimeRange("", "2025-04-01", "2025-06-30")
	require.NoError(t, err)
	assert.Equal(t, "2025Q2", p.Key)

	// Arbitrary windows still get a stable key.
	p, err = TimeRange("", "2025-02-10", "2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-10_to_2025-03-15", p.Key)

	// Mutually exclusive modes.
	_, err = TimeRange("2025H2", "2025-07-01", "2025-12-31")
	assert.Error(t, err)

	_, err = TimeRange("", "2025-07-01", "")
	assert.Error(t, err)

	_, err = TimeRange("", "", "")
	assert.Error(t, err)

	_, err = TimeRange("", "2025-12-31", "2025-07-01")
	assert.Error(t, err)
}

func TestFormatAnalysisPeriod(t *testing.T) {
	p, err := ParsePeriod("2025H2")
	require.NoError(t, err)
	assert.Equal(t, "2025H2 (July 1 - December 31, 2025)", FormatAnalysisPeriod(p))

	p, err = ParsePeriod("2025H1")
	require.NoError(t, err)
	assert.Equal(t, "2025H1 (January 1 - June 30, 2025)", FormatAnalysisPeriod(p))

	custom, err := TimeRange("", "2025-02-10", "2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-10 to 2025-03-15", FormatAnalysisPeriod(custom))
}

func TestPeriodIsDeterministic(t *testing.T) {
	a, err := ParsePeriod("2026Q1")
	require.NoError(t, err)
	b, err := ParsePeriod("2026Q1")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), a.Start)
}
