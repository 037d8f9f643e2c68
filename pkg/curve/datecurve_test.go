package curve

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestActAct365(t *testing.T) {
	start := date(2024, 1, 1)
	assert.InDelta(t, 365.0/365.25, ActAct365(start, date(2025, 1, 1)), 1e-12)
	assert.Equal(t, 0.0, ActAct365(start, start))
	assert.Less(t, ActAct365(start, date(2023, 1, 1)), 0.0)
}

func TestDateCurveMatchesFloatCurve(t *testing.T) {
	origin := date(2024, 1, 1)
	dates := []time.Time{date(2025, 1, 1), date(2026, 1, 1)}
	values := []float64{0.03, 0.04}

	dc, err := NewDate(dates, values, nil, origin, nil)
	require.NoError(t, err)

	// evaluating at a date equals evaluating the float curve at its
	// day counted image
	for _, d := range append(dates, date(2025, 7, 1)) {
		want, err := dc.ToCurve().Value(dc.YearFraction(d))
		require.NoError(t, err)
		got, err := dc.ValueAt(d)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestDateCurveDefaults(t *testing.T) {
	dates := []time.Time{date(2025, 1, 1), date(2026, 1, 1)}
	dc, err := NewDate(dates, []float64{1.0, 2.0}, nil, time.Time{}, nil)
	require.NoError(t, err)

	// zero origin falls back to the first date
	assert.Equal(t, dates[0], dc.Origin())
	assert.Equal(t, 0.0, dc.YearFraction(dates[0]))

	y, err := dc.ValueAt(dates[0])
	require.NoError(t, err)
	assert.Equal(t, 1.0, y)
}

func TestDateCurveValidation(t *testing.T) {
	_, err := NewDate(nil, nil, nil, time.Time{}, nil)
	require.Error(t, err)

	_, err = NewDate([]time.Time{date(2025, 1, 1)}, []float64{1.0, 2.0}, nil, time.Time{}, nil)
	require.Error(t, err)
}
