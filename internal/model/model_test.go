package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResultPointsAndString(t *testing.T) {
	cases := []struct {
		r      Result
		points float64
		str    string
	}{
		{Win, 1, "W"},
		{Tie, 0.5, "T"},
		{Loss, 0, "L"},
	}
	for _, c := range cases {
		if got := c.r.Points(); got != c.points {
			t.Errorf("%v.Points() = %v, want %v", c.r, got, c.points)
		}
		if got := c.r.String(); got != c.str {
			t.Errorf("%v.String() = %q, want %q", c.r, got, c.str)
		}
	}
}

func TestPlaceAssignmentWidth(t *testing.T) {
	require.Equal(t, 1, PlaceAssignment{First: 2, Last: 2}.Width())
	require.Equal(t, 3, PlaceAssignment{First: 1, Last: 3}.Width())
}

func TestOddsAccumulatorAdd(t *testing.T) {
	acc := NewOddsAccumulator([]string{"A", "B"})
	acc.Counts[0][0] = 5
	acc.Trials = 10

	other := NewOddsAccumulator([]string{"A", "B"})
	other.Counts[0][0] = 3
	other.Counts[1][3] = 2
	other.Trials = 10

	acc.Add(other)

	require.Equal(t, int64(8), acc.Counts[0][0])
	require.Equal(t, int64(2), acc.Counts[1][3])
	require.Equal(t, int64(20), acc.Trials)
}

func TestMarshalCSV(t *testing.T) {
	rows := []SchoolOdds{
		{School: "Alpha High", Class: 5, Region: 1, Season: 2026, Odds1st: 0.5, FinalOddsPlayoffs: 1, Clinched: true},
	}
	out, err := MarshalCSV(rows)
	require.NoError(t, err)

	text := string(out)
	require.True(t, strings.HasPrefix(text, "class,region,season,school,"))
	require.Contains(t, text, "Alpha High")
	require.Contains(t, text, "true")
}
