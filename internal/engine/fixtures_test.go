package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/region-odds/playoffsim/internal/model"
)

func intp(v int) *int { return &v }

func resp(r model.Result) *model.Result { return &r }

func regionSchools(names ...string) []model.School {
	out := make([]model.School, len(names))
	for i, n := range names {
		out[i] = model.School{Name: n, Class: 5, Region: 1, Season: 2026}
	}
	return out
}

func TestBuildFixturesCompletedAndRemaining(t *testing.T) {
	schools := regionSchools("Alpha", "Bravo", "Charlie")
	games := []model.Game{
		{School: "Alpha", Opponent: "Bravo", Season: 2026, IsFinal: true, IsRegion: true,
			Result: resp(model.Win), PointsFor: intp(21), PointsAgainst: intp(14)},
		{School: "Bravo", Opponent: "Alpha", Season: 2026, IsFinal: true, IsRegion: true,
			Result: resp(model.Loss), PointsFor: intp(14), PointsAgainst: intp(21)},
		{School: "Bravo", Opponent: "Charlie", Season: 2026, IsFinal: false, IsRegion: true},
		{School: "Charlie", Opponent: "Bravo", Season: 2026, IsFinal: false, IsRegion: true},
	}

	fx, err := BuildFixtures(schools, games, 5, 1, 2026)
	require.NoError(t, err)
	require.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, fx.Schools)
	require.Len(t, fx.Completed, 1)
	require.Len(t, fx.Remaining, 1)

	pair := fx.Completed[0]
	require.Equal(t, "Alpha", pair.A)
	require.Equal(t, "Bravo", pair.B)
	require.Equal(t, model.Win, pair.ResA)
	require.Equal(t, 7, pair.PDA)

	require.Equal(t, 21, fx.CompletedPointsAllowed[fx.Index["Bravo"]])
	require.Equal(t, 14, fx.CompletedPointsAllowed[fx.Index["Alpha"]])
}

func TestBuildFixturesEmptyRegion(t *testing.T) {
	_, err := BuildFixtures(nil, nil, 5, 1, 2026)
	require.Error(t, err)

	var emptyErr *EmptyRegionError
	require.ErrorAs(t, err, &emptyErr)
}

func TestBuildFixturesMissingOpponent(t *testing.T) {
	schools := regionSchools("Alpha")
	games := []model.Game{
		{School: "Alpha", Opponent: "OutOfRegion", Season: 2026, IsFinal: true, IsRegion: true,
			Result: resp(model.Win), PointsFor: intp(10), PointsAgainst: intp(3)},
	}
	_, err := BuildFixtures(schools, games, 5, 1, 2026)
	require.Error(t, err)

	var missingErr *MissingOpponentError
	require.ErrorAs(t, err, &missingErr)
}

func TestBuildFixturesInconsistentPair(t *testing.T) {
	schools := regionSchools("Alpha", "Bravo")
	games := []model.Game{
		{School: "Alpha", Opponent: "Bravo", Season: 2026, IsFinal: true, IsRegion: true,
			Result: resp(model.Win), PointsFor: intp(21), PointsAgainst: intp(14)},
		{School: "Bravo", Opponent: "Alpha", Season: 2026, IsFinal: true, IsRegion: true,
			Result: resp(model.Win), PointsFor: intp(21), PointsAgainst: intp(14)},
	}
	_, err := BuildFixtures(schools, games, 5, 1, 2026)
	require.Error(t, err)

	var inconsistentErr *InconsistentPairError
	require.ErrorAs(t, err, &inconsistentErr)
}
