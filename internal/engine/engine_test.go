package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/region-odds/playoffsim/internal/model"
)

func finalGame(school, opp string, res model.Result, pf, pa int) model.Game {
	return model.Game{
		School: school, Opponent: opp, Season: 2026,
		IsFinal: true, IsRegion: true,
		Result: resp(res), PointsFor: intp(pf), PointsAgainst: intp(pa),
	}
}

// TestRunNoTiesAllGamesPlayed reproduces the documented fully-decided
// round robin: A 3-0, B 2-1, C 1-2, D 0-3, with no games left to sample.
// Every trial produces the same slot assignment, so odds_1st is (1,0,0,0);
// the four schools fill the four playoff slots, so every school, D
// included, is clinched outright.
func TestRunNoTiesAllGamesPlayed(t *testing.T) {
	schools := regionSchools("A", "B", "C", "D")
	games := []model.Game{
		finalGame("A", "B", model.Win, 28, 7), finalGame("B", "A", model.Loss, 7, 28),
		finalGame("A", "C", model.Win, 21, 10), finalGame("C", "A", model.Loss, 10, 21),
		finalGame("A", "D", model.Win, 35, 0), finalGame("D", "A", model.Loss, 0, 35),
		finalGame("B", "C", model.Win, 20, 14), finalGame("C", "B", model.Loss, 14, 20),
		finalGame("B", "D", model.Win, 24, 6), finalGame("D", "B", model.Loss, 6, 24),
		finalGame("C", "D", model.Win, 17, 9), finalGame("D", "C", model.Loss, 9, 17),
	}

	result, err := Run(context.Background(), schools, games, RunConfig{
		Class: 5, Region: 1, Season: 2026, Trials: 200,
	})
	require.NoError(t, err)
	require.Len(t, result.Rows, 4)

	byName := make(map[string]model.SchoolOdds, 4)
	for _, r := range result.Rows {
		byName[r.School] = r
	}

	require.InDelta(t, 1.0, byName["A"].Odds1st, 1e-9)
	require.InDelta(t, 1.0, byName["B"].Odds2nd, 1e-9)
	require.InDelta(t, 1.0, byName["C"].Odds3rd, 1e-9)
	require.InDelta(t, 1.0, byName["D"].Odds4th, 1e-9)

	for _, name := range []string{"A", "B", "C", "D"} {
		require.True(t, byName[name].Clinched, name)
	}
	require.False(t, byName["D"].Eliminated)
}

// TestRunIsCancellable checks that a context cancelled before any trial
// completes returns a CancelledError wrapping a partial trial count.
func TestRunIsCancellable(t *testing.T) {
	schools := regionSchools("A", "B")
	games := []model.Game{
		{School: "A", Opponent: "B", Season: 2026, IsRegion: true},
		{School: "B", Opponent: "A", Season: 2026, IsRegion: true},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Run(ctx, schools, games, RunConfig{
		Class: 5, Region: 1, Season: 2026, Trials: 10000, Workers: 4,
	})
	require.Error(t, err)

	var cancelledErr *CancelledError
	require.ErrorAs(t, err, &cancelledErr)
	require.Less(t, result.TrialsRun, int64(10000))
}

// TestVerifyReproducibility checks that a fixed seed produces identical odds
// regardless of worker count.
func TestVerifyReproducibility(t *testing.T) {
	schools := regionSchools("A", "B", "C", "D")
	games := []model.Game{
		finalGame("A", "B", model.Win, 21, 14), finalGame("B", "A", model.Loss, 14, 21),
		{School: "A", Opponent: "C", Season: 2026, IsRegion: true},
		{School: "C", Opponent: "A", Season: 2026, IsRegion: true},
		{School: "A", Opponent: "D", Season: 2026, IsRegion: true},
		{School: "D", Opponent: "A", Season: 2026, IsRegion: true},
		{School: "B", Opponent: "C", Season: 2026, IsRegion: true},
		{School: "C", Opponent: "B", Season: 2026, IsRegion: true},
		{School: "B", Opponent: "D", Season: 2026, IsRegion: true},
		{School: "D", Opponent: "B", Season: 2026, IsRegion: true},
		{School: "C", Opponent: "D", Season: 2026, IsRegion: true},
		{School: "D", Opponent: "C", Season: 2026, IsRegion: true},
	}

	ok, err := VerifyReproducibility(schools, games, RunConfig{
		Class: 5, Region: 1, Season: 2026, Trials: 1000,
	}, 42)
	require.NoError(t, err)
	require.True(t, ok, "same seed must produce identical odds regardless of worker count")
}
