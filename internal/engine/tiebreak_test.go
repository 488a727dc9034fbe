package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/region-odds/playoffsim/internal/model"
)

// newNamedState builds a simState for the named schools and returns a name->id map
// alongside it, so tests can write games by name.
func newNamedState(names ...string) (*simState, map[string]int) {
	idx := make(map[string]int, len(names))
	for i, n := range names {
		idx[n] = i
	}
	return newSimState(len(names)), idx
}

// TestTiebreakH2HCycle reproduces the documented three-way cycle: A, B, C
// each 2-1 in region (one win over D, one win/one loss among themselves in
// a perfect cycle, each decided by the same margin), which remains tied
// through every step and co-places into [1,3].
func TestTiebreakH2HCycle(t *testing.T) {
	s, id := newNamedState("A", "B", "C", "D")
	s.recordDecided(id["A"], id["B"], model.Win, 5)
	s.recordDecided(id["B"], id["C"], model.Win, 5)
	s.recordDecided(id["C"], id["A"], model.Win, 5)
	s.recordDecided(id["A"], id["D"], model.Win, 10)
	s.recordDecided(id["B"], id["D"], model.Win, 10)
	s.recordDecided(id["C"], id["D"], model.Win, 10)

	fx := &Fixtures{Schools: []string{"A", "B", "C", "D"}, Index: id,
		CompletedPointsAllowed: make([]int, 4)}
	records := s.buildRecords(fx)
	buckets := buildBuckets(records, fx.Schools)

	require.Len(t, buckets, 2, "expected the 2-1 trio and D's 0-3 as separate buckets")

	trio := buckets[0]
	require.ElementsMatch(t, []int{id["A"], id["B"], id["C"]}, trio.ids)

	assignments := assignBucketSlots(s, records, fx.Schools, trio.ids, 1, DefaultPDCap)
	for _, a := range assignments {
		require.Equal(t, 1, a.First)
		require.Equal(t, 3, a.Last)
	}
}

// TestTiebreakMarginCap verifies Step 3 uses the capped point differential
// (±12), not the uncapped one, when one H2H game was decided by 30 points.
func TestTiebreakMarginCap(t *testing.T) {
	s, id := newNamedState("X", "Y", "Z")
	// X beat Y by 30 in their only meeting.
	s.recordDecided(id["X"], id["Y"], model.Win, 30)
	s.recordDecided(id["X"], id["Z"], model.Loss, -1)
	s.recordDecided(id["Y"], id["Z"], model.Win, 3)

	capped := s.h2hCappedPDAmong(id["X"], []int{id["X"], id["Y"]}, DefaultPDCap)
	require.Equal(t, DefaultPDCap, capped, "a +30 blowout must cap at +12")

	uncapped := s.h2hPD[id["X"]][id["Y"]]
	require.Equal(t, 30, uncapped, "the raw store itself stays uncapped")
}

// TestCompareNullLeastStep2 reproduces the documented lexicographic Step 2
// scenario: team X's array against the ranked outsiders is [2, nil, 2]
// (win, no game, win) vs team Y's [2, 2, nil]; Y wins because at the second
// position (index 1), 2 beats null.
func TestCompareNullLeastStep2(t *testing.T) {
	two := 2
	arrX := []*int{&two, nil, &two}
	arrY := []*int{&two, &two, nil}

	c := compareNullLeast(arrX, arrY)
	require.Equal(t, 1, c, "Y should rank ahead of X: null is least at index 1")
}

func TestCompareNullLeastAllNil(t *testing.T) {
	require.Equal(t, 0, compareNullLeast([]*int{nil, nil}, []*int{nil, nil}))
}
