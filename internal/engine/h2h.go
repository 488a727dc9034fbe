package engine

import "github.com/region-odds/playoffsim/internal/model"

// simState is the per-trial, per-worker scratch state: W/L/T, region points
// allowed (from sampled games only — completed-game points allowed is
// precomputed once in Fixtures, see fixtures.go), and the head-to-head
// store, all indexed by the fixtures' dense school ids. Every field is a
// pre-sized, reused buffer — cleared between trials rather than
// reallocated, per the engine's performance design.
type simState struct {
	n int

	wins, losses, ties   []int
	sampledPointsAllowed []int

	h2hPts [][]float64 // h2hPts[a][b] = a's match points against b
	h2hPD  [][]int     // h2hPD[a][b] = a's signed point differential against b
	played [][]bool    // played[a][b] = true if a and b have met (completed or sampled)
}

func newSimState(n int) *simState {
	s := &simState{
		n:                    n,
		wins:                 make([]int, n),
		losses:               make([]int, n),
		ties:                 make([]int, n),
		sampledPointsAllowed: make([]int, n),
		h2hPts:               make([][]float64, n),
		h2hPD:                make([][]int, n),
		played:               make([][]bool, n),
	}
	for i := 0; i < n; i++ {
		s.h2hPts[i] = make([]float64, n)
		s.h2hPD[i] = make([]int, n)
		s.played[i] = make([]bool, n)
	}
	return s
}

// reset clears all per-trial buffers in place without reallocating.
func (s *simState) reset() {
	for i := 0; i < s.n; i++ {
		s.wins[i], s.losses[i], s.ties[i], s.sampledPointsAllowed[i] = 0, 0, 0, 0
		for j := 0; j < s.n; j++ {
			s.h2hPts[i][j] = 0
			s.h2hPD[i][j] = 0
			s.played[i][j] = false
		}
	}
}

// recordDecided merges one decided game's result and point differential
// (from a's perspective) into W/L/T and the H2H store. It is used both to
// seed completed pairs and to apply a sampled remaining pair's outcome; it
// never touches points-allowed, since a completed Pair carries only ResA
// and PDA, never an absolute score.
func (s *simState) recordDecided(a, b int, resA model.Result, pdA int) {
	switch resA {
	case model.Win:
		s.wins[a]++
		s.losses[b]++
	case model.Loss:
		s.losses[a]++
		s.wins[b]++
	case model.Tie:
		s.ties[a]++
		s.ties[b]++
	}

	aPts := resA.Points()
	bPts := 1 - aPts
	s.h2hPts[a][b] += aPts
	s.h2hPts[b][a] += bPts
	s.h2hPD[a][b] += pdA
	s.h2hPD[b][a] -= pdA
	s.played[a][b] = true
	s.played[b][a] = true
}

// recordSampledScore adds a sampled remaining game's absolute score to both
// sides' points-allowed. Only the sampler produces absolute scores (a
// completed Pair does not), so this is only ever called for remaining pairs.
func (s *simState) recordSampledScore(a, b int, pointsForA, pointsAgainstA int) {
	s.sampledPointsAllowed[a] += pointsAgainstA
	s.sampledPointsAllowed[b] += pointsForA
}

// h2hPtsAmong returns the sum of a's match points against every other school
// in ids (excluding a itself) — used for the tiebreak comparator's
// head-to-head record step.
func (s *simState) h2hPtsAmong(a int, ids []int) float64 {
	total := 0.0
	for _, o := range ids {
		if o == a {
			continue
		}
		total += s.h2hPts[a][o]
	}
	return total
}

// h2hCappedPDAmong returns the sum of a's capped point differential against
// every other school in ids (excluding a itself) — used for the tiebreak
// comparator's capped point-differential step.
func (s *simState) h2hCappedPDAmong(a int, ids []int, cap int) int {
	total := 0
	for _, o := range ids {
		if o == a {
			continue
		}
		total += clamp(s.h2hPD[a][o], -cap, cap)
	}
	return total
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
