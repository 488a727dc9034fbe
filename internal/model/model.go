// Package model defines the data types shared across the region-finish
// engine: the frozen input snapshot (schools, games), the fixture pair set
// derived from it, per-trial place assignments, the run-wide odds
// accumulator, and the final per-school odds row the engine returns. The
// per-trial simulation state itself lives in the engine package.
package model

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// Result is the outcome of a finished game from one side's perspective.
type Result int

const (
	Loss Result = iota - 1
	Tie
	Win
)

// String returns "W", "T", or "L".
func (r Result) String() string {
	switch r {
	case Win:
		return "W"
	case Tie:
		return "T"
	case Loss:
		return "L"
	default:
		return "?"
	}
}

// Points returns the match-point value of the result: W=1, T=0.5, L=0.
func (r Result) Points() float64 {
	switch r {
	case Win:
		return 1
	case Tie:
		return 0.5
	default:
		return 0
	}
}

// School identifies one program within a single (class, region, season).
type School struct {
	Name   string
	Class  int
	Region int
	Season int
}

// Game is one side's record of a single matchup. Every real-world match
// appears as two Game rows, one from each side; the fixture builder
// collapses them into a single Pair.
type Game struct {
	School        string
	Opponent      string
	Season        int
	IsFinal       bool
	IsRegion      bool
	Result        *Result
	PointsFor     *int
	PointsAgainst *int
}

// PairStatus distinguishes a region matchup that has already been played
// from one the engine must simulate.
type PairStatus int

const (
	StatusCompleted PairStatus = iota
	StatusRemaining
)

// Pair is the canonical, unordered record of one region matchup. A and B are
// ordered so that A < B lexicographically. For completed pairs, ResA and
// PDA are from A's perspective; remaining pairs carry zero values for both,
// and a trial's sampled outcome is kept in that trial's state, never written
// back into the Pair.
type Pair struct {
	A, B   string
	Status PairStatus
	ResA   Result
	PDA    int
}

// Key returns the canonical (a, b) identity of the pair.
func (p Pair) Key() [2]string { return [2]string{p.A, p.B} }

// String renders the pair for diagnostics.
func (p Pair) String() string {
	if p.Status == StatusCompleted {
		return fmt.Sprintf("%s vs %s (final, res_a=%s, pd_a=%d)", p.A, p.B, p.ResA, p.PDA)
	}
	return fmt.Sprintf("%s vs %s (remaining)", p.A, p.B)
}

// PlaceAssignment is a school's finishing slot range in one trial. First
// equals Last unless the school remains tied with others after every
// tiebreak step, in which case the group shares [First, Last].
type PlaceAssignment struct {
	School      string
	First, Last int
}

// Width returns the number of slots this assignment spans.
func (pa PlaceAssignment) Width() int { return pa.Last - pa.First + 1 }

// SchoolOdds is the final, rounded output row for one school, matching the
// persistence-contract tuple of the external interface.
type SchoolOdds struct {
	School            string
	Class             int
	Region            int
	Season            int
	Odds1st           float64
	Odds2nd           float64
	Odds3rd           float64
	Odds4th           float64
	OddsPlayoffs      float64
	FinalOddsPlayoffs float64
	Clinched          bool
	Eliminated        bool
}

// OddsAccumulator holds, per school (by dense index), the count of trials in
// which that school landed in each of the top four slots. It spans the
// entire run and is only ever summed, never reset mid-run.
type OddsAccumulator struct {
	Schools []string
	Counts  [][4]int64 // Counts[i][k] = trials where school i finished in slot k+1
	Trials  int64
}

// NewOddsAccumulator returns a zeroed accumulator for the given schools.
func NewOddsAccumulator(schools []string) *OddsAccumulator {
	return &OddsAccumulator{
		Schools: schools,
		Counts:  make([][4]int64, len(schools)),
	}
}

// MarshalCSV renders rows as CSV, one line per school, matching exactly the
// persistence-contract tuple of SchoolOdds (no per-slot scenario detail).
func MarshalCSV(rows []SchoolOdds) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"class", "region", "season", "school", "odds_1st", "odds_2nd", "odds_3rd", "odds_4th", "odds_playoffs", "final_odds_playoffs", "clinched", "eliminated"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Class), strconv.Itoa(r.Region), strconv.Itoa(r.Season),
			r.School,
			strconv.FormatFloat(r.Odds1st, 'f', 5, 64),
			strconv.FormatFloat(r.Odds2nd, 'f', 5, 64),
			strconv.FormatFloat(r.Odds3rd, 'f', 5, 64),
			strconv.FormatFloat(r.Odds4th, 'f', 5, 64),
			strconv.FormatFloat(r.OddsPlayoffs, 'f', 5, 64),
			strconv.FormatFloat(r.FinalOddsPlayoffs, 'f', 5, 64),
			strconv.FormatBool(r.Clinched),
			strconv.FormatBool(r.Eliminated),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Add merges other's counts and trial count into acc. Commutative and
// associative, so worker scheduling never affects the merged result.
func (acc *OddsAccumulator) Add(other *OddsAccumulator) {
	for i := range acc.Counts {
		for k := 0; k < 4; k++ {
			acc.Counts[i][k] += other.Counts[i][k]
		}
	}
	acc.Trials += other.Trials
}
