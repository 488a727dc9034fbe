package engine

import (
	"math"

	"github.com/region-odds/playoffsim/internal/model"
)

// creditTrial increments acc's per-slot counters for every school covered by
// its PlaceAssignment.
func creditTrial(acc *model.OddsAccumulator, assignments []model.PlaceAssignment) {
	idx := make(map[string]int, len(acc.Schools))
	for i, name := range acc.Schools {
		idx[name] = i
	}
	for _, pa := range assignments {
		i, ok := idx[pa.School]
		if !ok {
			continue
		}
		for k := 1; k <= 4; k++ {
			if k >= pa.First && k <= pa.Last {
				acc.Counts[i][k-1]++
			}
		}
	}
	acc.Trials++
}

// FinalOdds computes the rounded, clamped, renormalized per-school output
// rows given the accumulated trial counts and the run's configured
// playoff-spots / clinch / elimination thresholds.
func FinalOdds(acc *model.OddsAccumulator, class, region, season, playoffSpots int, clinchThreshold, elimThreshold float64) []model.SchoolOdds {
	n := len(acc.Schools)
	rows := make([]model.SchoolOdds, n)
	adj := make([]float64, n)
	clinched := make([]bool, n)
	eliminated := make([]bool, n)

	trials := float64(acc.Trials)
	for i, name := range acc.Schools {
		var o1, o2, o3, o4 float64
		if trials > 0 {
			o1 = float64(acc.Counts[i][0]) / trials
			o2 = float64(acc.Counts[i][1]) / trials
			o3 = float64(acc.Counts[i][2]) / trials
			o4 = float64(acc.Counts[i][3]) / trials
		}
		playoffs := o1 + o2 + o3 + o4
		c := playoffs >= clinchThreshold
		e := playoffs <= elimThreshold
		clinched[i] = c
		eliminated[i] = e

		a := playoffs
		if c {
			a = 1.0
		} else if e {
			a = 0.0
		}
		adj[i] = a

		rows[i] = model.SchoolOdds{
			School:       name,
			Class:        class,
			Region:       region,
			Season:       season,
			Odds1st:      round5(o1),
			Odds2nd:      round5(o2),
			Odds3rd:      round5(o3),
			Odds4th:      round5(o4),
			OddsPlayoffs: round5(playoffs),
			Clinched:     c,
			Eliminated:   e,
		}
	}

	sumClinched, sumEliminated, sumActive := 0.0, 0.0, 0.0
	for i := range rows {
		switch {
		case clinched[i]:
			sumClinched += adj[i]
		case eliminated[i]:
			sumEliminated += adj[i]
		default:
			sumActive += adj[i]
		}
	}
	freeSpots := float64(playoffSpots) - sumClinched - sumEliminated

	for i := range rows {
		var final float64
		switch {
		case clinched[i]:
			final = 1.0
		case eliminated[i]:
			final = 0.0
		case sumActive > 0:
			final = adj[i] * (freeSpots / sumActive)
		default:
			final = adj[i]
		}

		finalClinched := rows[i].Clinched
		finalEliminated := rows[i].Eliminated
		if final >= clinchThreshold {
			final = 1.0
			finalClinched = true
		} else if final <= elimThreshold {
			final = 0.0
			finalEliminated = true
		}

		rows[i].FinalOddsPlayoffs = round5(final)
		rows[i].Clinched = finalClinched
		rows[i].Eliminated = finalEliminated
	}

	return rows
}

func round5(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}
