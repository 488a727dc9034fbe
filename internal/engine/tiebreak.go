package engine

import (
	"sort"

	"github.com/region-odds/playoffsim/internal/model"
)

// DefaultPDCap is the capped-point-differential bound used in the tiebreak
// comparator's Step 3, exposed as a constant on the configuration surface.
const DefaultPDCap = 12

// outsideOrder ranks the schools not in bucketIDs by (win_pct desc, L asc,
// school asc) — the fixed opponent-ranking order shared by both
// lexicographic tiebreak steps.
func outsideOrder(records []schoolRecord, bucketIDs []int, schools []string) []int {
	inBucket := make(map[int]bool, len(bucketIDs))
	for _, id := range bucketIDs {
		inBucket[id] = true
	}
	var out []int
	for _, r := range records {
		if !inBucket[r.id] {
			out = append(out, r.id)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := records[out[i]], records[out[j]]
		if a.winPct != b.winPct {
			return a.winPct > b.winPct
		}
		if a.losses != b.losses {
			return a.losses < b.losses
		}
		return schools[out[i]] < schools[out[j]]
	})
	return out
}

// step2Value returns {W:2, T:1, L:0} for school's game against opp, or nil
// if they never played (null, which compares as least).
func step2Value(s *simState, school, opp int) *int {
	if !s.played[school][opp] {
		return nil
	}
	v := int(s.h2hPts[school][opp] * 2) // 1 -> 2 (W), 0.5 -> 1 (T), 0 -> 0 (L)
	return &v
}

// step4Value returns the signed point differential for school's game
// against opp, or nil if they never played.
func step4Value(s *simState, school, opp int) *int {
	if !s.played[school][opp] {
		return nil
	}
	v := s.h2hPD[school][opp]
	return &v
}

// compareNullLeast lexicographically compares two equal-length *int arrays
// where a nil element is treated as strictly less than any numeric value.
// Returns -1 if a ranks better (greater, since "higher is better" in both
// Step 2 and Step 4), +1 if b ranks better, 0 if identical throughout.
func compareNullLeast(a, b []*int) int {
	for i := range a {
		av, bv := a[i], b[i]
		switch {
		case av == nil && bv == nil:
			continue
		case av == nil:
			return 1 // a is null (least), b wins
		case bv == nil:
			return -1 // b is null (least), a wins
		case *av != *bv:
			if *av > *bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

// tiebreakCompare implements the five-step comparator for two schools within
// the same bucket. Returns -1 if a ranks ahead of b, +1 if b ranks ahead of
// a, 0 if they remain tied after all five steps (co-placed).
func tiebreakCompare(s *simState, records []schoolRecord, bucketIDs []int, out []int, a, b, pdCap int) int {
	// Step 1: H2H record among tied teams, higher is better.
	h2hA := s.h2hPtsAmong(a, bucketIDs)
	h2hB := s.h2hPtsAmong(b, bucketIDs)
	if h2hA != h2hB {
		if h2hA > h2hB {
			return -1
		}
		return 1
	}

	// Step 2: lexicographic result array vs ranked outside opponents.
	arrA := make([]*int, len(out))
	arrB := make([]*int, len(out))
	for i, o := range out {
		arrA[i] = step2Value(s, a, o)
		arrB[i] = step2Value(s, b, o)
	}
	if c := compareNullLeast(arrA, arrB); c != 0 {
		return c
	}

	// Step 3: capped H2H point differential among tied teams, higher better.
	pdA := s.h2hCappedPDAmong(a, bucketIDs, pdCap)
	pdB := s.h2hCappedPDAmong(b, bucketIDs, pdCap)
	if pdA != pdB {
		if pdA > pdB {
			return -1
		}
		return 1
	}

	// Step 4: uncapped point differential vs the same ranked outsiders.
	for i, o := range out {
		arrA[i] = step4Value(s, a, o)
		arrB[i] = step4Value(s, b, o)
	}
	if c := compareNullLeast(arrA, arrB); c != 0 {
		return c
	}

	// Step 5: region points allowed, lower is better.
	paA := records[indexOf(records, a)].ptsAllowed
	paB := records[indexOf(records, b)].ptsAllowed
	if paA != paB {
		if paA < paB {
			return -1
		}
		return 1
	}

	return 0
}

func indexOf(records []schoolRecord, id int) int {
	for i, r := range records {
		if r.id == id {
			return i
		}
	}
	return -1
}

// assignBucketSlots orders one bucket's schools by the five-step comparator
// and returns their PlaceAssignments, with ties co-placed into a shared
// [first, last] range starting at startSlot.
func assignBucketSlots(s *simState, records []schoolRecord, schools []string, bucketIDs []int, startSlot, pdCap int) []model.PlaceAssignment {
	out := outsideOrder(records, bucketIDs, schools)

	ordered := make([]int, len(bucketIDs))
	copy(ordered, bucketIDs)
	sort.Slice(ordered, func(i, j int) bool {
		return schools[ordered[i]] < schools[ordered[j]]
	})
	sort.SliceStable(ordered, func(i, j int) bool {
		return tiebreakCompare(s, records, bucketIDs, out, ordered[i], ordered[j], pdCap) < 0
	})

	assignments := make([]model.PlaceAssignment, 0, len(ordered))
	i := 0
	slot := startSlot
	for i < len(ordered) {
		j := i + 1
		for j < len(ordered) && tiebreakCompare(s, records, bucketIDs, out, ordered[i], ordered[j], pdCap) == 0 {
			j++
		}
		groupSize := j - i
		first, last := slot, slot+groupSize-1
		for k := i; k < j; k++ {
			assignments = append(assignments, model.PlaceAssignment{
				School: schools[ordered[k]],
				First:  first,
				Last:   last,
			})
		}
		slot += groupSize
		i = j
	}
	return assignments
}
