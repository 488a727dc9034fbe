package engine

import "sort"

// schoolRecord is one school's region standing within a single trial,
// addressed by dense id.
type schoolRecord struct {
	id         int
	wins       int
	losses     int
	ties       int
	winPct     float64
	ptsAllowed int
}

func (s *simState) buildRecords(fx *Fixtures) []schoolRecord {
	n := fx.N()
	records := make([]schoolRecord, n)
	for i := 0; i < n; i++ {
		w, l, t := s.wins[i], s.losses[i], s.ties[i]
		gp := w + l + t
		winPct := 0.0
		if gp > 0 {
			winPct = (float64(w) + 0.5*float64(t)) / float64(gp)
		}
		records[i] = schoolRecord{
			id:         i,
			wins:       w,
			losses:     l,
			ties:       t,
			winPct:     winPct,
			ptsAllowed: fx.CompletedPointsAllowed[i] + s.sampledPointsAllowed[i],
		}
	}
	return records
}

// bucket is a dense-rank group of schools sharing (win_pct, region_losses).
type bucket struct {
	ids []int // dense school ids in this bucket, school-asc order for stability
}

// buildBuckets computes the dense-rank bucketing: the key is strictly
// (win_pct desc, losses asc); "school asc" only stabilizes the overall
// ordering used to number buckets, it never splits a tied (win_pct,
// losses) pair into separate buckets.
func buildBuckets(records []schoolRecord, schools []string) []bucket {
	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := records[order[i]], records[order[j]]
		if a.winPct != b.winPct {
			return a.winPct > b.winPct
		}
		if a.losses != b.losses {
			return a.losses < b.losses
		}
		return schools[a.id] < schools[b.id]
	})

	var buckets []bucket
	for _, idx := range order {
		rec := records[idx]
		if len(buckets) == 0 {
			buckets = append(buckets, bucket{ids: []int{rec.id}})
			continue
		}
		last := &buckets[len(buckets)-1]
		lastRec := records[last.ids[0]]
		if lastRec.winPct == rec.winPct && lastRec.losses == rec.losses {
			last.ids = append(last.ids, rec.id)
		} else {
			buckets = append(buckets, bucket{ids: []int{rec.id}})
		}
	}
	return buckets
}
