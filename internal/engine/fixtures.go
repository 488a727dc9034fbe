package engine

import (
	"sort"

	"github.com/region-odds/playoffsim/internal/model"
)

// Fixtures is the immutable, once-built output of the fixture builder: the
// region's school set (dense-indexed for per-trial cache locality) and its
// completed/remaining pair set.
type Fixtures struct {
	Schools []string       // sorted school names, index == dense id
	Index   map[string]int // school name -> dense id

	Completed []model.Pair // Status == StatusCompleted
	Remaining []model.Pair // Status == StatusRemaining

	// CompletedPointsAllowed[i] is the sum of opponent points scored
	// against school i across completed region games, by dense id. It is
	// computed once from the raw Game rows (which carry absolute scores),
	// since a completed Pair only retains ResA/PDA, never an absolute score.
	CompletedPointsAllowed []int
}

// N returns the number of schools in the region.
func (f *Fixtures) N() int { return len(f.Schools) }

type pairSide struct {
	res       *model.Result
	pointsFor *int
	pointsAgt *int
	present   bool
}

type pairBuilder struct {
	a, b      string // a < b
	fromA     pairSide
	fromB     pairSide
	anyFinal  bool
	anyRemain bool
}

// BuildFixtures partitions a season's region games into completed and
// remaining pairs, per the fixture builder design. It fails fast with a
// typed error (EmptyRegionError, MissingOpponentError, InconsistentPairError,
// InvalidInputError) rather than starting any trial.
func BuildFixtures(schools []model.School, games []model.Game, class, region, season int) (*Fixtures, error) {
	inRegion := make(map[string]bool)
	for _, s := range schools {
		if s.Class == class && s.Region == region && s.Season == season {
			inRegion[s.Name] = true
		}
	}
	if len(inRegion) == 0 {
		return nil, &EmptyRegionError{Class: class, Region: region, Season: season}
	}

	pointsAllowedRaw := make(map[string]int)

	builders := make(map[[2]string]*pairBuilder)
	getBuilder := func(a, b string) *pairBuilder {
		lo, hi := a, b
		if hi < lo {
			lo, hi = hi, lo
		}
		key := [2]string{lo, hi}
		pb, ok := builders[key]
		if !ok {
			pb = &pairBuilder{a: lo, b: hi}
			builders[key] = pb
		}
		return pb
	}

	for _, g := range games {
		if !g.IsRegion || g.Season != season {
			continue
		}
		schoolIn := inRegion[g.School]
		oppIn := inRegion[g.Opponent]
		if !schoolIn && !oppIn {
			continue // both endpoints outside the region: ignored
		}
		if !oppIn {
			return nil, &MissingOpponentError{School: g.School, Opponent: g.Opponent}
		}
		if !schoolIn {
			// Mirror row for a school outside this region view; the
			// in-region side's own row carries the data we need.
			continue
		}

		pb := getBuilder(g.School, g.Opponent)
		side := pairSide{present: true}
		if g.IsFinal {
			if g.Result == nil || g.PointsFor == nil || g.PointsAgainst == nil {
				return nil, &InvalidInputError{Reason: "final region game missing result or points"}
			}
			if *g.PointsFor < 0 || *g.PointsAgainst < 0 {
				return nil, &InvalidInputError{Reason: "negative points in final region game"}
			}
			if *g.Result != model.Win && *g.Result != model.Loss && *g.Result != model.Tie {
				return nil, &InvalidInputError{Reason: "unknown result value"}
			}
			side.res = g.Result
			side.pointsFor = g.PointsFor
			side.pointsAgt = g.PointsAgainst
			pb.anyFinal = true
			pointsAllowedRaw[g.School] += *g.PointsAgainst
		} else {
			pb.anyRemain = true
		}

		if g.School == pb.a {
			pb.fromA = side
		} else {
			pb.fromB = side
		}
	}

	names := make([]string, 0, len(inRegion))
	for n := range inRegion {
		names = append(names, n)
	}
	sort.Strings(names)
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}

	f := &Fixtures{Schools: names, Index: index, CompletedPointsAllowed: make([]int, len(names))}
	for name, idx := range index {
		f.CompletedPointsAllowed[idx] = pointsAllowedRaw[name]
	}

	keys := make([][2]string, 0, len(builders))
	for k := range builders {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})

	for _, k := range keys {
		pb := builders[k]
		if pb.anyFinal {
			pair, err := resolveCompletedPair(pb)
			if err != nil {
				return nil, err
			}
			f.Completed = append(f.Completed, pair)
			continue
		}
		f.Remaining = append(f.Remaining, model.Pair{A: pb.a, B: pb.b, Status: model.StatusRemaining})
	}

	return f, nil
}

// resolveCompletedPair applies the documented canonical-side rule: a's
// result/points are used when present; otherwise b's side is inverted. If
// both sides are present, they must agree (complementary results and
// symmetric scores); disagreement is an unrecoverable data defect.
func resolveCompletedPair(pb *pairBuilder) (model.Pair, error) {
	switch {
	case pb.fromA.present && pb.fromB.present:
		resA, pdA, err := combineSides(pb)
		if err != nil {
			return model.Pair{}, err
		}
		return model.Pair{A: pb.a, B: pb.b, Status: model.StatusCompleted, ResA: resA, PDA: pdA}, nil
	case pb.fromA.present:
		return model.Pair{
			A: pb.a, B: pb.b, Status: model.StatusCompleted,
			ResA: *pb.fromA.res,
			PDA:  *pb.fromA.pointsFor - *pb.fromA.pointsAgt,
		}, nil
	case pb.fromB.present:
		return model.Pair{
			A: pb.a, B: pb.b, Status: model.StatusCompleted,
			ResA: invertResult(*pb.fromB.res),
			PDA:  *pb.fromB.pointsAgt - *pb.fromB.pointsFor,
		}, nil
	default:
		return model.Pair{}, &InvalidInputError{Reason: "completed pair with no final side recorded"}
	}
}

func combineSides(pb *pairBuilder) (model.Result, int, error) {
	resA := *pb.fromA.res
	resB := *pb.fromB.res
	pdA := *pb.fromA.pointsFor - *pb.fromA.pointsAgt
	pdBInverted := *pb.fromB.pointsAgt - *pb.fromB.pointsFor

	if resA != invertResult(resB) {
		return 0, 0, &InconsistentPairError{A: pb.a, B: pb.b, Reason: "sides disagree on result"}
	}
	if pdA != pdBInverted {
		return 0, 0, &InconsistentPairError{A: pb.a, B: pb.b, Reason: "sides disagree on point differential"}
	}
	return resA, pdA, nil
}

func invertResult(r model.Result) model.Result {
	switch r {
	case model.Win:
		return model.Loss
	case model.Loss:
		return model.Win
	default:
		return model.Tie
	}
}
