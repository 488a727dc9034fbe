// Package engine implements the region-finish Monte Carlo playoff-odds
// engine: the deterministic standings-and-tiebreak ranker over a complete
// set of region game outcomes, and the trial driver that repeatedly samples
// remaining games and aggregates per-slot probabilities into final,
// renormalized odds.
package engine

import (
	"context"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/region-odds/playoffsim/internal/model"
)

// RunConfig is everything the engine needs to run one region's Monte Carlo
// simulation.
type RunConfig struct {
	Class, Region, Season int
	Trials                int
	RNGSeed               *uint64

	PlayoffSpots    int
	PDCap           int
	ClinchThreshold float64
	ElimThreshold   float64

	Workers int // 0 means runtime.NumCPU()
	Logger  *zap.Logger
}

// withDefaults returns a copy of cfg with zero-valued optional fields filled
// in from the engine's standard constants.
func (cfg RunConfig) withDefaults() RunConfig {
	if cfg.Trials == 0 {
		cfg.Trials = 20000
	}
	if cfg.PlayoffSpots == 0 {
		cfg.PlayoffSpots = 4
	}
	if cfg.PDCap == 0 {
		cfg.PDCap = DefaultPDCap
	}
	if cfg.ClinchThreshold == 0 {
		cfg.ClinchThreshold = 0.999
	}
	if cfg.ElimThreshold == 0 {
		cfg.ElimThreshold = 0.001
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return cfg
}

// Result is the outcome of a Run: the final per-school odds rows, ordered
// region asc, final_odds_playoffs desc, school asc, the actual RNG seed
// used (reported back when the caller didn't supply one), and a non-nil
// Err only in the cancelled case (partial odds are still populated).
type Result struct {
	Rows      []model.SchoolOdds
	SeedUsed  uint64
	TrialsRun int64
	Err       error
}

// Run executes the region-finish Monte Carlo engine for one region. It
// validates and builds fixtures before starting any trial (EmptyRegion,
// InconsistentPair, MissingOpponent, InvalidInput all fail here); trials
// then run across a fixed worker pool, each owning private scratch state,
// until Trials is reached or ctx is cancelled.
func Run(ctx context.Context, schools []model.School, games []model.Game, cfg RunConfig) (Result, error) {
	cfg = cfg.withDefaults()
	if cfg.Trials < 1 {
		return Result{}, &InvalidInputError{Reason: "trials must be >= 1"}
	}

	fx, err := BuildFixtures(schools, games, cfg.Class, cfg.Region, cfg.Season)
	if err != nil {
		return Result{}, err
	}

	seed := uint64(0)
	if cfg.RNGSeed != nil {
		seed = *cfg.RNGSeed
	} else {
		seed = defaultSeed()
	}

	cfg.Logger.Debug("fixtures built",
		zap.Int("schools", fx.N()),
		zap.Int("completed_pairs", len(fx.Completed)),
		zap.Int("remaining_pairs", len(fx.Remaining)),
	)

	workers := cfg.Workers
	if int64(workers) > int64(cfg.Trials) {
		workers = cfg.Trials
	}
	if workers < 1 {
		workers = 1
	}

	perWorker := cfg.Trials / workers
	remainder := cfg.Trials % workers

	accumulators := make([]*model.OddsAccumulator, workers)
	var wg sync.WaitGroup
	start := 0
	for w := 0; w < workers; w++ {
		n := perWorker
		if w < remainder {
			n++
		}
		wg.Add(1)
		go func(workerIdx, startTrial, numTrials int) {
			defer wg.Done()
			accumulators[workerIdx] = runWorker(ctx, fx, cfg, seed, startTrial, numTrials)
		}(w, start, n)
		start += n
	}
	wg.Wait()

	merged := model.NewOddsAccumulator(fx.Schools)
	for _, acc := range accumulators {
		merged.Add(acc)
	}

	rows := FinalOdds(merged, cfg.Class, cfg.Region, cfg.Season, cfg.PlayoffSpots, cfg.ClinchThreshold, cfg.ElimThreshold)
	sortRows(rows)

	result := Result{Rows: rows, SeedUsed: seed, TrialsRun: merged.Trials}
	if merged.Trials < int64(cfg.Trials) {
		cfg.Logger.Warn("run cancelled before completion",
			zap.Int64("trials_completed", merged.Trials),
			zap.Int("trials_requested", cfg.Trials),
		)
		result.Err = &CancelledError{TrialsCompleted: int(merged.Trials)}
		return result, result.Err
	}
	return result, nil
}

// runWorker runs numTrials independent trials, covering global trial indices
// [startTrial, startTrial+numTrials), against a private simState, returning
// this worker's own OddsAccumulator. It checks ctx between trials only — a
// single trial is short enough that mid-trial cancellation isn't offered.
func runWorker(ctx context.Context, fx *Fixtures, cfg RunConfig, masterSeed uint64, startTrial, numTrials int) *model.OddsAccumulator {
	acc := model.NewOddsAccumulator(fx.Schools)
	state := newSimState(fx.N())

	for t := 0; t < numTrials; t++ {
		select {
		case <-ctx.Done():
			return acc
		default:
		}
		rng := newTrialRNG(masterSeed, startTrial+t)
		assignments := runTrial(state, rng, fx, cfg.PDCap)
		creditTrial(acc, assignments)
	}
	return acc
}

// runTrial executes one trial's state machine: Empty → Sampled → H2H-built →
// Bucketed → Ordered-within-buckets → PlacesAssigned. Each stage reads only
// the previous stage's output.
func runTrial(state *simState, rng *rand.Rand, fx *Fixtures, pdCap int) []model.PlaceAssignment {
	state.reset()

	// Sampled + H2H-built: seed completed pairs, then sample and merge
	// remaining pairs.
	for _, pair := range fx.Completed {
		a, b := fx.Index[pair.A], fx.Index[pair.B]
		state.recordDecided(a, b, pair.ResA, pair.PDA)
	}
	for _, pair := range fx.Remaining {
		a, b := fx.Index[pair.A], fx.Index[pair.B]
		outcome := sampleGame(rng)
		res := model.Loss
		if outcome.aWins {
			res = model.Win
		}
		state.recordDecided(a, b, res, outcome.pdA)
		state.recordSampledScore(a, b, outcome.pointsForA, outcome.pointsAgainstA)
	}

	// Bucketed: base ranker.
	records := state.buildRecords(fx)
	buckets := buildBuckets(records, fx.Schools)

	// Ordered-within-buckets + PlacesAssigned: tiebreak ranker.
	var assignments []model.PlaceAssignment
	slot := 1
	for _, bkt := range buckets {
		assignments = append(assignments, assignBucketSlots(state, records, fx.Schools, bkt.ids, slot, pdCap)...)
		slot += len(bkt.ids)
	}
	return assignments
}

// sortRows orders output region asc, final_odds_playoffs desc, school asc.
func sortRows(rows []model.SchoolOdds) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Region != rows[j].Region {
			return rows[i].Region < rows[j].Region
		}
		if rows[i].FinalOddsPlayoffs != rows[j].FinalOddsPlayoffs {
			return rows[i].FinalOddsPlayoffs > rows[j].FinalOddsPlayoffs
		}
		return rows[i].School < rows[j].School
	})
}
