package engine

import (
	"context"
	"fmt"
	"runtime"

	"github.com/region-odds/playoffsim/internal/model"
)

// VerifyReproducibility runs cfg twice under a fixed seed — once with a
// single worker, once with runtime.NumCPU() workers — and reports whether
// the two runs produced byte-identical (rounded) odds rows. It exists as a
// reusable helper rather than a one-off test so future engine changes can be
// checked the same way.
func VerifyReproducibility(schools []model.School, games []model.Game, cfg RunConfig, seed uint64) (bool, error) {
	cfg.RNGSeed = &seed

	single := cfg
	single.Workers = 1
	singleResult, err := Run(context.Background(), schools, games, single)
	if err != nil {
		return false, fmt.Errorf("verify: single-worker run: %w", err)
	}

	parallel := cfg
	parallel.Workers = runtime.NumCPU()
	parallelResult, err := Run(context.Background(), schools, games, parallel)
	if err != nil {
		return false, fmt.Errorf("verify: parallel run: %w", err)
	}

	return rowsEqual(singleResult.Rows, parallelResult.Rows), nil
}

func rowsEqual(a, b []model.SchoolOdds) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
