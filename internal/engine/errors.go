package engine

import "fmt"

// Sentinel error kinds the engine surfaces, per the error-handling design:
// InvalidInput, EmptyRegion, InconsistentPair, and MissingOpponent fail a
// run before any trial runs; Cancelled is only ever returned alongside
// partial results.
var (
	ErrEmptyRegion      = fmt.Errorf("engine: empty region")
	ErrInconsistentPair = fmt.Errorf("engine: inconsistent pair")
	ErrMissingOpponent  = fmt.Errorf("engine: missing opponent")
	ErrInvalidInput     = fmt.Errorf("engine: invalid input")
	ErrCancelled        = fmt.Errorf("engine: run cancelled")
)

// EmptyRegionError reports that no schools matched (class, region, season).
type EmptyRegionError struct {
	Class, Region, Season int
}

func (e *EmptyRegionError) Error() string {
	return fmt.Sprintf("no schools found for class=%d region=%d season=%d", e.Class, e.Region, e.Season)
}

func (e *EmptyRegionError) Unwrap() error { return ErrEmptyRegion }

// InconsistentPairError reports that the two sides of a completed region
// game disagree in a way the canonical-side rule cannot resolve (e.g. both
// sides claim a win, or the scores are mutually impossible).
type InconsistentPairError struct {
	A, B   string
	Reason string
}

func (e *InconsistentPairError) Error() string {
	return fmt.Sprintf("inconsistent completed game between %s and %s: %s", e.A, e.B, e.Reason)
}

func (e *InconsistentPairError) Unwrap() error { return ErrInconsistentPair }

// MissingOpponentError reports that a region game references a school not
// present in the region's school set.
type MissingOpponentError struct {
	School, Opponent string
}

func (e *MissingOpponentError) Error() string {
	return fmt.Sprintf("game %s vs %s references an opponent outside the region", e.School, e.Opponent)
}

func (e *MissingOpponentError) Unwrap() error { return ErrMissingOpponent }

// InvalidInputError reports a malformed run configuration: trials < 1,
// negative points, or an unrecognized result value.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// CancelledError wraps ErrCancelled with the number of trials completed
// before the cooperative cancellation signal was observed.
type CancelledError struct {
	TrialsCompleted int
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("run cancelled after %d trials", e.TrialsCompleted)
}

func (e *CancelledError) Unwrap() error { return ErrCancelled }
