package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrUnstable marks a run whose field picked up NaN or Inf values,
	// usually from a timestep above the stability limit.
	ErrUnstable = errors.New("simulation unstable")

	// ErrBadConfig marks an invalid run configuration.
	ErrBadConfig = errors.New("invalid simulation config")
)

// StepError wraps a failure at a specific step of a run.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error { return e.Wrapped }
