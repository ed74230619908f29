package sim

import (
	"errors"
	"fmt"
)

// Domain errors for simulation runs.
var (
	// ErrInvalidParameters indicates a non-positive rate, step size, or duration.
	ErrInvalidParameters = errors.New("sim: invalid parameters")

	// ErrNotFinite indicates the integration diverged to NaN or Inf.
	ErrNotFinite = errors.New("sim: state not finite")

	// ErrDimensionMismatch indicates the initial state does not match the system.
	ErrDimensionMismatch = errors.New("sim: state dimension mismatch")
)

// StepError wraps an error with the step and time at which it occurred.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
