package odecore

import (
	"errors"
	"fmt"
)

// Domain errors for integration runs.
var (
	// ErrDimensionMismatch indicates state, matrix, or offset dimensions
	// disagree. Raised at construction time, never mid-run.
	ErrDimensionMismatch = errors.New("odecore: dimension mismatch")

	// ErrSingularSystem indicates the implicit update system is not
	// solvable to the required tolerance. Fatal to the current run.
	ErrSingularSystem = errors.New("odecore: singular linear system")

	// ErrInvalidStepSize indicates dt <= 0 or tf < t0. Raised before any
	// stepping begins.
	ErrInvalidStepSize = errors.New("odecore: invalid step size or interval")

	// ErrNonFiniteState indicates the produced state contains NaN or Inf.
	ErrNonFiniteState = errors.New("odecore: non-finite state")

	// ErrNotLinear indicates a stepper required the LinearSystem
	// capability and the right-hand side does not provide it.
	ErrNotLinear = errors.New("odecore: right-hand side does not expose linear structure")
)

// StepError wraps a failure with the step index and time at which it
// occurred.
type StepError struct {
	Step int
	Time float64
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g): %v", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
