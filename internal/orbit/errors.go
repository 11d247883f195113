package orbit

import (
	"errors"
	"fmt"
)

// Domain errors for integration runs. All abort the call that raised
// them; none are downgraded to warnings.
var (
	// ErrConfig indicates an invalid or inconsistent integration request.
	ErrConfig = errors.New("orbit: invalid integration request")

	// ErrEvaluation indicates the force model failed or produced
	// non-finite values.
	ErrEvaluation = errors.New("orbit: force model produced non-finite values")

	// ErrConvergence indicates a step was rejected beyond the retry cap;
	// the requested tolerance is unreachable.
	ErrConvergence = errors.New("orbit: step size underflow, tolerance unreachable")

	// ErrDegenerateSeparation indicates the deviation orbit collapsed
	// onto the reference orbit, so no renormalization direction exists.
	ErrDegenerateSeparation = errors.New("orbit: deviation orbit collapsed onto reference")

	// ErrCancelled indicates the run was interrupted between steps. The
	// partial trajectory produced so far accompanies the error.
	ErrCancelled = errors.New("orbit: integration cancelled")
)

// StepError wraps a domain error with the step and time it occurred at.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
