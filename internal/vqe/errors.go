package vqe

import "fmt"

// SpecError reports an invalid ProblemSpec field. Validation fails fast,
// before any operator construction; invalid values are never clamped.
type SpecError struct {
	Field  string
	Reason string
}

func (e *SpecError) Error() string {
	return "invalid problem spec: " + e.Field + " " + e.Reason
}

func (e *SpecError) Is(target error) bool {
	_, ok := target.(*SpecError)
	return ok
}

// ResourceError is returned when the operator dimension would exceed the
// configured memory ceiling. It is raised before any allocation is attempted.
type ResourceError struct {
	Qubits int
	Cells  int64
	Limit  int64
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("operator for %d qubits requires %d cells, exceeds limit of %d", e.Qubits, e.Cells, e.Limit)
}

func (e *ResourceError) Is(target error) bool {
	_, ok := target.(*ResourceError)
	return ok
}

// UnknownBackendError is returned by a strict registry when no adapter is
// registered for the requested identifier.
type UnknownBackendError struct {
	ID string
}

func (e *UnknownBackendError) Error() string {
	return "unknown backend: " + e.ID
}

func (e *UnknownBackendError) Is(target error) bool {
	_, ok := target.(*UnknownBackendError)
	return ok
}

// EvaluationError wraps a failure surfaced by a backend adapter during a
// single cost-function call. Timeouts are distinguishable via
// errors.Is(err, context.DeadlineExceeded). The bridge does not retry.
type EvaluationError struct {
	Backend   string
	Iteration int
	Err       error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation %d on backend %q failed: %v", e.Iteration, e.Backend, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

func (e *EvaluationError) Is(target error) bool {
	_, ok := target.(*EvaluationError)
	return ok
}
