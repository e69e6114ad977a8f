package vqe

import (
	"fmt"
	"time"
)

// WorkflowResult is the immutable outcome of one workflow execution. The
// history is transferred from the execution that produced it, never shared.
type WorkflowResult struct {
	ID             string             `json:"id"`
	Backend        string             `json:"backend"`
	Spec           ProblemSpec        `json:"spec"`
	OptimalParams  []float64          `json:"optimalParams"`
	MinimumEnergy  float64            `json:"minimumEnergy"`
	History        []EvaluationRecord `json:"history,omitempty"`
	Converged      bool               `json:"converged"`
	Evaluations    int                `json:"evaluations"`
	StartedAt      time.Time          `json:"startedAt"`
	ElapsedSeconds float64            `json:"elapsedSeconds"`
}

// Validate checks the structural invariants of a result before it is
// persisted: parameter lengths match the spec and the history has
// contiguous iteration indexes starting at 0.
func (r *WorkflowResult) Validate() error {
	if r.ID == "" {
		return &ValidationError{Field: "ID", Reason: "cannot be empty"}
	}
	if err := r.Spec.Validate(); err != nil {
		return err
	}
	if len(r.OptimalParams) != r.Spec.Parameters {
		return &ValidationError{
			Field:  "OptimalParams",
			Reason: fmt.Sprintf("length %d does not match spec parameters %d", len(r.OptimalParams), r.Spec.Parameters),
		}
	}
	for i, rec := range r.History {
		if rec.Iteration != i {
			return &ValidationError{
				Field:  "History",
				Reason: fmt.Sprintf("iteration index %d at position %d", rec.Iteration, i),
			}
		}
		if len(rec.Params) != r.Spec.Parameters {
			return &ValidationError{
				Field:  "History",
				Reason: fmt.Sprintf("record %d has %d params, spec requires %d", i, len(rec.Params), r.Spec.Parameters),
			}
		}
	}
	if r.Evaluations < len(r.History) {
		return &ValidationError{
			Field:  "Evaluations",
			Reason: fmt.Sprintf("count %d below history length %d", r.Evaluations, len(r.History)),
		}
	}
	return nil
}

// ValidationError represents an invalid workflow result.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}

func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}
