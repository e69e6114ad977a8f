package vqe

import (
	"errors"
	"testing"
	"time"
)

func validResult() *WorkflowResult {
	spec := ProblemSpec{Qubits: 1, Parameters: 2, Reps: 1, Backend: "local_simulator"}
	return &WorkflowResult{
		ID:            "test-id",
		Backend:       spec.Backend,
		Spec:          spec,
		OptimalParams: []float64{0.1, 0.2},
		MinimumEnergy: -1.0,
		History: []EvaluationRecord{
			{Iteration: 0, Params: []float64{0.3, 0.4}, Energy: 0.5, Timestamp: time.Now()},
			{Iteration: 1, Params: []float64{0.1, 0.2}, Energy: -1.0, Timestamp: time.Now()},
		},
		Evaluations: 2,
		StartedAt:   time.Now(),
	}
}

func TestResultValidate(t *testing.T) {
	if err := validResult().Validate(); err != nil {
		t.Fatalf("Validate() on valid result = %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*WorkflowResult)
	}{
		{"empty ID", func(r *WorkflowResult) { r.ID = "" }},
		{"wrong optimal params length", func(r *WorkflowResult) { r.OptimalParams = []float64{0.1} }},
		{"non-contiguous history", func(r *WorkflowResult) { r.History[1].Iteration = 5 }},
		{"record param length mismatch", func(r *WorkflowResult) { r.History[0].Params = []float64{0.3} }},
		{"evaluations below history length", func(r *WorkflowResult) { r.Evaluations = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validResult()
			tt.mutate(r)
			err := r.Validate()
			if !errors.Is(err, &ValidationError{}) {
				t.Fatalf("Validate() = %v, want ValidationError", err)
			}
		})
	}
}

func TestResultValidateInvalidSpec(t *testing.T) {
	r := validResult()
	r.Spec.Parameters = 0
	if !errors.Is(r.Validate(), &SpecError{}) {
		t.Fatal("Validate() did not surface the spec error")
	}
}

func TestRingCollectorEviction(t *testing.T) {
	c := NewRingCollector(2)
	for i := 0; i < 3; i++ {
		r := validResult()
		r.ID = string(rune('a' + i))
		if err := c.Record(r); err != nil {
			t.Fatal(err)
		}
	}

	results := c.Results()
	if len(results) != 2 {
		t.Fatalf("retained %d results, want 2", len(results))
	}
	if results[0].ID != "b" || results[1].ID != "c" {
		t.Errorf("retained IDs = %q, %q; want b, c", results[0].ID, results[1].ID)
	}
}
