package vqe

import (
	"context"
	"errors"
	"testing"
)

// funcAdapter evaluates a pure function of the parameters, ignoring the
// operator. Deterministic and cheap, which is all the orchestrator tests need.
type funcAdapter struct {
	name  string
	fn    func(params []float64) float64
	calls int
}

func (a *funcAdapter) Name() string { return a.name }

func (a *funcAdapter) Evaluate(ctx context.Context, params []float64, op *Operator, ansatz AnsatzDescriptor) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	a.calls++
	return a.fn(params), nil
}

// stubResolver resolves from a fixed map, failing strictly on anything else.
type stubResolver struct {
	adapters map[string]Adapter
}

func (r *stubResolver) Resolve(id string) (Adapter, error) {
	if adapter, ok := r.adapters[id]; ok {
		return adapter, nil
	}
	return nil, &UnknownBackendError{ID: id}
}

func sphere(params []float64) float64 {
	var sum float64
	for _, p := range params {
		sum += p * p
	}
	return sum
}

func newTestResolver(adapter Adapter) *stubResolver {
	return &stubResolver{adapters: map[string]Adapter{adapter.Name(): adapter}}
}

func TestOrchestratorExecute(t *testing.T) {
	adapter := &funcAdapter{name: "stub", fn: sphere}
	orch := NewOrchestrator(newTestResolver(adapter), nil)

	spec := ProblemSpec{Qubits: 1, Parameters: 3, Reps: 1, Backend: "stub"}
	result, err := orch.Execute(context.Background(), spec, Options{MaxEvaluations: 40, Seed: 7})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.ID == "" {
		t.Error("result ID is empty")
	}
	if result.Backend != "stub" {
		t.Errorf("Backend = %q, want stub", result.Backend)
	}
	if len(result.OptimalParams) != spec.Parameters {
		t.Errorf("OptimalParams length = %d, want %d", len(result.OptimalParams), spec.Parameters)
	}
	if result.Evaluations > 40 {
		t.Errorf("Evaluations = %d, exceeds cap of 40", result.Evaluations)
	}
	if len(result.History) > 40 {
		t.Errorf("history length = %d, exceeds cap of 40", len(result.History))
	}
	if adapter.calls != len(result.History) {
		t.Errorf("adapter calls = %d, history length = %d", adapter.calls, len(result.History))
	}
	if err := result.Validate(); err != nil {
		t.Errorf("result fails its own validation: %v", err)
	}

	// The reported minimum must be re-derivable from the history.
	min := result.History[0].Energy
	for _, rec := range result.History {
		if rec.Energy < min {
			min = rec.Energy
		}
	}
	if result.MinimumEnergy != min {
		t.Errorf("MinimumEnergy = %v, history minimum = %v", result.MinimumEnergy, min)
	}
}

func TestOrchestratorZeroQubits(t *testing.T) {
	// Zero qubits is a degenerate but valid problem: a 1x1 operator with a
	// full optimization run over it.
	adapter := &funcAdapter{name: "stub", fn: sphere}
	orch := NewOrchestrator(newTestResolver(adapter), nil)

	spec := ProblemSpec{Qubits: 0, Parameters: 4, Reps: 2, Backend: "stub"}
	result, err := orch.Execute(context.Background(), spec, Options{MaxEvaluations: 20, Seed: 9})
	if err != nil {
		t.Fatalf("Execute(qubits=0) error = %v", err)
	}

	if result.Spec.Qubits != 0 {
		t.Errorf("Spec.Qubits = %d, want 0", result.Spec.Qubits)
	}
	if len(result.OptimalParams) != 4 {
		t.Errorf("OptimalParams length = %d, want 4", len(result.OptimalParams))
	}
	if len(result.History) == 0 {
		t.Error("history is empty for a completed run")
	}
	if err := result.Validate(); err != nil {
		t.Errorf("result fails validation: %v", err)
	}
}

func TestOrchestratorIndependentHistories(t *testing.T) {
	adapter := &funcAdapter{name: "stub", fn: sphere}
	orch := NewOrchestrator(newTestResolver(adapter), nil)
	spec := ProblemSpec{Qubits: 1, Parameters: 2, Reps: 1, Backend: "stub"}

	first, err := orch.Execute(context.Background(), spec, Options{MaxEvaluations: 10, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	firstLen := len(first.History)

	second, err := orch.Execute(context.Background(), spec, Options{MaxEvaluations: 10, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}

	if len(first.History) != firstLen {
		t.Error("first result's history changed after second execution")
	}
	if second.History[0].Iteration != 0 {
		t.Errorf("second execution starts at iteration %d, want 0", second.History[0].Iteration)
	}
	if first.ID == second.ID {
		t.Error("sequential executions share a result ID")
	}
}

func TestOrchestratorCollector(t *testing.T) {
	adapter := &funcAdapter{name: "stub", fn: sphere}
	collector := NewRingCollector(4)
	orch := NewOrchestrator(newTestResolver(adapter), collector)
	spec := ProblemSpec{Qubits: 1, Parameters: 2, Reps: 1, Backend: "stub"}

	result, err := orch.Execute(context.Background(), spec, Options{MaxEvaluations: 5, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}

	if collector.Len() != 1 {
		t.Fatalf("collector holds %d results, want 1", collector.Len())
	}
	if collector.Results()[0].ID != result.ID {
		t.Error("collector holds a different result than the one returned")
	}
}

func TestOrchestratorInvalidSpecFailsBeforeEvaluation(t *testing.T) {
	adapter := &funcAdapter{name: "stub", fn: sphere}
	orch := NewOrchestrator(newTestResolver(adapter), nil)

	spec := ProblemSpec{Qubits: 1, Parameters: 0, Reps: 1, Backend: "stub"}
	_, err := orch.Execute(context.Background(), spec, Options{MaxEvaluations: 10})
	if !errors.Is(err, &SpecError{}) {
		t.Fatalf("Execute() error = %v, want SpecError", err)
	}
	if adapter.calls != 0 {
		t.Errorf("adapter called %d times for an invalid spec, want 0", adapter.calls)
	}
}

func TestOrchestratorUnknownBackend(t *testing.T) {
	adapter := &funcAdapter{name: "stub", fn: sphere}
	orch := NewOrchestrator(newTestResolver(adapter), nil)

	spec := ProblemSpec{Qubits: 1, Parameters: 2, Reps: 1, Backend: "no_such_backend"}
	_, err := orch.Execute(context.Background(), spec, Options{MaxEvaluations: 10})
	if !errors.Is(err, &UnknownBackendError{}) {
		t.Fatalf("Execute() error = %v, want UnknownBackendError", err)
	}
}

func TestOrchestratorEvaluationFailure(t *testing.T) {
	adapter := &stubAdapter{name: "stub", err: errors.New("backend down")}
	orch := NewOrchestrator(newTestResolver(adapter), nil)

	spec := ProblemSpec{Qubits: 1, Parameters: 2, Reps: 1, Backend: "stub"}
	result, err := orch.Execute(context.Background(), spec, Options{MaxEvaluations: 10})
	if err == nil {
		t.Fatal("Execute() = nil error, want evaluation failure")
	}
	if result != nil {
		t.Error("Execute() returned a partial result alongside the error")
	}
	if !errors.Is(err, &EvaluationError{}) {
		t.Errorf("error = %v, want EvaluationError", err)
	}
}

func TestOrchestratorNonConvergenceIsNotAnError(t *testing.T) {
	adapter := &funcAdapter{name: "stub", fn: sphere}
	orch := NewOrchestrator(newTestResolver(adapter), nil)

	// A single evaluation can never satisfy the compass stopping criterion.
	spec := ProblemSpec{Qubits: 1, Parameters: 2, Reps: 1, Backend: "stub"}
	result, err := orch.Execute(context.Background(), spec, Options{MaxEvaluations: 1, Seed: 5})
	if err != nil {
		t.Fatalf("Execute() error = %v, want nil for a budget-bound run", err)
	}
	if result.Converged {
		t.Error("Converged = true for a single-evaluation run")
	}
	if result.Evaluations != 1 {
		t.Errorf("Evaluations = %d, want 1", result.Evaluations)
	}
}

func TestOrchestratorOnEvaluation(t *testing.T) {
	adapter := &funcAdapter{name: "stub", fn: sphere}
	orch := NewOrchestrator(newTestResolver(adapter), nil)

	var seen int
	spec := ProblemSpec{Qubits: 1, Parameters: 2, Reps: 1, Backend: "stub"}
	result, err := orch.Execute(context.Background(), spec, Options{
		MaxEvaluations: 8,
		Seed:           2,
		OnEvaluation: func(rec EvaluationRecord) {
			if rec.Iteration != seen {
				t.Errorf("observer saw iteration %d, want %d", rec.Iteration, seen)
			}
			seen++
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if seen != len(result.History) {
		t.Errorf("observer saw %d records, history has %d", seen, len(result.History))
	}
}
