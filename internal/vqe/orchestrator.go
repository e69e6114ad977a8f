package vqe

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/cwbudde/hqcflow/internal/opt"
	"github.com/google/uuid"
)

// State of one workflow execution. Built and Running are transient;
// Completed and Failed are terminal. Optimizer non-convergence is reported
// in the result, never escalated to Failed.
type State string

const (
	StateBuilt     State = "built"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// Options configure one workflow execution. They are execution-time
// parameters, deliberately separate from the ProblemSpec.
type Options struct {
	// MaxEvaluations is the hard cap on cost-function calls, including the
	// initial point. Defaults to DefaultMaxEvaluations.
	MaxEvaluations int

	// EvalTimeout bounds each individual backend evaluation. Zero disables it.
	EvalTimeout time.Duration

	// Seed drives operator construction and the initial parameter draw.
	Seed int64

	// Optimizer overrides the default compass direct search.
	Optimizer opt.Optimizer

	// OnEvaluation, if non-nil, observes every appended history record.
	OnEvaluation func(EvaluationRecord)
}

// Orchestrator composes operator/ansatz construction, backend resolution,
// the cost-function bridge and the classical optimizer into workflow
// executions. Completed results are handed to the injected collector.
type Orchestrator struct {
	resolver  Resolver
	collector Collector
}

// NewOrchestrator creates an orchestrator. collector may be nil, in which
// case results are only returned to the caller.
func NewOrchestrator(resolver Resolver, collector Collector) *Orchestrator {
	return &Orchestrator{
		resolver:  resolver,
		collector: collector,
	}
}

// Execute runs one workflow: build operator and ansatz, resolve the backend,
// wrap it in the cost-function bridge and drive the optimizer until its
// stopping criterion or the evaluation budget. Construction and resolution
// errors fail the execution; per-evaluation failures propagate immediately
// with no partial result.
func (o *Orchestrator) Execute(ctx context.Context, spec ProblemSpec, opts Options) (*WorkflowResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if opts.MaxEvaluations <= 0 {
		opts.MaxEvaluations = DefaultMaxEvaluations
	}

	builder := NewOperatorBuilder(opts.Seed)
	operator, err := builder.Build(spec)
	if err != nil {
		return nil, err
	}
	ansatz := BuildAnsatz(spec)

	adapter, err := o.resolver.Resolve(spec.Backend)
	if err != nil {
		return nil, err
	}

	state := StateBuilt
	slog.Info("Workflow built",
		"state", state,
		"backend", adapter.Name(),
		"qubits", spec.Qubits,
		"operator_dim", operator.Dim,
		"parameters", spec.Parameters,
	)

	// Each execution owns a fresh history; the bridge is its only writer.
	history := NewExecutionHistory()
	bridge := NewBridge(adapter, operator, ansatz, history, opts.EvalTimeout, opts.OnEvaluation)

	rng := rand.New(rand.NewSource(opts.Seed))
	initial := make([]float64, spec.Parameters)
	for i := range initial {
		initial[i] = rng.Float64()
	}

	optimizer := opts.Optimizer
	if optimizer == nil {
		optimizer = opt.NewCompass()
	}

	state = StateRunning
	slog.Info("Workflow running", "state", state, "max_evaluations", opts.MaxEvaluations)

	start := time.Now()
	outcome, err := optimizer.Minimize(bridge.Cost(ctx), initial, opts.MaxEvaluations)
	elapsed := time.Since(start)

	if err != nil {
		state = StateFailed
		slog.Error("Workflow failed", "state", state, "error", err)
		return nil, err
	}

	state = StateCompleted
	slog.Info("Workflow completed",
		"state", state,
		"minimum_energy", outcome.BestValue,
		"evaluations", outcome.Evaluations,
		"converged", outcome.Converged,
		"elapsed", elapsed,
	)

	// Ownership of the history transfers into the result.
	result := &WorkflowResult{
		ID:             uuid.New().String(),
		Backend:        spec.Backend,
		Spec:           spec,
		OptimalParams:  outcome.BestParams,
		MinimumEnergy:  outcome.BestValue,
		History:        history.Records(),
		Converged:      outcome.Converged,
		Evaluations:    outcome.Evaluations,
		StartedAt:      start,
		ElapsedSeconds: elapsed.Seconds(),
	}

	if o.collector != nil {
		if err := o.collector.Record(result); err != nil {
			slog.Warn("Failed to record workflow result", "id", result.ID, "error", err)
		}
	}

	return result, nil
}
