package backend

import (
	"context"
	"fmt"
	"math"

	"github.com/cwbudde/hqcflow/internal/vqe"
)

// LocalSimulator evaluates the expectation value of the operator for the
// trial state the parameters induce. The trial state is a deterministic
// embedding of the parameters into a normalized vector of the operator's
// dimension, so the same inputs always produce the same energy.
type LocalSimulator struct{}

// NewLocalSimulator creates the in-process simulator backend.
func NewLocalSimulator() *LocalSimulator {
	return &LocalSimulator{}
}

// Name implements vqe.Adapter.
func (s *LocalSimulator) Name() string {
	return "local_simulator"
}

// Evaluate computes state^T * op * state for the normalized trial state.
func (s *LocalSimulator) Evaluate(ctx context.Context, params []float64, op *vqe.Operator, ansatz vqe.AnsatzDescriptor) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if op == nil || op.Dim <= 0 {
		return 0, fmt.Errorf("operator is required")
	}
	if len(params) == 0 {
		return 0, fmt.Errorf("parameters are required")
	}

	state := trialState(params, op.Dim, ansatz.Reps)

	var energy float64
	for i := 0; i < op.Dim; i++ {
		var row float64
		for j := 0; j < op.Dim; j++ {
			row += op.At(i, j) * state[j]
		}
		energy += state[i] * row
	}
	return energy, nil
}

// trialState maps the parameters onto a normalized amplitude vector. Each
// component mixes every parameter with a component- and rep-dependent phase.
func trialState(params []float64, dim, reps int) []float64 {
	if reps <= 0 {
		reps = 1
	}

	state := make([]float64, dim)
	var norm float64
	for i := 0; i < dim; i++ {
		var acc float64
		for k, p := range params {
			acc += math.Cos(p*float64(reps) + float64((i+1)*(k+1)))
		}
		state[i] = acc
		norm += acc * acc
	}

	if norm == 0 {
		state[0] = 1
		return state
	}

	scale := 1 / math.Sqrt(norm)
	for i := range state {
		state[i] *= scale
	}
	return state
}
