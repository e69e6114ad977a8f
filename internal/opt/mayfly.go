package opt

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/mayfly"
)

// MayflyAdapter wraps the external Mayfly library to conform to the
// Optimizer interface. The library is a population metaheuristic, so the
// evaluation budget is split across iterations of NPop candidates; a guard
// around the objective keeps the total within maxEvals regardless of how the
// library schedules calls.
type MayflyAdapter struct {
	popSize int
	seed    int64
	lower   float64
	upper   float64
}

// NewMayfly creates a Mayfly adapter searching within scalar bounds
// [lower, upper] applied to every dimension (a library limitation).
func NewMayfly(popSize int, seed int64, lower, upper float64) *MayflyAdapter {
	return &MayflyAdapter{
		popSize: popSize,
		seed:    seed,
		lower:   lower,
		upper:   upper,
	}
}

// Minimize runs the Mayfly optimization. The library reports no stopping
// criterion of its own, so Converged is always false: the run ends at its
// iteration cap.
func (m *MayflyAdapter) Minimize(eval Objective, initial []float64, maxEvals int) (*Result, error) {
	if maxEvals <= 0 {
		return nil, fmt.Errorf("maxEvals must be positive, got %d", maxEvals)
	}
	dim := len(initial)
	if dim == 0 {
		return nil, fmt.Errorf("initial parameters must not be empty")
	}

	pop := m.popSize
	if pop <= 0 {
		pop = 20
	}
	if pop > maxEvals {
		pop = maxEvals
	}
	iters := maxEvals / pop
	if iters < 1 {
		iters = 1
	}

	// Guard the objective: once the budget is spent, or after the first
	// error, short-circuit with +Inf instead of calling through.
	evals := 0
	var firstErr error
	guarded := func(params []float64) float64 {
		if firstErr != nil || evals >= maxEvals {
			return math.Inf(1)
		}
		v, err := eval(params)
		if err != nil {
			firstErr = err
			return math.Inf(1)
		}
		evals++
		return v
	}

	config := mayfly.NewDefaultConfig()
	config.ObjectiveFunc = guarded
	config.ProblemSize = dim
	config.MaxIterations = iters
	// The library pairs females with males by index, so both population
	// sizes must match or small populations index out of range.
	config.NPop = pop
	config.NPopF = pop
	config.LowerBound = m.lower
	config.UpperBound = m.upper
	config.Rand = rand.New(rand.NewSource(m.seed))

	result, err := mayfly.Optimize(config)
	if firstErr != nil {
		return nil, firstErr
	}
	if err != nil {
		return nil, fmt.Errorf("mayfly optimization failed: %w", err)
	}

	return &Result{
		BestParams:  result.GlobalBest.Position,
		BestValue:   result.GlobalBest.Cost,
		Converged:   false,
		Evaluations: evals,
	}, nil
}
