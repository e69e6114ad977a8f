package opt

import (
	"fmt"
	"log/slog"
)

// Compass implements derivative-free coordinate direct search: probe one
// step in each direction along every axis, move greedily on improvement,
// halve the step after a full sweep without progress. The search counts its
// own evaluations, so the budget is an exact bound.
type Compass struct {
	// InitialStep is the starting probe distance along each axis.
	InitialStep float64

	// Tolerance is the step size below which the search reports convergence.
	Tolerance float64
}

const (
	defaultInitialStep = 0.25
	defaultTolerance   = 1e-3
)

// NewCompass creates a compass search with default step and tolerance.
func NewCompass() *Compass {
	return &Compass{
		InitialStep: defaultInitialStep,
		Tolerance:   defaultTolerance,
	}
}

// Minimize runs the search. The initial point is evaluated first and counts
// against the budget; the returned Evaluations never exceeds maxEvals.
func (c *Compass) Minimize(eval Objective, initial []float64, maxEvals int) (*Result, error) {
	if maxEvals <= 0 {
		return nil, fmt.Errorf("maxEvals must be positive, got %d", maxEvals)
	}
	if len(initial) == 0 {
		return nil, fmt.Errorf("initial parameters must not be empty")
	}

	step := c.InitialStep
	if step <= 0 {
		step = defaultInitialStep
	}
	tol := c.Tolerance
	if tol <= 0 {
		tol = defaultTolerance
	}

	best := make([]float64, len(initial))
	copy(best, initial)

	value, err := eval(best)
	if err != nil {
		return nil, err
	}
	evals := 1

	converged := false
	budget := false

	for !budget {
		improved := false

		for i := range best {
			for _, dir := range []float64{1, -1} {
				if evals >= maxEvals {
					budget = true
					break
				}

				candidate := make([]float64, len(best))
				copy(candidate, best)
				candidate[i] += dir * step

				v, err := eval(candidate)
				if err != nil {
					return nil, err
				}
				evals++

				if v < value {
					value = v
					best = candidate
					improved = true
					break
				}
			}
			if budget {
				break
			}
		}

		if budget {
			break
		}

		if !improved {
			step /= 2
			if step < tol {
				converged = true
				break
			}
		}
	}

	slog.Debug("Compass search finished",
		"evaluations", evals,
		"best_value", value,
		"converged", converged,
	)

	return &Result{
		BestParams:  best,
		BestValue:   value,
		Converged:   converged,
		Evaluations: evals,
	}, nil
}
