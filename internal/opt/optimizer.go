package opt

// Objective is the scalar cost function being minimized. Returning an error
// aborts the run immediately; optimizers must not retry a failed evaluation.
type Objective func(params []float64) (float64, error)

// Result holds the outcome of a minimization run. Converged is the
// algorithm's own stopping-criterion flag; hitting the evaluation budget
// without meeting the criterion is reported as Converged=false, not an error.
type Result struct {
	BestParams  []float64
	BestValue   float64
	Converged   bool
	Evaluations int
}

// Optimizer is a black-box iterative minimizer. maxEvals is a hard upper
// bound on objective invocations, including the initial point.
type Optimizer interface {
	Minimize(eval Objective, initial []float64, maxEvals int) (*Result, error)
}
