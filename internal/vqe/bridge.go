package vqe

import (
	"context"
	"time"

	"github.com/cwbudde/hqcflow/internal/opt"
)

// Bridge adapts the backend's Evaluate capability into the single-argument
// scalar objective the classical optimizer expects. On each call it assigns
// the next iteration index, invokes the adapter with the fixed operator and
// ansatz, appends the record and hands the scalar back to the optimizer.
// The bridge is the sole writer of its ExecutionHistory; the handle is
// explicit rather than captured implicitly in a closure.
type Bridge struct {
	adapter  Adapter
	operator *Operator
	ansatz   AnsatzDescriptor
	history  *ExecutionHistory
	timeout  time.Duration
	observer func(EvaluationRecord)
}

// NewBridge creates a bridge. timeout bounds each individual Evaluate call;
// zero disables the per-call bound. observer, if non-nil, is invoked after
// every appended record (used for live progress reporting).
func NewBridge(adapter Adapter, op *Operator, ansatz AnsatzDescriptor, history *ExecutionHistory, timeout time.Duration, observer func(EvaluationRecord)) *Bridge {
	return &Bridge{
		adapter:  adapter,
		operator: op,
		ansatz:   ansatz,
		history:  history,
		timeout:  timeout,
		observer: observer,
	}
}

// Cost returns the objective function bound to ctx. The context is checked
// between cost-function calls, so a wall-clock deadline set by the caller
// cancels the run at the next proposal even though a single in-flight
// Evaluate cannot be interrupted without cooperating I/O.
func (b *Bridge) Cost(ctx context.Context) opt.Objective {
	return func(params []float64) (float64, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		callCtx := ctx
		if b.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, b.timeout)
			defer cancel()
		}

		energy, err := b.adapter.Evaluate(callCtx, params, b.operator, b.ansatz)
		if err != nil {
			// No record is appended for a failed evaluation; the error
			// propagates immediately and the history stays gap-free.
			return 0, &EvaluationError{
				Backend:   b.adapter.Name(),
				Iteration: b.history.Len(),
				Err:       err,
			}
		}

		rec := b.history.Append(params, energy)
		if b.observer != nil {
			b.observer(rec)
		}
		return energy, nil
	}
}
