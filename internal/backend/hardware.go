package backend

import (
	"context"
	"time"

	"github.com/cwbudde/hqcflow/internal/vqe"
)

// QueuedHardware models a hardware backend behind a submission queue: every
// evaluation waits out the queue latency before the shot executes. The wait
// honors the context, so a per-evaluation timeout cancels a queued call.
type QueuedHardware struct {
	latency time.Duration
	sim     *LocalSimulator
}

// NewQueuedHardware creates a hardware backend with the given queue latency.
func NewQueuedHardware(latency time.Duration) *QueuedHardware {
	return &QueuedHardware{
		latency: latency,
		sim:     NewLocalSimulator(),
	}
}

// Name implements vqe.Adapter.
func (h *QueuedHardware) Name() string {
	return "queued_hardware"
}

// Evaluate implements vqe.Adapter.
func (h *QueuedHardware) Evaluate(ctx context.Context, params []float64, op *vqe.Operator, ansatz vqe.AnsatzDescriptor) (float64, error) {
	if h.latency > 0 {
		timer := time.NewTimer(h.latency)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-timer.C:
		}
	}
	return h.sim.Evaluate(ctx, params, op, ansatz)
}
