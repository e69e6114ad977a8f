package vqe

import "context"

// Adapter is the backend capability: evaluate a parameter vector against an
// operator/ansatz pair and return a scalar energy. Remote and hardware
// variants may block on I/O and must honor the context deadline.
// Implementations must not record history; the cost-function bridge owns
// that, keeping a single writer per execution.
type Adapter interface {
	Name() string
	Evaluate(ctx context.Context, params []float64, op *Operator, ansatz AnsatzDescriptor) (float64, error)
}

// Resolver maps a backend identifier to an Adapter. A strict resolver
// returns UnknownBackendError for unregistered identifiers; a resolver with
// a fallback substitutes its documented default adapter instead.
type Resolver interface {
	Resolve(id string) (Adapter, error)
}
