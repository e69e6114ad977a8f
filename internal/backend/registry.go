package backend

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/cwbudde/hqcflow/internal/vqe"
)

// Registry maps backend identifiers to adapters. Registering an identifier
// twice overwrites the previous adapter (last write wins, logged rather than
// silently ignored). Resolution is strict unless a fallback adapter is
// installed. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	adapters map[string]vqe.Adapter
	fallback vqe.Adapter
}

// Option configures a Registry.
type Option func(*Registry)

// WithFallback installs the adapter substituted for unregistered
// identifiers. Without it, Resolve returns UnknownBackendError instead.
func WithFallback(adapter vqe.Adapter) Option {
	return func(r *Registry) {
		r.fallback = adapter
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		adapters: make(map[string]vqe.Adapter),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register stores an adapter under id, replacing any prior registration.
func (r *Registry) Register(id string, adapter vqe.Adapter) {
	r.mu.Lock()
	_, replaced := r.adapters[id]
	r.adapters[id] = adapter
	r.mu.Unlock()

	slog.Debug("Registered backend", "id", id, "replaced", replaced)
}

// Resolve returns the adapter registered under id. Unregistered identifiers
// resolve to the fallback adapter when one is installed; otherwise the call
// fails with UnknownBackendError.
func (r *Registry) Resolve(id string) (vqe.Adapter, error) {
	r.mu.RLock()
	adapter, ok := r.adapters[id]
	fallback := r.fallback
	r.mu.RUnlock()

	if ok {
		return adapter, nil
	}
	if fallback != nil {
		slog.Warn("Unknown backend, falling back to default", "id", id, "default", fallback.Name())
		return fallback, nil
	}
	return nil, &vqe.UnknownBackendError{ID: id}
}

// List returns the registered identifiers, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.adapters))
	for id := range r.adapters {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DefaultHardwareLatency is the simulated queue wait of the built-in
// hardware backend.
const DefaultHardwareLatency = 5 * time.Millisecond

// NewDefaultRegistry builds a registry with the built-in adapters. When
// strict is false the local simulator doubles as the fallback for unknown
// identifiers, preserving the historical resolution behavior; strict mode
// makes unknown identifiers a typed failure.
func NewDefaultRegistry(strict bool) *Registry {
	sim := NewLocalSimulator()

	var r *Registry
	if strict {
		r = NewRegistry()
	} else {
		r = NewRegistry(WithFallback(sim))
	}

	r.Register(sim.Name(), sim)
	hw := NewQueuedHardware(DefaultHardwareLatency)
	r.Register(hw.Name(), hw)
	return r
}
