package store

import (
	"time"

	"github.com/cwbudde/hqcflow/internal/vqe"
)

// Store defines persistence for completed workflow results.
// Implementations must be safe for concurrent use.
//
// Error handling conventions:
//   - Return nil error on success
//   - Return ErrNotFound if the result doesn't exist (Load/Delete)
//   - Wrap underlying errors with context using fmt.Errorf("context: %w", err)
type Store interface {
	// SaveResult atomically persists a result. An existing result with the
	// same ID is overwritten.
	SaveResult(result *vqe.WorkflowResult) error

	// LoadResult retrieves a result by ID, including its execution history.
	// Returns ErrNotFound if no result exists for this ID.
	LoadResult(id string) (*vqe.WorkflowResult, error)

	// ListResults returns metadata for all stored results. The slice may be
	// empty if nothing has been stored.
	ListResults() ([]ResultInfo, error)

	// DeleteResult removes a result and its history trace.
	// Returns ErrNotFound if no result exists for this ID.
	DeleteResult(id string) error
}

// ResultInfo is result metadata without the parameter and history payloads.
type ResultInfo struct {
	ID            string    `json:"id"`
	Backend       string    `json:"backend"`
	Qubits        int       `json:"qubits"`
	Parameters    int       `json:"parameters"`
	MinimumEnergy float64   `json:"minimumEnergy"`
	Converged     bool      `json:"converged"`
	Evaluations   int       `json:"evaluations"`
	StartedAt     time.Time `json:"startedAt"`
}

// ErrNotFound is returned when a requested result does not exist.
// Use errors.Is(err, ErrNotFound) to check for this error.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing result.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return "result not found: " + e.ID
	}
	return "result not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
