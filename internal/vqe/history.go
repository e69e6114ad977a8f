package vqe

import (
	"math"
	"time"
)

// EvaluationRecord is one cost-function call: the proposed parameters and
// the scalar the backend returned. Immutable once appended.
type EvaluationRecord struct {
	Iteration int       `json:"iteration"`
	Params    []float64 `json:"params"`
	Energy    float64   `json:"energy"`
	Timestamp time.Time `json:"timestamp"`
}

// ExecutionHistory is the append-only, strictly ordered log of evaluations
// for one workflow execution. It has exactly one writer, the cost-function
// bridge of the running workflow, and is never shared across executions.
type ExecutionHistory struct {
	records []EvaluationRecord
}

// NewExecutionHistory creates an empty history.
func NewExecutionHistory() *ExecutionHistory {
	return &ExecutionHistory{}
}

// Append records an evaluation, assigning the next iteration index starting
// at 0. The parameter slice is copied so later mutation by the optimizer
// cannot alter the record.
func (h *ExecutionHistory) Append(params []float64, energy float64) EvaluationRecord {
	snapshot := make([]float64, len(params))
	copy(snapshot, params)

	rec := EvaluationRecord{
		Iteration: len(h.records),
		Params:    snapshot,
		Energy:    energy,
		Timestamp: time.Now(),
	}
	h.records = append(h.records, rec)
	return rec
}

// Len returns the number of recorded evaluations.
func (h *ExecutionHistory) Len() int {
	return len(h.records)
}

// Records returns a copy of the recorded evaluations.
func (h *ExecutionHistory) Records() []EvaluationRecord {
	out := make([]EvaluationRecord, len(h.records))
	copy(out, h.records)
	return out
}

// MinEnergy returns the lowest energy seen, or false for an empty history.
func (h *ExecutionHistory) MinEnergy() (float64, bool) {
	if len(h.records) == 0 {
		return 0, false
	}
	min := math.Inf(1)
	for _, rec := range h.records {
		if rec.Energy < min {
			min = rec.Energy
		}
	}
	return min, true
}
