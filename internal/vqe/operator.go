package vqe

import (
	"math/rand"
)

// Operator is the dense energy operator for a problem, a symmetric square
// matrix of dimension 2^qubits stored row-major as a flat slice.
type Operator struct {
	Dim  int       `json:"dim"`
	Data []float64 `json:"data"`
}

// At returns the matrix element at row i, column j.
func (op *Operator) At(i, j int) float64 {
	return op.Data[i*op.Dim+j]
}

// DefaultMaxOperatorCells bounds operator allocation at 4096x4096 (12 qubits).
const DefaultMaxOperatorCells int64 = 1 << 24

// OperatorBuilder derives a fixed-size operator from a problem spec.
// The same seed yields the same operator.
type OperatorBuilder struct {
	MaxCells int64
	Seed     int64
}

// NewOperatorBuilder creates a builder with the default memory ceiling.
func NewOperatorBuilder(seed int64) *OperatorBuilder {
	return &OperatorBuilder{
		MaxCells: DefaultMaxOperatorCells,
		Seed:     seed,
	}
}

// Build constructs the operator for the given spec. The dimension check runs
// before any allocation so oversized specs fail with a ResourceError instead
// of exhausting memory. The sampled matrix is averaged with its transpose:
// a non-symmetric matrix is not a valid energy operator.
func (b *OperatorBuilder) Build(spec ProblemSpec) (*Operator, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	// 2^qubits squared must fit in an int64 before the ceiling comparison
	// is even meaningful.
	if spec.Qubits > 30 {
		return nil, &ResourceError{Qubits: spec.Qubits, Cells: -1, Limit: b.MaxCells}
	}

	dim := int64(1) << uint(spec.Qubits)
	cells := dim * dim
	if cells > b.MaxCells {
		return nil, &ResourceError{Qubits: spec.Qubits, Cells: cells, Limit: b.MaxCells}
	}

	rng := rand.New(rand.NewSource(b.Seed))
	n := int(dim)
	data := make([]float64, n*n)
	for i := range data {
		data[i] = rng.Float64()
	}

	// Symmetrize in place.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			avg := (data[i*n+j] + data[j*n+i]) / 2
			data[i*n+j] = avg
			data[j*n+i] = avg
		}
	}

	return &Operator{Dim: n, Data: data}, nil
}
