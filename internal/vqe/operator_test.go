package vqe

import (
	"errors"
	"testing"
)

func TestOperatorBuilderDimensions(t *testing.T) {
	tests := []struct {
		qubits  int
		wantDim int
	}{
		{0, 1},
		{1, 2},
		{2, 4},
		{3, 8},
	}

	builder := NewOperatorBuilder(1)
	for _, tt := range tests {
		spec := ProblemSpec{Qubits: tt.qubits, Parameters: 4, Reps: 2, Backend: "local_simulator"}
		op, err := builder.Build(spec)
		if err != nil {
			t.Fatalf("Build(qubits=%d) error = %v", tt.qubits, err)
		}
		if op.Dim != tt.wantDim {
			t.Errorf("Build(qubits=%d).Dim = %d, want %d", tt.qubits, op.Dim, tt.wantDim)
		}
		if len(op.Data) != tt.wantDim*tt.wantDim {
			t.Errorf("Build(qubits=%d) len(Data) = %d, want %d", tt.qubits, len(op.Data), tt.wantDim*tt.wantDim)
		}
	}
}

func TestOperatorBuilderSymmetry(t *testing.T) {
	builder := NewOperatorBuilder(7)
	spec := ProblemSpec{Qubits: 3, Parameters: 4, Reps: 2, Backend: "local_simulator"}
	op, err := builder.Build(spec)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < op.Dim; i++ {
		for j := 0; j < op.Dim; j++ {
			if op.At(i, j) != op.At(j, i) {
				t.Fatalf("operator not symmetric at (%d,%d): %v != %v", i, j, op.At(i, j), op.At(j, i))
			}
		}
	}
}

func TestOperatorBuilderDeterminism(t *testing.T) {
	spec := ProblemSpec{Qubits: 2, Parameters: 4, Reps: 2, Backend: "local_simulator"}

	a, err := NewOperatorBuilder(42).Build(spec)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewOperatorBuilder(42).Build(spec)
	if err != nil {
		t.Fatal(err)
	}

	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			t.Fatalf("same seed produced different operators at index %d", i)
		}
	}

	c, err := NewOperatorBuilder(43).Build(spec)
	if err != nil {
		t.Fatal(err)
	}
	same := true
	for i := range a.Data {
		if a.Data[i] != c.Data[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical operators")
	}
}

func TestOperatorBuilderResourceCeiling(t *testing.T) {
	builder := NewOperatorBuilder(1)
	builder.MaxCells = 15 // 4x4 needs 16 cells

	spec := ProblemSpec{Qubits: 2, Parameters: 4, Reps: 2, Backend: "local_simulator"}
	_, err := builder.Build(spec)
	if err == nil {
		t.Fatal("Build() = nil, want ResourceError")
	}

	var resErr *ResourceError
	if !errors.As(err, &resErr) {
		t.Fatalf("error type = %T, want *ResourceError", err)
	}
	if resErr.Cells != 16 {
		t.Errorf("Cells = %d, want 16", resErr.Cells)
	}
	if resErr.Limit != 15 {
		t.Errorf("Limit = %d, want 15", resErr.Limit)
	}
}

func TestOperatorBuilderHugeQubitCount(t *testing.T) {
	builder := NewOperatorBuilder(1)
	spec := ProblemSpec{Qubits: 40, Parameters: 4, Reps: 2, Backend: "local_simulator"}
	_, err := builder.Build(spec)
	if !errors.Is(err, &ResourceError{}) {
		t.Fatalf("Build(qubits=40) error = %v, want ResourceError", err)
	}
}

func TestOperatorBuilderInvalidSpec(t *testing.T) {
	builder := NewOperatorBuilder(1)
	spec := ProblemSpec{Qubits: -1, Parameters: 4, Reps: 2, Backend: "local_simulator"}
	_, err := builder.Build(spec)
	if !errors.Is(err, &SpecError{}) {
		t.Fatalf("Build() error = %v, want SpecError", err)
	}
}

func TestBuildAnsatzDefaults(t *testing.T) {
	ansatz := BuildAnsatz(ProblemSpec{Qubits: 2, Parameters: 4, Reps: 3, Backend: "local_simulator"})
	if ansatz.Kind != AnsatzTwoLocal {
		t.Errorf("Kind = %q, want %q", ansatz.Kind, AnsatzTwoLocal)
	}
	if ansatz.Reps != 3 {
		t.Errorf("Reps = %d, want 3", ansatz.Reps)
	}
	if ansatz.Entanglement != EntanglementFull {
		t.Errorf("Entanglement = %q, want %q", ansatz.Entanglement, EntanglementFull)
	}

	defaulted := BuildAnsatz(ProblemSpec{Qubits: 2, Parameters: 4, Reps: 0, Backend: "local_simulator"})
	if defaulted.Reps != DefaultReps {
		t.Errorf("Reps = %d, want default %d", defaulted.Reps, DefaultReps)
	}
}
