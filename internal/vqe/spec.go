package vqe

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values for ProblemSpec fields and execution options.
const (
	DefaultQubits         = 2
	DefaultParameters     = 4
	DefaultReps           = 2
	DefaultBackend        = "local_simulator"
	DefaultMaxEvaluations = 50
)

// ProblemSpec describes one workflow execution: the size of the energy
// operator, the number of free parameters, the ansatz repetition count and
// the backend that evaluates candidates. Immutable once constructed.
type ProblemSpec struct {
	Qubits     int    `json:"qubits" yaml:"qubits"`
	Parameters int    `json:"parameters" yaml:"parameters"`
	Reps       int    `json:"reps" yaml:"reps"`
	Backend    string `json:"backend" yaml:"backend"`
}

// DefaultSpec returns a spec with all documented defaults applied.
func DefaultSpec() ProblemSpec {
	return ProblemSpec{
		Qubits:     DefaultQubits,
		Parameters: DefaultParameters,
		Reps:       DefaultReps,
		Backend:    DefaultBackend,
	}
}

// Validate checks the spec and returns a SpecError on the first invalid
// field. Zero qubits is valid (a 1x1 operator); negative counts are not.
func (s ProblemSpec) Validate() error {
	if s.Qubits < 0 {
		return &SpecError{Field: "qubits", Reason: "must be non-negative"}
	}
	if s.Parameters <= 0 {
		return &SpecError{Field: "parameters", Reason: "must be positive"}
	}
	if s.Reps <= 0 {
		return &SpecError{Field: "reps", Reason: "must be positive"}
	}
	if s.Backend == "" {
		return &SpecError{Field: "backend", Reason: "must not be empty"}
	}
	return nil
}

// specFile mirrors ProblemSpec with pointer fields so that an absent YAML key
// can be told apart from an explicit zero (qubits: 0 is a valid spec).
type specFile struct {
	Qubits     *int    `yaml:"qubits"`
	Parameters *int    `yaml:"parameters"`
	Reps       *int    `yaml:"reps"`
	Backend    *string `yaml:"backend"`
}

// LoadSpec reads a ProblemSpec from a YAML file, applying defaults for
// absent keys, and validates it.
func LoadSpec(path string) (ProblemSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProblemSpec{}, fmt.Errorf("failed to read spec file: %w", err)
	}

	var raw specFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return ProblemSpec{}, fmt.Errorf("failed to parse spec file: %w", err)
	}

	spec := DefaultSpec()
	if raw.Qubits != nil {
		spec.Qubits = *raw.Qubits
	}
	if raw.Parameters != nil {
		spec.Parameters = *raw.Parameters
	}
	if raw.Reps != nil {
		spec.Reps = *raw.Reps
	}
	if raw.Backend != nil {
		spec.Backend = *raw.Backend
	}

	if err := spec.Validate(); err != nil {
		return ProblemSpec{}, err
	}
	return spec, nil
}
