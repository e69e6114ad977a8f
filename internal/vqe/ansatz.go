package vqe

// Ansatz kinds and entanglement patterns.
const (
	AnsatzTwoLocal   = "two_local"
	EntanglementFull = "full"
)

// AnsatzDescriptor is the structural template constraining how parameters
// map onto an evaluable configuration. Pure value, derived deterministically
// from the problem spec.
type AnsatzDescriptor struct {
	Kind         string `json:"kind" yaml:"kind"`
	Reps         int    `json:"reps" yaml:"reps"`
	Entanglement string `json:"entanglement" yaml:"entanglement"`
}

// BuildAnsatz derives the ansatz descriptor for a spec, applying the
// documented defaults when the repetition count is unset.
func BuildAnsatz(spec ProblemSpec) AnsatzDescriptor {
	reps := spec.Reps
	if reps <= 0 {
		reps = DefaultReps
	}
	return AnsatzDescriptor{
		Kind:         AnsatzTwoLocal,
		Reps:         reps,
		Entanglement: EntanglementFull,
	}
}
