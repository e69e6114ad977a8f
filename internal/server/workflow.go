package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cwbudde/hqcflow/internal/vqe"
	"github.com/google/uuid"
)

// JobState represents the current state of a workflow job.
type JobState string

const (
	StatePending   JobState = "pending"
	StateRunning   JobState = "running"
	StateCompleted JobState = "completed"
	StateFailed    JobState = "failed"
	StateCancelled JobState = "cancelled"
)

// WorkflowRequest is the API payload for creating a workflow. Spec fields
// are pointers so an absent key takes the documented default while an
// explicit invalid value (parameters: 0) is rejected, not clamped.
type WorkflowRequest struct {
	Qubits         *int    `json:"qubits"`
	Parameters     *int    `json:"parameters"`
	Reps           *int    `json:"reps"`
	Backend        *string `json:"backend"`
	MaxEvaluations int     `json:"maxEvaluations"`
	Optimizer      string  `json:"optimizer"`
	PopSize        int     `json:"popSize"`
	Seed           int64   `json:"seed"`
	EvalTimeoutMs  int     `json:"evalTimeoutMs"`
}

// Spec resolves the request into a ProblemSpec with defaults applied for
// absent fields. Validation is the caller's responsibility.
func (r WorkflowRequest) Spec() vqe.ProblemSpec {
	spec := vqe.DefaultSpec()
	if r.Qubits != nil {
		spec.Qubits = *r.Qubits
	}
	if r.Parameters != nil {
		spec.Parameters = *r.Parameters
	}
	if r.Reps != nil {
		spec.Reps = *r.Reps
	}
	if r.Backend != nil {
		spec.Backend = *r.Backend
	}
	return spec
}

// WorkflowJob is one workflow execution tracked by the server.
type WorkflowJob struct {
	ID          string          `json:"id"`
	State       JobState        `json:"state"`
	Spec        vqe.ProblemSpec `json:"spec"`
	Request     WorkflowRequest `json:"request"`
	Evaluations int             `json:"evaluations"`
	BestEnergy  float64         `json:"bestEnergy"`
	Converged   bool            `json:"converged"`
	ResultID    string          `json:"resultId,omitempty"`
	StartTime   time.Time       `json:"startTime"`
	EndTime     *time.Time      `json:"endTime,omitempty"`
	Error       string          `json:"error,omitempty"`

	cancel context.CancelFunc
}

// Manager tracks workflow jobs and their progress broadcaster.
type Manager struct {
	mu          sync.RWMutex
	jobs        map[string]*WorkflowJob
	broadcaster *EventBroadcaster
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{
		jobs:        make(map[string]*WorkflowJob),
		broadcaster: NewEventBroadcaster(),
	}
}

// CreateJob registers a new pending job for the resolved spec. The returned
// job is a snapshot; the tracked struct is only mutated through UpdateJob.
func (m *Manager) CreateJob(req WorkflowRequest, spec vqe.ProblemSpec, cancel context.CancelFunc) *WorkflowJob {
	m.mu.Lock()
	defer m.mu.Unlock()

	job := &WorkflowJob{
		ID:        uuid.New().String(),
		State:     StatePending,
		Spec:      spec,
		Request:   req,
		StartTime: time.Now(),
		cancel:    cancel,
	}
	m.jobs[job.ID] = job

	snapshot := *job
	return &snapshot
}

// GetJob retrieves a snapshot of a job by ID. Readers never observe the
// tracked struct directly, so worker updates cannot race handler reads.
func (m *Manager) GetJob(id string) (*WorkflowJob, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	job, exists := m.jobs[id]
	if !exists {
		return nil, false
	}
	snapshot := *job
	return &snapshot, true
}

// ListJobs returns snapshots of all tracked jobs.
func (m *Manager) ListJobs() []*WorkflowJob {
	m.mu.RLock()
	defer m.mu.RUnlock()

	jobs := make([]*WorkflowJob, 0, len(m.jobs))
	for _, job := range m.jobs {
		snapshot := *job
		jobs = append(jobs, &snapshot)
	}
	return jobs
}

// UpdateJob atomically updates a job using the provided function.
func (m *Manager) UpdateJob(id string, updateFn func(*WorkflowJob)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[id]
	if !exists {
		return fmt.Errorf("job not found: %s", id)
	}
	updateFn(job)
	return nil
}

// CancelJob cancels a running or pending job. Terminal jobs are left alone.
func (m *Manager) CancelJob(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, exists := m.jobs[id]
	if !exists {
		return fmt.Errorf("job not found: %s", id)
	}
	if job.State != StatePending && job.State != StateRunning {
		return fmt.Errorf("job %s is %s, cannot cancel", id, job.State)
	}
	if job.cancel != nil {
		job.cancel()
	}
	return nil
}
