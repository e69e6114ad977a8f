package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/hqcflow/internal/opt"
	"github.com/cwbudde/hqcflow/internal/store"
	"github.com/cwbudde/hqcflow/internal/vqe"
)

// buildOptimizer maps the request's optimizer name to an implementation.
func buildOptimizer(req WorkflowRequest) (opt.Optimizer, error) {
	switch req.Optimizer {
	case "", "compass":
		return opt.NewCompass(), nil
	case "mayfly":
		return opt.NewMayfly(req.PopSize, req.Seed, 0, 1), nil
	default:
		return nil, fmt.Errorf("unknown optimizer: %s", req.Optimizer)
	}
}

// runWorkflow executes one workflow job in the background, persists the
// result, feeds the result collector and broadcasts progress.
func runWorkflow(ctx context.Context, m *Manager, resolver vqe.Resolver, st store.Store, collector vqe.Collector, jobID string) error {
	job, exists := m.GetJob(jobID)
	if !exists {
		return fmt.Errorf("job not found: %s", jobID)
	}

	optimizer, err := buildOptimizer(job.Request)
	if err != nil {
		markJobFailed(m, jobID, err)
		return err
	}

	if err := m.UpdateJob(jobID, func(j *WorkflowJob) {
		j.State = StateRunning
	}); err != nil {
		return err
	}
	workflowsStarted.Inc()

	slog.Info("Starting workflow job",
		"job_id", jobID,
		"backend", job.Spec.Backend,
		"qubits", job.Spec.Qubits,
		"parameters", job.Spec.Parameters,
	)

	opts := vqe.Options{
		MaxEvaluations: job.Request.MaxEvaluations,
		EvalTimeout:    time.Duration(job.Request.EvalTimeoutMs) * time.Millisecond,
		Seed:           job.Request.Seed,
		Optimizer:      optimizer,
		OnEvaluation: func(rec vqe.EvaluationRecord) {
			evaluationsTotal.Inc()

			var event ProgressEvent
			m.UpdateJob(jobID, func(j *WorkflowJob) {
				j.Evaluations = rec.Iteration + 1
				if rec.Iteration == 0 || rec.Energy < j.BestEnergy {
					j.BestEnergy = rec.Energy
				}
				event = ProgressEvent{
					JobID:       jobID,
					State:       j.State,
					Evaluations: j.Evaluations,
					BestEnergy:  j.BestEnergy,
					Timestamp:   time.Now(),
				}
			})
			m.broadcaster.Broadcast(event)
		},
	}

	orchestrator := vqe.NewOrchestrator(resolver, collector)
	result, err := orchestrator.Execute(ctx, job.Spec, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
			markJobCancelled(m, jobID)
			return err
		}
		markJobFailed(m, jobID, err)
		return err
	}

	if st != nil {
		if err := st.SaveResult(result); err != nil {
			// Persistence failure doesn't invalidate the completed run.
			slog.Warn("Failed to persist workflow result", "job_id", jobID, "error", err)
		}
	}

	endTime := time.Now()
	m.UpdateJob(jobID, func(j *WorkflowJob) {
		j.State = StateCompleted
		j.Evaluations = result.Evaluations
		j.BestEnergy = result.MinimumEnergy
		j.Converged = result.Converged
		j.ResultID = result.ID
		j.EndTime = &endTime
	})

	workflowsFinished.WithLabelValues(string(StateCompleted)).Inc()
	workflowDuration.Observe(result.ElapsedSeconds)

	slog.Info("Workflow job completed",
		"job_id", jobID,
		"result_id", result.ID,
		"minimum_energy", result.MinimumEnergy,
		"evaluations", result.Evaluations,
		"converged", result.Converged,
	)

	m.broadcaster.Broadcast(ProgressEvent{
		JobID:       jobID,
		State:       StateCompleted,
		Evaluations: result.Evaluations,
		BestEnergy:  result.MinimumEnergy,
		Timestamp:   time.Now(),
	})
	return nil
}

// markJobFailed marks a job as failed with an error message.
func markJobFailed(m *Manager, jobID string, err error) {
	endTime := time.Now()
	m.UpdateJob(jobID, func(j *WorkflowJob) {
		j.State = StateFailed
		j.Error = err.Error()
		j.EndTime = &endTime
	})
	workflowsFinished.WithLabelValues(string(StateFailed)).Inc()
	slog.Error("Workflow job failed", "job_id", jobID, "error", err)

	m.broadcaster.Broadcast(ProgressEvent{
		JobID:     jobID,
		State:     StateFailed,
		Timestamp: endTime,
	})
}

// markJobCancelled marks a job as cancelled.
func markJobCancelled(m *Manager, jobID string) {
	endTime := time.Now()
	m.UpdateJob(jobID, func(j *WorkflowJob) {
		j.State = StateCancelled
		j.EndTime = &endTime
	})
	workflowsFinished.WithLabelValues(string(StateCancelled)).Inc()
	slog.Info("Workflow job cancelled", "job_id", jobID)

	m.broadcaster.Broadcast(ProgressEvent{
		JobID:     jobID,
		State:     StateCancelled,
		Timestamp: endTime,
	})
}
