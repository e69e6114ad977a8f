package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	workflowsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hqcflow_workflows_started_total",
			Help: "Total number of workflow executions started",
		},
	)

	workflowsFinished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hqcflow_workflows_finished_total",
			Help: "Total number of workflow executions finished, by terminal state",
		},
		[]string{"state"},
	)

	evaluationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hqcflow_evaluations_total",
			Help: "Total number of backend energy evaluations",
		},
	)

	workflowDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hqcflow_workflow_duration_seconds",
			Help:    "Wall-clock duration of completed workflow executions",
			Buckets: prometheus.DefBuckets,
		},
	)
)
