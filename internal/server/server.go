package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cwbudde/hqcflow/internal/backend"
	"github.com/cwbudde/hqcflow/internal/bench"
	"github.com/cwbudde/hqcflow/internal/governance"
	"github.com/cwbudde/hqcflow/internal/store"
	"github.com/cwbudde/hqcflow/internal/vqe"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the HTTP front end: it gates workflow creation through the
// governance access check, runs workflows in background workers and serves
// their status, history, progress stream and Prometheus metrics.
type Server struct {
	manager   *Manager
	registry  *backend.Registry
	gate      governance.Gate
	store     store.Store
	collector *vqe.RingCollector
	bench     *bench.Engine
	addr      string
	server    *http.Server
}

// NewServer creates a server. gate may be nil to disable access checks;
// st may be nil to disable persistence.
func NewServer(addr string, registry *backend.Registry, gate governance.Gate, st store.Store) *Server {
	return &Server{
		manager:   NewManager(),
		registry:  registry,
		gate:      gate,
		store:     st,
		collector: vqe.NewRingCollector(0),
		bench:     bench.NewEngine(),
		addr:      addr,
	}
}

// Handler builds the route table wrapped in middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/workflows", s.handleWorkflows)
	mux.HandleFunc("/api/v1/workflows/", s.handleWorkflowsWithID)
	mux.HandleFunc("/api/v1/backends", s.handleBackends)
	mux.HandleFunc("/api/v1/results/recent", s.handleRecentResults)
	mux.HandleFunc("/api/v1/bench", s.handleBench)
	mux.Handle("/metrics", promhttp.Handler())

	return s.loggingMiddleware(s.corsMiddleware(mux))
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	slog.Info("Starting HTTP server", "addr", s.addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down HTTP server")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// handleWorkflows handles /api/v1/workflows.
func (s *Server) handleWorkflows(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateWorkflow(w, r)
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.manager.ListJobs())
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleCreateWorkflow handles POST /api/v1/workflows. The request is gated
// through governance before anything runs; the denial reason stays in the
// audit trail.
func (s *Server) handleCreateWorkflow(w http.ResponseWriter, r *http.Request) {
	user := r.Header.Get("X-User")
	if user == "" {
		user = "anonymous"
	}
	role := r.Header.Get("X-Role")

	if s.gate != nil && !s.gate.CheckAccess(user, role, governance.ActionExecuteQuantum) {
		writeError(w, http.StatusForbidden, "access denied")
		return
	}

	var req WorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}

	spec := req.Spec()
	if err := spec.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.MaxEvaluations <= 0 {
		req.MaxEvaluations = vqe.DefaultMaxEvaluations
	}
	if _, err := buildOptimizer(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	job := s.manager.CreateJob(req, spec, cancel)

	go runWorkflow(ctx, s.manager, s.registry, s.store, s.collector, job.ID)

	writeJSON(w, http.StatusCreated, job)
}

// handleWorkflowsWithID handles /api/v1/workflows/{id} and its subpaths.
func (s *Server) handleWorkflowsWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/workflows/")
	parts := strings.Split(path, "/")
	if len(parts) == 0 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "workflow ID required")
		return
	}
	jobID := parts[0]

	if r.Method == http.MethodDelete && len(parts) == 1 {
		s.handleCancelWorkflow(w, jobID)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch {
	case len(parts) == 1 || parts[1] == "status":
		s.handleWorkflowStatus(w, jobID)
	case parts[1] == "history":
		s.handleWorkflowHistory(w, jobID)
	case parts[1] == "events":
		s.handleWorkflowEvents(w, r, jobID)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

// handleWorkflowStatus handles GET /api/v1/workflows/{id}.
func (s *Server) handleWorkflowStatus(w http.ResponseWriter, jobID string) {
	job, exists := s.manager.GetJob(jobID)
	if !exists {
		writeError(w, http.StatusNotFound, "workflow not found")
		return
	}

	var elapsed time.Duration
	if job.EndTime != nil {
		elapsed = job.EndTime.Sub(job.StartTime)
	} else {
		elapsed = time.Since(job.StartTime)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"id":          job.ID,
		"state":       job.State,
		"spec":        job.Spec,
		"evaluations": job.Evaluations,
		"bestEnergy":  job.BestEnergy,
		"converged":   job.Converged,
		"resultId":    job.ResultID,
		"elapsed":     elapsed.Seconds(),
		"startTime":   job.StartTime,
		"endTime":     job.EndTime,
		"error":       job.Error,
	})
}

// handleWorkflowHistory handles GET /api/v1/workflows/{id}/history, serving
// the persisted evaluation trace of a completed workflow.
func (s *Server) handleWorkflowHistory(w http.ResponseWriter, jobID string) {
	job, exists := s.manager.GetJob(jobID)
	if !exists {
		writeError(w, http.StatusNotFound, "workflow not found")
		return
	}
	if job.ResultID == "" || s.store == nil {
		writeError(w, http.StatusNotFound, "no history available yet")
		return
	}

	result, err := s.store.LoadResult(job.ResultID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no history available yet")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result.History)
}

// handleCancelWorkflow handles DELETE /api/v1/workflows/{id}.
func (s *Server) handleCancelWorkflow(w http.ResponseWriter, jobID string) {
	if err := s.manager.CancelJob(jobID); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"id": jobID, "state": "cancelling"})
}

// handleRecentResults handles GET /api/v1/results/recent, serving the
// in-memory ring of recently completed results. Histories are stripped; the
// full trace stays behind the per-workflow history endpoint.
func (s *Server) handleRecentResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	results := s.collector.Results()
	out := make([]vqe.WorkflowResult, 0, len(results))
	for _, result := range results {
		stripped := *result
		stripped.History = nil
		out = append(out, stripped)
	}
	writeJSON(w, http.StatusOK, out)
}

// benchRequest is the payload for POST /api/v1/bench.
type benchRequest struct {
	Hybrid    bench.Measurement `json:"hybrid"`
	Classical bench.Measurement `json:"classical"`
	Domain    string            `json:"domain"`
}

// handleBench handles /api/v1/bench: POST records a hybrid-vs-classical
// comparison, GET serves the aggregated dashboard.
func (s *Server) handleBench(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req benchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
			return
		}
		b, err := s.bench.Compare(req.Hybrid, req.Classical, req.Domain)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, b)
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.bench.Dashboard())
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleBackends handles GET /api/v1/backends.
func (s *Server) handleBackends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"backends": s.registry.List()})
}

// corsMiddleware adds CORS headers.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-User, X-Role")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("HTTP request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
