// Package governance provides the access-control, metadata and audit
// collaborator consumed before a workflow starts. The orchestration loop
// itself never consults it.
package governance

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Actions recognized by the default role table.
const (
	ActionRead              = "read"
	ActionWrite             = "write"
	ActionApprove           = "approve"
	ActionDelete            = "delete"
	ActionExecuteQuantum    = "execute_quantum"
	ActionExecuteClassical  = "execute_classical"
	ActionWriteResults      = "write_results"
	ActionValidateQuality   = "validate_quality"
	ActionAudit             = "audit"
	ActionPolicyEnforcement = "policy_enforcement"
)

// Gate is the access check consumed before an execution request runs.
type Gate interface {
	CheckAccess(user, role, action string) bool
}

// AuditEntry is one governance event in the append-only audit trail.
type AuditEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Event     string    `json:"event"`
	User      string    `json:"user"`
	Details   string    `json:"details"`
}

// DatasetMetadata is a metadata record for a governed dataset.
type DatasetMetadata struct {
	DatasetID      string             `json:"datasetId"`
	CreatedAt      time.Time          `json:"createdAt"`
	Owner          string             `json:"owner"`
	Purpose        string             `json:"purpose"`
	Classification string             `json:"classification"`
	Provenance     []string           `json:"provenance"`
	QualityMetrics map[string]float64 `json:"qualityMetrics,omitempty"`
	QualityScore   float64            `json:"qualityScore"`
}

// Manager holds the role table, dataset metadata store and audit trail.
// Safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	roles    map[string][]string
	metadata map[string]*DatasetMetadata
	audit    []AuditEntry
}

// NewManager creates a manager with the default role table.
func NewManager() *Manager {
	return &Manager{
		roles: map[string][]string{
			"data_owner":           {ActionRead, ActionWrite, ActionApprove, ActionDelete},
			"quantum_specialist":   {ActionRead, ActionExecuteQuantum, ActionWriteResults},
			"classical_specialist": {ActionRead, ActionExecuteClassical, ActionWriteResults},
			"data_steward":         {ActionRead, ActionValidateQuality, ActionAudit},
			"compliance_officer":   {ActionRead, ActionAudit, ActionPolicyEnforcement},
		},
		metadata: make(map[string]*DatasetMetadata),
	}
}

// CheckAccess verifies that a user with the given role may perform the
// action. Every decision is audited; the denial reason stays in the audit
// trail, opaque to callers.
func (m *Manager) CheckAccess(user, role, action string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	actions, ok := m.roles[role]
	if !ok {
		m.logEvent("DENIED", user, "invalid role: "+role)
		return false
	}

	for _, a := range actions {
		if a == action {
			m.logEvent("GRANTED", user, fmt.Sprintf("action %s approved for role %s", action, role))
			return true
		}
	}

	m.logEvent("DENIED", user, fmt.Sprintf("role %s cannot perform %s", role, action))
	return false
}

// CreateDatasetMetadata records a new governed dataset.
func (m *Manager) CreateDatasetMetadata(datasetID, owner, purpose, classification string) *DatasetMetadata {
	m.mu.Lock()
	defer m.mu.Unlock()

	if classification == "" {
		classification = "internal"
	}

	md := &DatasetMetadata{
		DatasetID:      datasetID,
		CreatedAt:      time.Now(),
		Owner:          owner,
		Purpose:        purpose,
		Classification: classification,
		Provenance:     []string{},
	}
	m.metadata[datasetID] = md
	m.logEvent("CREATE", owner, "created dataset "+datasetID)
	return md
}

// RecordQuality stores the quality dimensions for a dataset and refreshes
// its aggregate score (mean of the provided metrics).
func (m *Manager) RecordQuality(datasetID string, metrics map[string]float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	md, ok := m.metadata[datasetID]
	if !ok {
		return fmt.Errorf("dataset not found: %s", datasetID)
	}
	if len(metrics) == 0 {
		return fmt.Errorf("quality metrics must not be empty")
	}

	copied := make(map[string]float64, len(metrics))
	var sum float64
	for k, v := range metrics {
		copied[k] = v
		sum += v
	}
	md.QualityMetrics = copied
	md.QualityScore = sum / float64(len(metrics))

	m.logEvent("QUALITY", md.Owner, fmt.Sprintf("dataset %s scored %.3f", datasetID, md.QualityScore))
	return nil
}

// Dataset returns the metadata for a dataset, if present.
func (m *Manager) Dataset(datasetID string) (*DatasetMetadata, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	md, ok := m.metadata[datasetID]
	return md, ok
}

// AuditTrail returns a copy of the audit log, oldest first.
func (m *Manager) AuditTrail() []AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]AuditEntry, len(m.audit))
	copy(out, m.audit)
	return out
}

// logEvent appends to the audit trail. Caller must hold the lock.
func (m *Manager) logEvent(event, user, details string) {
	m.audit = append(m.audit, AuditEntry{
		Timestamp: time.Now(),
		Event:     event,
		User:      user,
		Details:   details,
	})
	slog.Info("Governance event", "event", event, "user", user, "details", details)
}
