package governance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAccess(t *testing.T) {
	m := NewManager()

	tests := []struct {
		role   string
		action string
		want   bool
	}{
		{"quantum_specialist", ActionExecuteQuantum, true},
		{"quantum_specialist", ActionWriteResults, true},
		{"quantum_specialist", ActionDelete, false},
		{"classical_specialist", ActionExecuteClassical, true},
		{"classical_specialist", ActionExecuteQuantum, false},
		{"data_owner", ActionDelete, true},
		{"data_owner", ActionExecuteQuantum, false},
		{"data_steward", ActionValidateQuality, true},
		{"compliance_officer", ActionAudit, true},
		{"nonexistent_role", ActionRead, false},
	}

	for _, tt := range tests {
		got := m.CheckAccess("alice", tt.role, tt.action)
		assert.Equal(t, tt.want, got, "role %s action %s", tt.role, tt.action)
	}
}

func TestCheckAccessAudited(t *testing.T) {
	m := NewManager()

	m.CheckAccess("alice", "quantum_specialist", ActionExecuteQuantum)
	m.CheckAccess("bob", "quantum_specialist", ActionDelete)

	trail := m.AuditTrail()
	require.Len(t, trail, 2)
	assert.Equal(t, "GRANTED", trail[0].Event)
	assert.Equal(t, "alice", trail[0].User)
	assert.Equal(t, "DENIED", trail[1].Event)
	assert.Equal(t, "bob", trail[1].User)
}

func TestCreateDatasetMetadata(t *testing.T) {
	m := NewManager()

	md := m.CreateDatasetMetadata("ds-1", "alice", "molecule screening", "")
	assert.Equal(t, "ds-1", md.DatasetID)
	assert.Equal(t, "internal", md.Classification, "empty classification should default")

	stored, ok := m.Dataset("ds-1")
	require.True(t, ok)
	assert.Equal(t, "alice", stored.Owner)

	_, ok = m.Dataset("missing")
	assert.False(t, ok)
}

func TestRecordQuality(t *testing.T) {
	m := NewManager()
	m.CreateDatasetMetadata("ds-1", "alice", "test", "internal")

	err := m.RecordQuality("ds-1", map[string]float64{
		"completeness": 0.9,
		"accuracy":     0.7,
	})
	require.NoError(t, err)

	md, ok := m.Dataset("ds-1")
	require.True(t, ok)
	assert.InDelta(t, 0.8, md.QualityScore, 1e-9)
	assert.Len(t, md.QualityMetrics, 2)
}

func TestRecordQualityErrors(t *testing.T) {
	m := NewManager()
	m.CreateDatasetMetadata("ds-1", "alice", "test", "internal")

	assert.Error(t, m.RecordQuality("missing", map[string]float64{"a": 1}))
	assert.Error(t, m.RecordQuality("ds-1", nil))
}
