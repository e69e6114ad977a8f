package bench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareMetrics(t *testing.T) {
	e := NewEngine()

	hybrid := Measurement{ExecutionTime: 10, Cost: 500, SolutionQuality: 0.9, Iterations: 50}
	classical := Measurement{ExecutionTime: 40, Cost: 1000, SolutionQuality: 0.8, Iterations: 200}

	b, err := e.Compare(hybrid, classical, "pharmaceutical")
	require.NoError(t, err)

	assert.InDelta(t, 4.0, b.Metrics[MetricSpeedupFactor], 1e-9)
	assert.InDelta(t, 50.0, b.Metrics[MetricCostReductionPct], 1e-9)
	assert.InDelta(t, 0.1, b.Metrics[MetricQualityImprovement], 1e-9)
	assert.InDelta(t, 0.25, b.Metrics[MetricConvergenceEfficiency], 1e-9)

	// Domain template keys are merged in without clobbering computed metrics.
	assert.Contains(t, b.Metrics, "time_to_discovery_days")
	assert.InDelta(t, 50.0, b.Metrics["cost_reduction_pct"], 1e-9)
}

func TestCompareUnknownDomain(t *testing.T) {
	e := NewEngine()
	hybrid := Measurement{ExecutionTime: 1, Cost: 1, SolutionQuality: 0.5, Iterations: 10}
	classical := Measurement{ExecutionTime: 2, Cost: 2, SolutionQuality: 0.5, Iterations: 20}

	b, err := e.Compare(hybrid, classical, "unmapped_domain")
	require.NoError(t, err)
	assert.Len(t, b.Metrics, 4, "unknown domain should carry only the standard metrics")
}

func TestCompareValidation(t *testing.T) {
	e := NewEngine()
	good := Measurement{ExecutionTime: 1, Cost: 1, SolutionQuality: 0.5, Iterations: 10}

	_, err := e.Compare(Measurement{ExecutionTime: 0}, good, "financial")
	assert.Error(t, err)

	_, err = e.Compare(good, Measurement{ExecutionTime: 0, Cost: 1, Iterations: 1}, "financial")
	assert.Error(t, err)

	_, err = e.Compare(good, Measurement{ExecutionTime: 1, Cost: 0, Iterations: 1}, "financial")
	assert.Error(t, err)

	_, err = e.Compare(good, Measurement{ExecutionTime: 1, Cost: 1, Iterations: 0}, "financial")
	assert.Error(t, err)
}

func TestDashboard(t *testing.T) {
	e := NewEngine()

	empty := e.Dashboard()
	assert.Equal(t, 0, empty.TotalRuns)
	assert.Nil(t, empty.Latest)

	classical := Measurement{ExecutionTime: 20, Cost: 100, SolutionQuality: 0.5, Iterations: 100}
	_, err := e.Compare(Measurement{ExecutionTime: 10, Cost: 50, SolutionQuality: 0.6, Iterations: 40}, classical, "financial")
	require.NoError(t, err)
	_, err = e.Compare(Measurement{ExecutionTime: 5, Cost: 25, SolutionQuality: 0.7, Iterations: 30}, classical, "materials_science")
	require.NoError(t, err)

	d := e.Dashboard()
	assert.Equal(t, 2, d.TotalRuns)
	assert.InDelta(t, 3.0, d.AverageSpeedup, 1e-9) // (2 + 4) / 2
	assert.InDelta(t, 62.5, d.AverageCostReductionPct, 1e-9)
	assert.Len(t, d.DomainBreakdown, 2)
	require.NotNil(t, d.Latest)
	assert.Equal(t, "materials_science", d.Latest.Domain)
}

func TestDomains(t *testing.T) {
	e := NewEngine()
	assert.Equal(t, []string{"financial", "materials_science", "pharmaceutical"}, e.Domains())
}
