package opt

import (
	"errors"
	"testing"
)

func sphere(params []float64) (float64, error) {
	var sum float64
	for _, p := range params {
		sum += p * p
	}
	return sum, nil
}

func TestCompassConvergesOnSphere(t *testing.T) {
	c := NewCompass()
	result, err := c.Minimize(sphere, []float64{0.75, -0.5}, 500)
	if err != nil {
		t.Fatalf("Minimize() error = %v", err)
	}
	if !result.Converged {
		t.Error("Converged = false on a smooth convex objective")
	}
	if result.BestValue > 0.01 {
		t.Errorf("BestValue = %v, want near 0", result.BestValue)
	}
	for i, p := range result.BestParams {
		if p > 0.2 || p < -0.2 {
			t.Errorf("BestParams[%d] = %v, want near 0", i, p)
		}
	}
}

func TestCompassRespectsEvaluationBudget(t *testing.T) {
	for _, budget := range []int{1, 2, 7, 25} {
		calls := 0
		counting := func(params []float64) (float64, error) {
			calls++
			return sphere(params)
		}

		c := NewCompass()
		result, err := c.Minimize(counting, []float64{0.75, -0.5, 0.3}, budget)
		if err != nil {
			t.Fatalf("budget %d: Minimize() error = %v", budget, err)
		}
		if calls > budget {
			t.Errorf("budget %d: objective called %d times", budget, calls)
		}
		if result.Evaluations != calls {
			t.Errorf("budget %d: Evaluations = %d, actual calls = %d", budget, result.Evaluations, calls)
		}
	}
}

func TestCompassImprovesOverInitialPoint(t *testing.T) {
	initial := []float64{1.0, 1.0}
	initialValue, _ := sphere(initial)

	c := NewCompass()
	result, err := c.Minimize(sphere, initial, 50)
	if err != nil {
		t.Fatal(err)
	}
	if result.BestValue >= initialValue {
		t.Errorf("BestValue = %v, no improvement over initial %v", result.BestValue, initialValue)
	}
}

func TestCompassPropagatesObjectiveError(t *testing.T) {
	boom := errors.New("evaluation failed")
	failing := func(params []float64) (float64, error) {
		return 0, boom
	}

	c := NewCompass()
	_, err := c.Minimize(failing, []float64{0.5}, 10)
	if !errors.Is(err, boom) {
		t.Fatalf("Minimize() error = %v, want the objective's error", err)
	}
}

func TestCompassRejectsBadInputs(t *testing.T) {
	c := NewCompass()
	if _, err := c.Minimize(sphere, []float64{0.5}, 0); err == nil {
		t.Error("Minimize(maxEvals=0) = nil, want error")
	}
	if _, err := c.Minimize(sphere, nil, 10); err == nil {
		t.Error("Minimize(empty initial) = nil, want error")
	}
}
