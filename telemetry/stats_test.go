package telemetry

import (
	"math"
	"testing"
)

func TestComputeSampleStats(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	mean, p10, p50, p90 := ComputeSampleStats(values)

	if math.Abs(mean-5.5) > 0.001 {
		t.Errorf("mean = %v, want 5.5", mean)
	}

	if p10 < 1 || p10 > 2 {
		t.Errorf("p10 = %v, want in [1, 2]", p10)
	}
	if p50 < 4 || p50 > 6 {
		t.Errorf("p50 = %v, want in [4, 6]", p50)
	}
	if p90 < 9 || p90 > 10 {
		t.Errorf("p90 = %v, want in [9, 10]", p90)
	}
}

func TestComputeSampleStatsEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeSampleStats(nil)

	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty input should return all zeros")
	}
}

func TestComputeSampleStatsUnsortedInput(t *testing.T) {
	values := []float64{9, 1, 5}
	_, _, p50, _ := ComputeSampleStats(values)

	if p50 != 5 {
		t.Errorf("p50 = %v, want 5", p50)
	}

	// Input order must be preserved.
	if values[0] != 9 || values[1] != 1 || values[2] != 5 {
		t.Errorf("input mutated: %v", values)
	}
}
