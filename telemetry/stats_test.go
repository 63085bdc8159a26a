package telemetry

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name           string
		values         []float64
		mean, std, p50 float64
	}{
		{"empty", nil, 0, 0, 0},
		{"single", []float64{4}, 4, 0, 4},
		{"odd", []float64{3, 1, 2}, 2, 1, 2},
		{"spread", []float64{2, 4, 4, 4, 5, 5, 7, 9, 1}, 41.0 / 9, 2.4037, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std, p50 := Summarize(tt.values)
			if math.Abs(mean-tt.mean) > 0.001 {
				t.Errorf("mean = %v, want %v", mean, tt.mean)
			}
			if math.Abs(std-tt.std) > 0.001 {
				t.Errorf("std = %v, want %v", std, tt.std)
			}
			if math.Abs(p50-tt.p50) > 0.001 {
				t.Errorf("p50 = %v, want %v", p50, tt.p50)
			}
		})
	}
}

func TestSummarizeDoesNotReorderInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Summarize(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("input reordered: %v", values)
	}
}

func TestSurvivalRate(t *testing.T) {
	tests := []struct {
		initial, caught int
		want            float64
	}{
		{10, 0, 1},
		{10, 4, 0.6},
		{10, 10, 0},
		{0, 0, 0},
	}

	for _, tt := range tests {
		s := LevelStats{InitialPrey: tt.initial, PreyCaught: tt.caught}
		if got := s.SurvivalRate(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("SurvivalRate(%d, %d) = %v, want %v", tt.initial, tt.caught, got, tt.want)
		}
	}
}
