package engine

import (
	"testing"

	"github.com/vovakirdan/lane-runner/internal/config"
)

func TestComputeStars(t *testing.T) {
	s := config.DefaultTuning().Scoring

	tests := []struct {
		name     string
		time     float64
		rate     float64
		expected int
	}{
		{"fast and clean", 10, 1, 3},
		{"three star edge", 11, 0.85, 3},
		{"fast but sloppy", 10, 0.7, 2},
		{"slow and clean", 12, 1, 2},
		{"two star edge", 13.5, 0.6, 2},
		{"too slow", 14, 1, 1},
		{"too sloppy", 10, 0.5, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComputeStars(s, tc.time, 10, tc.rate); got != tc.expected {
				t.Errorf("ComputeStars(%v, 10, %v) = %d, expected %d", tc.time, tc.rate, got, tc.expected)
			}
		})
	}
}

func TestComputeStarsMonotonic(t *testing.T) {
	s := config.DefaultTuning().Scoring
	const par = 20.0

	for rate := 0.0; rate <= 1.0; rate += 0.05 {
		prev := 0
		// Decreasing time never lowers the grade.
		for tm := 40.0; tm >= 0; tm -= 0.5 {
			got := ComputeStars(s, tm, par, rate)
			if got < prev {
				t.Fatalf("stars dropped from %d to %d at time %v rate %v", prev, got, tm, rate)
			}
			prev = got
		}
	}

	for tm := 0.0; tm <= 40; tm += 0.5 {
		prev := 0
		for rate := 0.0; rate <= 1.0; rate += 0.05 {
			got := ComputeStars(s, tm, par, rate)
			if got < prev {
				t.Fatalf("stars dropped from %d to %d at rate %v time %v", prev, got, rate, tm)
			}
			prev = got
		}
	}
}

func TestParTime(t *testing.T) {
	s := config.DefaultTuning().Scoring
	if got := ParTime(s, 500, 36); got != 500.0/36 {
		t.Errorf("ParTime(500, 36) = %v", got)
	}
	if got := ParTime(s, 500, 0); got != 0 {
		t.Errorf("ParTime with zero speed = %v, expected 0", got)
	}
}
