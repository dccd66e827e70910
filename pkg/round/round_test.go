package round

import (
	"math"
	"testing"
)

func TestPlaces_HalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in   float64
		n    int32
		want float64
	}{
		{2.345, 2, 2.35},
		{-2.345, 2, -2.35},
		{2.344, 2, 2.34},
		{2.5, 0, 3},
		{-2.5, 0, -3},
		{0.125, 2, 0.13},
		{1.005, 2, 1.01},
		{12.25, 1, 12.3},
		{12.24, 1, 12.2},
		{20, 2, 20},
		{0, 2, 0},
	}

	for _, tt := range tests {
		if got := Places(tt.in, tt.n); got != tt.want {
			t.Errorf("Places(%v, %d) = %v, want %v", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestMoney(t *testing.T) {
	if got := Money(26.005); got != 26.01 {
		t.Fatalf("Money(26.005) = %v, want 26.01", got)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		part, total int64
		want        float64
	}{
		{1, 3, 33.33},
		{2, 3, 66.67},
		{1, 8, 12.5},
		{1, 200, 0.5},
		{1, 400, 0.25},
		{5, 5, 100},
		{0, 5, 0},
		{3, 0, 0},
	}

	for _, tt := range tests {
		if got := Percent(tt.part, tt.total); got != tt.want {
			t.Errorf("Percent(%d, %d) = %v, want %v", tt.part, tt.total, got, tt.want)
		}
	}
}

func TestPercent_SumWithinTolerance(t *testing.T) {
	counts := []int64{1, 1, 1}
	var total int64
	for _, c := range counts {
		total += c
	}

	var sum float64
	for _, c := range counts {
		sum += Percent(c, total)
	}
	if math.Abs(sum-100) > 0.01*float64(len(counts)) {
		t.Fatalf("percentages sum to %v", sum)
	}
}
