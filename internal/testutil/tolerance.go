package testutil

import (
	"math"
	"testing"
)

// RequireNearlyEqual fails t if got and want differ by more than eps.
func RequireNearlyEqual(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if diff := math.Abs(got - want); diff > eps || math.IsNaN(diff) {
		t.Fatalf("%s = %v, want %v (diff %v > eps %v)", name, got, want, diff, eps)
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireDeltaChain fails t unless times is non-decreasing, deltas[0] is
// nil and every later delta equals the difference of adjacent times.
func RequireDeltaChain(t *testing.T, times []float64, deltas []*float64) {
	t.Helper()
	if len(times) != len(deltas) {
		t.Fatalf("length mismatch: %d times, %d deltas", len(times), len(deltas))
	}
	if len(times) == 0 {
		return
	}
	if deltas[0] != nil {
		t.Fatalf("first delta = %v, want nil", *deltas[0])
	}
	for i := 1; i < len(times); i++ {
		if times[i] < times[i-1] {
			t.Fatalf("index %d: time %v before previous %v", i, times[i], times[i-1])
		}
		if deltas[i] == nil {
			t.Fatalf("index %d: delta is nil", i)
		}
		if *deltas[i] != times[i]-times[i-1] {
			t.Fatalf("index %d: delta %v, want %v", i, *deltas[i], times[i]-times[i-1])
		}
		if *deltas[i] < 0 {
			t.Fatalf("index %d: negative delta %v", i, *deltas[i])
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Extra elements of the longer slice are ignored.
func MaxAbsDiff(a, b []float64) float64 {
	n := min(len(a), len(b))
	maxDiff := 0.0
	for i := range n {
		if d := math.Abs(a[i] - b[i]); d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff
}
