package testutil

import (
	"math"
	"testing"
)

func TestRequireNearlyEqualPasses(t *testing.T) {
	RequireNearlyEqual(t, "x", 1.0, 1.0+1e-10, 1e-9)
}

func TestRequireFinitePasses(t *testing.T) {
	RequireFinite(t, []float64{0, 1, -1, math.MaxFloat64})
}

func TestRequireDeltaChainPasses(t *testing.T) {
	d1, d2 := 0.5, 0.0
	RequireDeltaChain(t, []float64{1, 1.5, 1.5}, []*float64{nil, &d1, &d2})
	RequireDeltaChain(t, nil, nil)
}

func TestMaxAbsDiff(t *testing.T) {
	if got := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 2}); got != 1 {
		t.Fatalf("MaxAbsDiff = %v, want 1", got)
	}
	if got := MaxAbsDiff([]float64{1}, []float64{1, 9}); got != 0 {
		t.Fatalf("MaxAbsDiff = %v, want 0", got)
	}
}

func TestTransitions(t *testing.T) {
	got := Transitions([]int{1, 1, 0, 0, 1, 0})
	want := []int{2, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("Transitions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Transitions = %v, want %v", got, want)
		}
	}
	RequireBinary(t, []int{0, 1, 1, 0})
}
