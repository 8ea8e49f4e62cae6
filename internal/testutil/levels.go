package testutil

import "testing"

// Transitions returns the indices where levels changes value, mirroring
// the edge detection a square wave generator is expected to perform.
func Transitions(levels []int) []int {
	var out []int
	for i := 1; i < len(levels); i++ {
		if levels[i] != levels[i-1] {
			out = append(out, i)
		}
	}
	return out
}

// RequireBinary fails t if any level is not 0 or 1.
func RequireBinary(t *testing.T, levels []int) {
	t.Helper()
	for i, l := range levels {
		if l != 0 && l != 1 {
			t.Fatalf("index %d: level %d is not binary", i, l)
		}
	}
}
