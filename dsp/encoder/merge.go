package encoder

import (
	"cmp"
	"slices"

	"github.com/cwbudde/algo-encoder/dsp/signal"
)

// MergeEdges tags the edges of both channels and orders them by time.
//
// Edges at exactly the same time keep channel A before channel B; edges of
// one channel keep their relative order. The first merged edge has a nil
// Delta and every other edge carries the time since its predecessor in the
// merged order.
func MergeEdges(a, b []signal.Edge) []TaggedEdge {
	merged := make([]TaggedEdge, 0, len(a)+len(b))
	for _, e := range a {
		merged = append(merged, TaggedEdge{Edge: e, Channel: ChannelA})
	}
	for _, e := range b {
		merged = append(merged, TaggedEdge{Edge: e, Channel: ChannelB})
	}

	slices.SortStableFunc(merged, func(x, y TaggedEdge) int {
		if c := cmp.Compare(x.Time, y.Time); c != 0 {
			return c
		}
		return cmp.Compare(x.Channel, y.Channel)
	})

	for i := 1; i < len(merged); i++ {
		d := merged[i].Time - merged[i-1].Time
		merged[i].Delta = &d
	}
	return merged
}
