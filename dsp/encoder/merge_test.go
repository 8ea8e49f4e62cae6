package encoder

import (
	"testing"

	"github.com/cwbudde/algo-encoder/dsp/signal"
)

func TestMergeEdgesTieBreak(t *testing.T) {
	a := []signal.Edge{
		{Time: 1, Kind: signal.Rising, Level: 1},
		{Time: 3, Kind: signal.Falling, Level: 0},
	}
	b := []signal.Edge{
		{Time: 0.5, Kind: signal.Rising, Level: 1},
		{Time: 1, Kind: signal.Falling, Level: 0},
		{Time: 4, Kind: signal.Rising, Level: 1},
	}

	got := MergeEdges(a, b)
	want := []struct {
		time    float64
		channel Channel
		delta   float64
	}{
		{0.5, ChannelB, 0},
		{1, ChannelA, 0.5},
		{1, ChannelB, 0},
		{3, ChannelA, 2},
		{4, ChannelB, 1},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	if got[0].Delta != nil {
		t.Fatalf("first delta = %v, want nil", *got[0].Delta)
	}
	for i, w := range want {
		if got[i].Time != w.time || got[i].Channel != w.channel {
			t.Fatalf("edge %d = (%v,%v), want (%v,%v)", i, got[i].Time, got[i].Channel, w.time, w.channel)
		}
		if i > 0 && *got[i].Delta != w.delta {
			t.Fatalf("edge %d delta = %v, want %v", i, *got[i].Delta, w.delta)
		}
	}
}

func TestMergeEdgesEmpty(t *testing.T) {
	got := MergeEdges(nil, nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("MergeEdges(nil, nil) = %#v, want empty non-nil slice", got)
	}

	got = MergeEdges(nil, []signal.Edge{{Time: 2, Kind: signal.Rising, Level: 1}})
	if len(got) != 1 || got[0].Channel != ChannelB || got[0].Delta != nil {
		t.Fatalf("single edge merge = %+v", got)
	}
}
