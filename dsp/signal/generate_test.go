package signal

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-encoder/internal/testutil"
)

func TestGenerateLength(t *testing.T) {
	tests := []struct {
		name      string
		duration  float64
		frequency float64
		spp       int
	}{
		{name: "nxt phase drive", duration: 0.1, frequency: 1800, spp: 20},
		{name: "slow speed", duration: 0.1, frequency: 54, spp: 20},
		{name: "fine resolution", duration: 0.1, frequency: 540, spp: 64},
		{name: "fractional periods", duration: 0.1, frequency: 333.3, spp: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Generate(tt.duration, tt.frequency, 0.45, 0, tt.spp)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			want := int(math.Floor(tt.duration/(1/tt.frequency)))*tt.spp + 1
			if len(w.Samples) != want {
				t.Fatalf("len = %d, want %d", len(w.Samples), want)
			}
			if w.Samples[0].Time != 0 {
				t.Fatalf("first time = %v, want 0", w.Samples[0].Time)
			}
			for i := 1; i < len(w.Samples); i++ {
				if !(w.Samples[i].Time > w.Samples[i-1].Time) {
					t.Fatalf("time not strictly increasing at %d", i)
				}
			}
			last := w.Samples[len(w.Samples)-1].Time
			if math.Abs(last-tt.duration) > 1e-12 {
				t.Fatalf("last time = %v, want %v", last, tt.duration)
			}
		})
	}
}

func TestGenerateZeroFrequency(t *testing.T) {
	w, err := Generate(0.1, 0, 0.45, 90, 20)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := []Sample{{Time: 0, Level: 0}, {Time: 0.1, Level: 0}}
	if len(w.Samples) != len(want) {
		t.Fatalf("len = %d, want %d", len(w.Samples), len(want))
	}
	for i := range want {
		if w.Samples[i] != want[i] {
			t.Fatalf("sample[%d] = %+v, want %+v", i, w.Samples[i], want[i])
		}
	}
	if w.Edges == nil || len(w.Edges) != 0 {
		t.Fatalf("edges = %#v, want empty non-nil slice", w.Edges)
	}
}

func TestGenerateZeroSamples(t *testing.T) {
	// 5 Hz has a 200 ms period, longer than the 100 ms window.
	w, err := Generate(0.1, 5, 0.45, 0, 20)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(w.Samples) != 1 {
		t.Fatalf("len = %d, want 1", len(w.Samples))
	}
	if w.Samples[0] != (Sample{Time: 0, Level: 1}) {
		t.Fatalf("sample = %+v, want {0 1}", w.Samples[0])
	}
	if len(w.Edges) != 0 {
		t.Fatalf("edges = %d, want 0", len(w.Edges))
	}

	w, err = Generate(0.1, 5, 0.45, 180, 20)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if w.Samples[0].Level != 0 {
		t.Fatalf("level = %d, want 0 for half-period offset", w.Samples[0].Level)
	}
}

func TestEdgesMatchSamples(t *testing.T) {
	for _, phase := range []float64{0, 45, 90, 135, 180, 270, -90, 725} {
		w, err := Generate(0.1, 1800, 0.45, phase, 20)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		got := DetectEdges(w.Samples)
		if len(got) != len(w.Edges) {
			t.Fatalf("phase %v: detected %d edges, generator reported %d", phase, len(got), len(w.Edges))
		}
		for i := range got {
			if got[i] != w.Edges[i] {
				t.Fatalf("phase %v: edge %d = %+v, want %+v", phase, i, w.Edges[i], got[i])
			}
		}
	}
}

func TestEdgeLevelsAlternate(t *testing.T) {
	w, err := Generate(0.1, 540, 0.45, 90, 20)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(w.Edges) == 0 {
		t.Fatal("expected edges")
	}
	for i, e := range w.Edges {
		if (e.Kind == Rising) != (e.Level == 1) {
			t.Fatalf("edge %d kind %v has level %d", i, e.Kind, e.Level)
		}
		if i > 0 {
			if e.Kind == w.Edges[i-1].Kind {
				t.Fatalf("edge %d repeats kind %v", i, e.Kind)
			}
			if !(e.Time > w.Edges[i-1].Time) {
				t.Fatalf("edge %d time not increasing", i)
			}
		}
	}
}

func TestDutyCycleRespected(t *testing.T) {
	w, err := Generate(0.1, 1800, 0.45, 0, 20)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	// Sample fractions are i/20, so 9 of every 20 samples are high.
	high := 0
	for _, s := range w.Samples[:20] {
		high += s.Level
	}
	if high != 9 {
		t.Fatalf("high samples per period = %d, want 9", high)
	}
}

func TestNegativePhaseWraps(t *testing.T) {
	w, err := Generate(0.1, 1800, 0.45, -90, 20)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	// -90 deg wraps to 270 deg, fraction 0.75, which is low.
	if w.Samples[0].Level != 0 {
		t.Fatalf("level = %d, want 0", w.Samples[0].Level)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(0.1, 1260, 0.45, 90, 20)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := Generate(0.1, 1260, 0.45, 90, 20)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(a.Samples) != len(b.Samples) || len(a.Edges) != len(b.Edges) {
		t.Fatal("length mismatch between identical invocations")
	}
	for i := range a.Samples {
		if a.Samples[i] != b.Samples[i] {
			t.Fatalf("sample %d differs: %+v != %+v", i, a.Samples[i], b.Samples[i])
		}
	}
	for i := range a.Edges {
		if a.Edges[i] != b.Edges[i] {
			t.Fatalf("edge %d differs: %+v != %+v", i, a.Edges[i], b.Edges[i])
		}
	}
}

func TestGenerateInvalid(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		freq     float64
		duty     float64
		phase    float64
		spp      int
		want     error
	}{
		{name: "zero duration", duration: 0, freq: 100, duty: 0.45, spp: 20, want: ErrInvalidDuration},
		{name: "negative duration", duration: -1, freq: 100, duty: 0.45, spp: 20, want: ErrInvalidDuration},
		{name: "nan duration", duration: math.NaN(), freq: 100, duty: 0.45, spp: 20, want: ErrInvalidDuration},
		{name: "negative frequency", duration: 0.1, freq: -1, duty: 0.45, spp: 20, want: ErrInvalidFrequency},
		{name: "inf frequency", duration: 0.1, freq: math.Inf(1), duty: 0.45, spp: 20, want: ErrInvalidFrequency},
		{name: "duty zero", duration: 0.1, freq: 100, duty: 0, spp: 20, want: ErrInvalidDutyCycle},
		{name: "duty one", duration: 0.1, freq: 100, duty: 1, spp: 20, want: ErrInvalidDutyCycle},
		{name: "no resolution", duration: 0.1, freq: 100, duty: 0.45, spp: 0, want: ErrInvalidResolution},
		{name: "nan phase", duration: 0.1, freq: 100, duty: 0.45, phase: math.NaN(), spp: 20, want: ErrInvalidPhase},
		{name: "too many samples", duration: 1, freq: 1e12, duty: 0.45, spp: 20, want: ErrInvalidResolution},
		{name: "above sample limit", duration: 1, freq: 2_100_000, duty: 0.45, spp: 2, want: ErrInvalidResolution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.duration, tt.freq, tt.duty, tt.phase, tt.spp)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Generate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGeneratorSquareUsesConfig(t *testing.T) {
	g := NewGenerator()
	w, err := g.Square(1800, 0)
	if err != nil {
		t.Fatalf("Square() error = %v", err)
	}
	if len(w.Samples) != 180*20+1 {
		t.Fatalf("len = %d, want %d", len(w.Samples), 180*20+1)
	}
	if g.Config().DutyCycle != 0.45 {
		t.Fatalf("duty = %v, want 0.45", g.Config().DutyCycle)
	}
}

func TestWaveformHelpers(t *testing.T) {
	w, err := Generate(0.1, 1800, 0.45, 0, 20)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got := len(w.Times()); got != len(w.Samples) {
		t.Fatalf("Times len = %d", got)
	}
	levels := w.Levels()
	if levels[0] != 1 || levels[9] != 0 {
		t.Fatalf("levels = %v..., want 1 at 0 and 0 at 9", levels[:10])
	}
	if math.Abs(w.SampleRate()-36000) > 1e-6 {
		t.Fatalf("SampleRate = %v, want 36000", w.SampleRate())
	}

	flat := Waveform{Samples: []Sample{{}}}
	if flat.SampleInterval() != 0 || flat.SampleRate() != 0 {
		t.Fatal("single-sample waveform must report zero interval and rate")
	}
}

func TestEdgeKindJSON(t *testing.T) {
	b, err := Falling.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if string(b) != `"falling"` {
		t.Fatalf("json = %s", b)
	}
	var k EdgeKind
	if err := k.UnmarshalJSON([]byte(`"rising"`)); err != nil || k != Rising {
		t.Fatalf("UnmarshalJSON = %v, %v", k, err)
	}
	if err := k.UnmarshalJSON([]byte(`"sideways"`)); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestEdgesAtLevelTransitions(t *testing.T) {
	w, err := Generate(0.1, 1260, 0.45, 33, 20)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	levels := make([]int, len(w.Samples))
	for i, s := range w.Samples {
		levels[i] = s.Level
	}
	testutil.RequireBinary(t, levels)

	idx := testutil.Transitions(levels)
	if len(idx) != len(w.Edges) {
		t.Fatalf("transitions = %d, edges = %d", len(idx), len(w.Edges))
	}
	for i, j := range idx {
		if w.Edges[i].Time != w.Samples[j].Time || w.Edges[i].Level != w.Samples[j].Level {
			t.Fatalf("edge %d = %+v, want transition at sample %d %+v", i, w.Edges[i], j, w.Samples[j])
		}
	}
}
