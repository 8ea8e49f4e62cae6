package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-encoder/dsp/signal"
	"github.com/cwbudde/algo-encoder/dsp/window"
	"github.com/cwbudde/algo-encoder/internal/testutil"
)

func sine(freq, sampleRate float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}
	return out
}

func TestAnalyzeSinePeak(t *testing.T) {
	s, err := Analyze(sine(2000, 48000, 4096), 48000)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if s.FFTSize != 4096 || len(s.Magnitudes) != 2049 {
		t.Fatalf("size = %d bins = %d", s.FFTSize, len(s.Magnitudes))
	}
	testutil.RequireFinite(t, s.Magnitudes)
	freq, mag := s.Peak()
	testutil.RequireNearlyEqual(t, "peak", freq, 2000, 0.5*s.BinHz)
	if mag <= 0 {
		t.Fatalf("peak magnitude = %v", mag)
	}
}

func TestAnalyzeSquareWaveFundamental(t *testing.T) {
	for _, f := range []float64{1800, 540, 1260} {
		w, err := signal.Generate(0.1, f, 0.45, 90, 20)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		s, err := Analyze(w.Levels(), w.SampleRate())
		if err != nil {
			t.Fatalf("Analyze() error = %v", err)
		}
		freq, _ := s.Peak()
		testutil.RequireNearlyEqual(t, "fundamental", freq, f, 2*s.BinHz)
	}
}

func TestAnalyzeAmplitudeNormalised(t *testing.T) {
	for _, typ := range []window.Type{window.TypeRectangular, window.TypeHann, window.TypeHamming} {
		t.Run(typ.String(), func(t *testing.T) {
			s, err := Analyze(sine(64, 1024, 1024), 1024, WithWindow(typ))
			if err != nil {
				t.Fatalf("Analyze() error = %v", err)
			}
			freq, mag := s.Peak()
			testutil.RequireNearlyEqual(t, "peak", freq, 64, 1e-9)
			testutil.RequireNearlyEqual(t, "magnitude", mag, 1, 1e-9)
		})
	}
}

func TestAnalyzeWindowChangesLeakage(t *testing.T) {
	levels := sine(1003, 8000, 400)
	rect, err := Analyze(levels, 8000, WithWindow(window.TypeRectangular))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	hann, err := Analyze(levels, 8000, WithWindow(window.TypeHann))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if d := testutil.MaxAbsDiff(rect.Magnitudes, hann.Magnitudes); d < 1e-3 {
		t.Fatalf("rectangular and hann spectra differ by %v", d)
	}
}

func TestAnalyzeOptions(t *testing.T) {
	s, err := Analyze(sine(1000, 8000, 100), 8000, WithFFTSize(1000), WithWindow(window.TypeRectangular))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if s.FFTSize != 1024 {
		t.Fatalf("FFTSize = %d, want 1024", s.FFTSize)
	}
	testutil.RequireNearlyEqual(t, "bin", s.Frequency(128), 1000, 1e-9)
}

func TestAnalyzeInvalid(t *testing.T) {
	if _, err := Analyze([]float64{1}, 1000); err == nil {
		t.Fatal("expected error for single sample")
	}
	if _, err := Analyze([]float64{1, 0}, 0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
	if f, m := (Spectrum{}).Peak(); f != 0 || m != 0 {
		t.Fatalf("empty Peak() = %v, %v", f, m)
	}
}

func TestToneAmplitude(t *testing.T) {
	a, err := ToneAmplitude(sine(1000, 48000, 4800), 1000, 48000)
	if err != nil {
		t.Fatalf("ToneAmplitude() error = %v", err)
	}
	testutil.RequireNearlyEqual(t, "amplitude", a, 1, 1e-6)

	// A 0/1 square wave with duty d has fundamental amplitude 2/pi*sin(pi*d).
	w, err := signal.Generate(0.1, 1800, 0.45, 0, 20)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	a, err = ToneAmplitude(w.Levels(), 1800, w.SampleRate())
	if err != nil {
		t.Fatalf("ToneAmplitude() error = %v", err)
	}
	testutil.RequireNearlyEqual(t, "square fundamental", a, 2/math.Pi*math.Sin(math.Pi*0.45), 0.01)

	if _, err := ToneAmplitude(nil, 1000, 48000); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := ToneAmplitude([]float64{1}, 30000, 48000); err == nil {
		t.Fatal("expected error above Nyquist")
	}
}
