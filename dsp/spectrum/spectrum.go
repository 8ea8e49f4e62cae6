package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-encoder/dsp/window"
)

var errTooShort = errors.New("spectrum: at least 2 samples required")

// Option configures Analyze.
type Option func(*config)

type config struct {
	window  window.Type
	fftSize int
}

// WithWindow selects the window applied before the transform (default Hann).
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.window = t
	}
}

// WithFFTSize sets a minimum transform length. It is rounded up to a power
// of two and never shorter than the input.
func WithFFTSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.fftSize = n
		}
	}
}

// Spectrum is the one-sided magnitude spectrum of a real signal.
type Spectrum struct {
	// Magnitudes holds |X[k]| for k in [0, FFTSize/2], scaled so a
	// bin-centred sine of amplitude a reads a.
	Magnitudes []float64
	// BinHz is the frequency spacing between bins.
	BinHz float64
	// FFTSize is the transform length after padding.
	FFTSize int
}

// Frequency returns the centre frequency of bin k.
func (s Spectrum) Frequency(k int) float64 {
	return float64(k) * s.BinHz
}

// Peak returns the dominant non-DC frequency, refined by parabolic
// interpolation over the neighbouring bins, and its bin magnitude.
func (s Spectrum) Peak() (freq, magnitude float64) {
	if len(s.Magnitudes) < 2 {
		return 0, 0
	}

	k := 1
	for i := 2; i < len(s.Magnitudes); i++ {
		if s.Magnitudes[i] > s.Magnitudes[k] {
			k = i
		}
	}

	offset := 0.0
	if k > 1 && k < len(s.Magnitudes)-1 {
		a, b, c := s.Magnitudes[k-1], s.Magnitudes[k], s.Magnitudes[k+1]
		if den := a - 2*b + c; den != 0 {
			offset = 0.5 * (a - c) / den
		}
	}

	return (float64(k) + offset) * s.BinHz, s.Magnitudes[k]
}

// Analyze computes the magnitude spectrum of levels sampled at sampleRate.
// The mean is removed before windowing so the DC bin does not dominate.
func Analyze(levels []float64, sampleRate float64, opts ...Option) (Spectrum, error) {
	if len(levels) < 2 {
		return Spectrum{}, errTooShort
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Spectrum{}, fmt.Errorf("spectrum: sample rate must be > 0: %v", sampleRate)
	}

	cfg := config{window: window.TypeHann}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	size := nextPowerOf2(max(cfg.fftSize, len(levels)))

	frame := make([]float64, len(levels))
	mean := 0.0
	for _, v := range levels {
		mean += v
	}
	mean /= float64(len(levels))
	for i, v := range levels {
		frame[i] = v - mean
	}
	coeffs := window.Generate(cfg.window, len(frame), window.WithPeriodic())
	if err := window.ApplyCoefficientsInPlace(frame, coeffs); err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: %w", err)
	}
	gain, err := window.CoherentGain(coeffs)
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: %w", err)
	}

	in := make([]complex128, size)
	for i, v := range frame {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: fft plan: %w", err)
	}
	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: forward fft: %w", err)
	}

	bins := size/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}
	raw := make([]float64, bins)
	vecmath.Magnitude(raw, re, im)
	mags := make([]float64, bins)
	vecmath.ScaleBlock(mags, raw, 2/(float64(len(levels))*gain))

	return Spectrum{
		Magnitudes: mags,
		BinHz:      sampleRate / float64(size),
		FFTSize:    size,
	}, nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
