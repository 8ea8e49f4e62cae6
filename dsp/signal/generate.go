package signal

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-encoder/dsp/core"
)

// MaxSamples bounds the samples a single waveform may hold.
const MaxSamples = 1 << 22

var (
	// ErrInvalidDuration reports a non-positive or non-finite duration.
	ErrInvalidDuration = errors.New("duration must be finite and > 0")
	// ErrInvalidFrequency reports a negative or non-finite frequency.
	ErrInvalidFrequency = errors.New("frequency must be finite and >= 0")
	// ErrInvalidDutyCycle reports a duty cycle outside (0,1).
	ErrInvalidDutyCycle = errors.New("duty cycle must be in (0,1)")
	// ErrInvalidResolution reports a non-positive samples-per-period count or
	// a sample count above MaxSamples.
	ErrInvalidResolution = errors.New("invalid sample resolution")
	// ErrInvalidPhase reports a non-finite phase offset.
	ErrInvalidPhase = errors.New("phase offset must be finite")
)

// Generator creates square waves from a shared configuration.
type Generator struct {
	cfg core.Config
}

// NewGenerator creates a configured square wave generator.
func NewGenerator(opts ...core.Option) *Generator {
	return &Generator{cfg: core.ApplyOptions(opts...)}
}

// NewGeneratorFromConfig creates a generator using cfg as is.
func NewGeneratorFromConfig(cfg core.Config) *Generator {
	return &Generator{cfg: cfg}
}

// Config returns the generator configuration.
func (g *Generator) Config() core.Config {
	return g.cfg
}

// Square generates one channel at frequency Hz shifted by phaseDeg degrees,
// using the configured duration, duty cycle and resolution.
func (g *Generator) Square(frequency, phaseDeg float64) (Waveform, error) {
	return Generate(g.cfg.Duration, frequency, g.cfg.DutyCycle, phaseDeg, g.cfg.SamplesPerPeriod)
}

// Generate samples a square wave over [0, duration].
//
// The wave is sampled samplesPerPeriod times per period for
// floor(duration*frequency) whole periods, which yields totalSamples+1
// samples evenly spread over [0, duration]. A sample is high while its
// phase fraction, offset by phaseDeg and wrapped into [0,1), is below
// dutyCycle.
//
// A zero frequency yields a flat low waveform of two samples at 0 and
// duration. When the duration holds less than one whole period, a single
// sample at t=0 is returned. Neither case produces edges.
func Generate(duration, frequency, dutyCycle, phaseDeg float64, samplesPerPeriod int) (Waveform, error) {
	if err := validate(duration, frequency, dutyCycle, phaseDeg, samplesPerPeriod); err != nil {
		return Waveform{}, err
	}

	if frequency == 0 {
		return Waveform{
			Samples: []Sample{{Time: 0, Level: 0}, {Time: duration, Level: 0}},
			Edges:   []Edge{},
		}, nil
	}

	period := 1 / frequency
	periods := math.Floor(duration / period)
	if periods*float64(samplesPerPeriod) > MaxSamples {
		return Waveform{}, fmt.Errorf("square wave: %.0f periods at %d samples each exceeds %d samples: %w",
			periods, samplesPerPeriod, MaxSamples, ErrInvalidResolution)
	}
	totalSamples := int(periods) * samplesPerPeriod

	if totalSamples == 0 {
		return Waveform{
			Samples: []Sample{{Time: 0, Level: levelAt(0, frequency, dutyCycle, phaseDeg)}},
			Edges:   []Edge{},
		}, nil
	}

	dt := duration / float64(totalSamples)
	samples := make([]Sample, totalSamples+1)
	edges := make([]Edge, 0, 2*int(periods)+2)

	prev := -1
	for i := 0; i <= totalSamples; i++ {
		t := float64(i) * dt
		level := levelAt(t, frequency, dutyCycle, phaseDeg)
		samples[i] = Sample{Time: t, Level: level}
		if prev >= 0 && level != prev {
			edges = append(edges, edgeTo(t, level))
		}
		prev = level
	}

	return Waveform{Samples: samples, Edges: edges}, nil
}

// levelAt returns the square wave level at time t.
func levelAt(t, frequency, dutyCycle, phaseDeg float64) int {
	fraction := core.WrapDegrees(t*frequency*360+phaseDeg) / 360
	if fraction < dutyCycle {
		return 1
	}
	return 0
}

func validate(duration, frequency, dutyCycle, phaseDeg float64, samplesPerPeriod int) error {
	if !(duration > 0) || math.IsInf(duration, 0) {
		return fmt.Errorf("square wave: %w: %v", ErrInvalidDuration, duration)
	}
	if !(frequency >= 0) || math.IsInf(frequency, 0) {
		return fmt.Errorf("square wave: %w: %v", ErrInvalidFrequency, frequency)
	}
	if !(dutyCycle > 0 && dutyCycle < 1) {
		return fmt.Errorf("square wave: %w: %v", ErrInvalidDutyCycle, dutyCycle)
	}
	if samplesPerPeriod <= 0 {
		return fmt.Errorf("square wave: %w: %d", ErrInvalidResolution, samplesPerPeriod)
	}
	if !core.IsFinite(phaseDeg) {
		return fmt.Errorf("square wave: %w: %v", ErrInvalidPhase, phaseDeg)
	}
	return nil
}
