package quadrature

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-encoder/dsp/core"
	"github.com/cwbudde/algo-encoder/dsp/encoder"
	"github.com/cwbudde/algo-encoder/dsp/signal"
	"github.com/cwbudde/algo-encoder/dsp/spectrum"
	"github.com/cwbudde/algo-encoder/dsp/window"
	timestats "github.com/cwbudde/algo-encoder/stats/time"
)

const defaultPulsesPerRotation = 180

// Config holds measurement parameters.
type Config struct {
	// PulsesPerRotation converts decoded counts to rotations.
	PulsesPerRotation float64
	// WindowType is applied before the spectral frequency estimate. It is
	// honoured only when HasWindow is set; otherwise Hann is used.
	WindowType window.Type
	HasWindow  bool
	// SkipSpectrum disables the FFT and Goertzel estimates.
	SkipSpectrum bool
}

// ChannelResult holds measurements of a single channel.
type ChannelResult struct {
	Rising  int
	Falling int
	// EdgeFrequency is the reciprocal of the mean rising-edge period.
	EdgeFrequency float64
	// SpectralFrequency is the dominant frequency of the sampled levels.
	SpectralFrequency float64
	// ToneAmplitude is the amplitude at the drive frequency.
	ToneAmplitude float64
	// DutyCycle is the fraction of time spent high.
	DutyCycle float64
	Period    timestats.Stats
}

// Result holds the measurements of one encoder output.
type Result struct {
	A ChannelResult
	B ChannelResult

	// PhaseB is how far channel B is advanced relative to channel A, in
	// degrees within [0,360). Valid only when HasPhase is set.
	PhaseB   float64
	HasPhase bool

	// Count is the signed decoder count over the whole window. For a
	// phase drive it follows the merged-edge order, so a 0° or 180° offset,
	// where A and B edges coincide, decodes as reverse motion.
	Count  int
	Errors int
	// Coincident counts merged edges that share their time with the
	// previous edge.
	Coincident int
	// Direction is derived from the sign of Count for speed drives and is
	// DirectionNone for phase drives.
	Direction encoder.Direction
	Rotations  float64
	// Speed is the measured signed speed in rotations per second.
	Speed  float64
	Deltas timestats.Stats
}

// Calculator measures encoder outputs.
type Calculator struct {
	cfg Config
}

// NewCalculator creates a new measurement calculator.
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{cfg: normalizeConfig(cfg)}
}

// Analyze is a one-shot measurement of out.
func Analyze(out encoder.Output, cfg Config) (Result, error) {
	return NewCalculator(cfg).Analyze(out)
}

// Analyze measures out.
func (c *Calculator) Analyze(out encoder.Output) (Result, error) {
	if len(out.ChannelA.Samples) == 0 || len(out.ChannelB.Samples) == 0 {
		return Result{}, errors.New("quadrature: output has no samples")
	}

	var res Result
	var err error
	if res.A, err = c.channel(out.ChannelA, out.Frequency); err != nil {
		return Result{}, fmt.Errorf("quadrature: channel A: %w", err)
	}
	if res.B, err = c.channel(out.ChannelB, out.Frequency); err != nil {
		return Result{}, fmt.Errorf("quadrature: channel B: %w", err)
	}

	res.PhaseB, res.HasPhase = phaseOffset(out)

	dec := NewDecoder(out.ChannelA.Samples[0].Level, out.ChannelB.Samples[0].Level)
	deltas := make([]float64, 0, len(out.Edges))
	for _, e := range out.Edges {
		dec.Update(e.Channel, e.Level)
		if e.Delta != nil {
			deltas = append(deltas, *e.Delta)
			if *e.Delta == 0 {
				res.Coincident++
			}
		}
	}
	res.Count = dec.Count()
	res.Errors = dec.Errors()
	res.Deltas = timestats.Calculate(deltas)

	switch {
	case out.Mode == encoder.ModePhase:
		res.Direction = encoder.DirectionNone
	case res.Count > 0:
		res.Direction = encoder.Forward
	case res.Count < 0:
		res.Direction = encoder.Reverse
	default:
		res.Direction = encoder.Stopped
	}

	res.Rotations = float64(res.Count) / (4 * c.cfg.PulsesPerRotation)
	if out.Duration > 0 {
		res.Speed = res.Rotations / out.Duration
	}

	return res, nil
}

func (c *Calculator) channel(w signal.Waveform, driveHz float64) (ChannelResult, error) {
	var r ChannelResult
	r.Rising, r.Falling = timestats.EdgeCounts(w.Edges)
	r.DutyCycle = timestats.HighRatio(w.Samples)
	r.Period = timestats.Calculate(timestats.Periods(w.Edges, signal.Rising))
	if r.Period.Mean > 0 {
		r.EdgeFrequency = 1 / r.Period.Mean
	}

	if c.cfg.SkipSpectrum || len(w.Edges) == 0 {
		return r, nil
	}

	rate := w.SampleRate()
	levels := w.Levels()
	s, err := spectrum.Analyze(levels, rate, spectrum.WithWindow(c.cfg.WindowType))
	if err != nil {
		return ChannelResult{}, err
	}
	r.SpectralFrequency, _ = s.Peak()

	if driveHz > 0 && driveHz <= rate/2 {
		if r.ToneAmplitude, err = spectrum.ToneAmplitude(levels, driveHz, rate); err != nil {
			return ChannelResult{}, err
		}
	}

	return r, nil
}

// phaseOffset derives B's advance over A from their first rising edges.
func phaseOffset(out encoder.Output) (float64, bool) {
	if out.Frequency <= 0 {
		return 0, false
	}
	riseA, okA := firstRising(out.ChannelA.Edges)
	riseB, okB := firstRising(out.ChannelB.Edges)
	if !okA || !okB {
		return 0, false
	}
	return core.WrapDegrees((riseA - riseB) * out.Frequency * 360), true
}

func firstRising(edges []signal.Edge) (float64, bool) {
	for _, e := range edges {
		if e.Kind == signal.Rising {
			return e.Time, true
		}
	}
	return 0, false
}

func normalizeConfig(cfg Config) Config {
	if cfg.PulsesPerRotation <= 0 {
		cfg.PulsesPerRotation = defaultPulsesPerRotation
	}

	if !cfg.HasWindow {
		cfg.WindowType = window.TypeHann
	}

	return cfg
}
