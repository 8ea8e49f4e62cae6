package encoder

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-encoder/dsp/core"
	"github.com/cwbudde/algo-encoder/dsp/signal"
)

// ErrInvalidDrive reports a drive value that cannot be synthesized.
var ErrInvalidDrive = errors.New("invalid encoder drive")

// Synthesizer produces encoder outputs from a fixed configuration.
type Synthesizer struct {
	gen *signal.Generator
}

// NewSynthesizer creates a synthesizer. Without options it models an NXT
// motor encoder: 180 pulses per rotation, 45% duty cycle, 100 ms window.
func NewSynthesizer(opts ...core.Option) *Synthesizer {
	return &Synthesizer{gen: signal.NewGenerator(opts...)}
}

// NewSynthesizerFromConfig creates a synthesizer using cfg as is.
func NewSynthesizerFromConfig(cfg core.Config) *Synthesizer {
	return &Synthesizer{gen: signal.NewGeneratorFromConfig(cfg)}
}

// Config returns the synthesizer configuration.
func (s *Synthesizer) Config() core.Config {
	return s.gen.Config()
}

// Synthesize generates both channels for d and merges their edges.
func (s *Synthesizer) Synthesize(d Drive) (Output, error) {
	if d == nil {
		return Output{}, fmt.Errorf("%w: nil drive", ErrInvalidDrive)
	}
	cfg := s.gen.Config()
	r, err := d.resolve(cfg)
	if err != nil {
		return Output{}, err
	}

	out := Output{
		Mode:      r.mode,
		Input:     r.input,
		Frequency: r.frequency,
		Duration:  cfg.Duration,
		Direction: r.direction,
		PhaseA:    r.phaseA,
		PhaseB:    r.phaseB,
	}

	if r.frequency == 0 {
		flat := func() signal.Waveform {
			return signal.Waveform{
				Samples: []signal.Sample{{Time: 0, Level: 0}, {Time: cfg.Duration, Level: 0}},
				Edges:   []signal.Edge{},
			}
		}
		out.ChannelA = flat()
		out.ChannelB = flat()
		out.Edges = []TaggedEdge{}
		return out, nil
	}

	out.ChannelA, err = s.gen.Square(r.frequency, r.phaseA)
	if err != nil {
		return Output{}, fmt.Errorf("channel A: %w", err)
	}
	out.ChannelB, err = s.gen.Square(r.frequency, r.phaseB)
	if err != nil {
		return Output{}, fmt.Errorf("channel B: %w", err)
	}
	out.Edges = MergeEdges(out.ChannelA.Edges, out.ChannelB.Edges)

	return out, nil
}

var defaultSynthesizer = NewSynthesizer()

// Synthesize runs d through a synthesizer with the default configuration.
func Synthesize(d Drive) (Output, error) {
	return defaultSynthesizer.Synthesize(d)
}
