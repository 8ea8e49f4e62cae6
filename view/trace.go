package view

import (
	"github.com/cwbudde/algo-encoder/dsp/encoder"
)

const (
	// ChannelAOffset lifts channel A above channel B so both fit one plot.
	ChannelAOffset = 2

	// VisibleCycles is the number of pulse periods shown initially.
	VisibleCycles = 5
)

// Trace is one channel drawn as a step line.
type Trace struct {
	Name    string
	Channel encoder.Channel
	Times   []float64
	Levels  []float64
}

// Traces returns the step traces of both channels, A first.
func Traces(out encoder.Output) []Trace {
	a := Trace{
		Name:    "Channel A",
		Channel: encoder.ChannelA,
		Times:   out.ChannelA.Times(),
		Levels:  out.ChannelA.Levels(),
	}
	for i := range a.Levels {
		a.Levels[i] += ChannelAOffset
	}

	b := Trace{
		Name:    "Channel B",
		Channel: encoder.ChannelB,
		Times:   out.ChannelB.Times(),
		Levels:  out.ChannelB.Levels(),
	}

	return []Trace{a, b}
}

// VisibleWindow returns the time span of VisibleCycles pulse periods, or 0
// when the encoder is stopped.
func VisibleWindow(out encoder.Output) float64 {
	return VisibleCycles * out.Period()
}

// DirectionLabel returns the display label of d.
func DirectionLabel(d encoder.Direction) string {
	switch d {
	case encoder.Forward:
		return "→ Forward"
	case encoder.Reverse:
		return "← Reverse"
	case encoder.Stopped:
		return "⊗ Stopped"
	default:
		return ""
	}
}
