package encoder

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/cwbudde/algo-encoder/dsp/core"
)

// Mode names the kind of Drive that produced an Output.
type Mode int

const (
	// ModePhase is a fixed-frequency drive with a configurable phase offset.
	ModePhase Mode = iota
	// ModeSpeed is a drive by signed rotation speed.
	ModeSpeed
)

// String returns "phase" or "speed".
func (m Mode) String() string {
	switch m {
	case ModePhase:
		return "phase"
	case ModeSpeed:
		return "speed"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// MarshalJSON encodes the mode as its string name.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// Direction is the rotation direction implied by a speed drive.
type Direction int

const (
	// DirectionNone is reported for phase drives, which carry no direction.
	DirectionNone Direction = iota
	// Forward rotation: channel B leads channel A by a quarter period.
	Forward
	// Reverse rotation: channel A leads channel B by a quarter period.
	Reverse
	// Stopped motor: no pulses at all.
	Stopped
)

// String returns the lower-case direction name.
func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "none"
	case Forward:
		return "forward"
	case Reverse:
		return "reverse"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// MarshalJSON encodes the direction as its string name.
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// resolved is the common tuple every Drive reduces to.
type resolved struct {
	mode      Mode
	input     float64
	frequency float64
	phaseA    float64
	phaseB    float64
	direction Direction
}

// Drive is the single control value of one synthesis. It is implemented
// by PhaseOffset and Speed only.
type Drive interface {
	resolve(cfg core.Config) (resolved, error)
}

// PhaseOffset drives both channels at the configured phase-drive frequency
// with channel B shifted by the given number of degrees. Values outside
// [0,180] are accepted and wrap modulo 360.
type PhaseOffset float64

func (p PhaseOffset) resolve(cfg core.Config) (resolved, error) {
	deg := float64(p)
	if !core.IsFinite(deg) {
		return resolved{}, fmt.Errorf("%w: phase offset %v", ErrInvalidDrive, deg)
	}
	return resolved{
		mode:      ModePhase,
		input:     deg,
		frequency: cfg.PhaseDriveFrequency,
		phaseA:    0,
		phaseB:    deg,
		direction: DirectionNone,
	}, nil
}

// Speed drives the encoder at a signed rotation speed in rotations per
// second. The pulse frequency is |speed| times the configured pulses per
// rotation; the sign selects which channel leads.
type Speed float64

func (s Speed) resolve(cfg core.Config) (resolved, error) {
	rps := float64(s)
	if !core.IsFinite(rps) {
		return resolved{}, fmt.Errorf("%w: speed %v", ErrInvalidDrive, rps)
	}

	r := resolved{
		mode:      ModeSpeed,
		input:     rps,
		frequency: math.Abs(rps) * cfg.PulsesPerRotation,
	}
	switch {
	case rps > 0:
		r.direction = Forward
		r.phaseA, r.phaseB = 0, 90
	case rps < 0:
		r.direction = Reverse
		r.phaseA, r.phaseB = 90, 0
	default:
		r.direction = Stopped
	}
	if !core.IsFinite(r.frequency) {
		return resolved{}, fmt.Errorf("%w: speed %v overflows pulse frequency", ErrInvalidDrive, rps)
	}
	return r, nil
}
