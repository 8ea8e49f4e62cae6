// Package webdemo holds the stateful engine behind the browser demo. The
// wasm entry point forwards slider changes here and reads back JSON.
package webdemo

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/cwbudde/algo-encoder/dsp/core"
	"github.com/cwbudde/algo-encoder/dsp/encoder"
	"github.com/cwbudde/algo-encoder/measure/quadrature"
	"github.com/cwbudde/algo-encoder/view"
)

// Slider ranges of the demo controls.
const (
	minPhase = 0
	maxPhase = 180
	minSpeed = -7
	maxSpeed = 7
)

// Summary is the headline information shown next to the charts.
type Summary struct {
	Mode      string  `json:"mode"`
	Input     float64 `json:"input"`
	Frequency float64 `json:"frequency"`
	Direction string  `json:"direction"`
	Label     string  `json:"label"`
	Subtitle  string  `json:"subtitle"`
	Edges     int     `json:"edges"`

	MeasuredPhase float64 `json:"measuredPhase"`
	MeasuredSpeed float64 `json:"measuredSpeed"`
	DutyCycle     float64 `json:"dutyCycle"`
	Count         int     `json:"count"`
}

// Engine keeps the current control and serves its output.
type Engine struct {
	mu    sync.Mutex
	cache *view.Cache
	calc  *quadrature.Calculator
	drive encoder.Drive
}

// NewEngine creates an engine showing a 90 degree phase offset.
func NewEngine(opts ...core.Option) *Engine {
	synth := encoder.NewSynthesizer(opts...)
	return &Engine{
		cache: view.NewCache(synth),
		calc: quadrature.NewCalculator(quadrature.Config{
			PulsesPerRotation: synth.Config().PulsesPerRotation,
			SkipSpectrum:      true,
		}),
		drive: encoder.PhaseOffset(90),
	}
}

// SetPhase switches to phase mode. deg is clamped to the slider range.
func (e *Engine) SetPhase(deg float64) {
	e.setDrive(encoder.PhaseOffset(core.Clamp(deg, minPhase, maxPhase)))
}

// SetSpeed switches to speed mode. rps is clamped to the slider range.
func (e *Engine) SetSpeed(rps float64) {
	e.setDrive(encoder.Speed(core.Clamp(rps, minSpeed, maxSpeed)))
}

func (e *Engine) setDrive(d encoder.Drive) {
	e.mu.Lock()
	e.drive = d
	e.mu.Unlock()
}

// Drive returns the current control.
func (e *Engine) Drive() encoder.Drive {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.drive
}

// Output returns the output of the current control.
func (e *Engine) Output() (encoder.Output, error) {
	return e.cache.Get(e.Drive())
}

// OutputJSON returns the output of the current control as JSON.
func (e *Engine) OutputJSON() ([]byte, error) {
	out, err := e.Output()
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal output: %w", err)
	}
	return b, nil
}

// EdgeTable returns the leading rows of the merged edge table.
func (e *Engine) EdgeTable() ([]view.Row, error) {
	out, err := e.Output()
	if err != nil {
		return nil, err
	}
	return view.EdgeTable(out), nil
}

// Summary describes the current output and what a decoder measures from it.
func (e *Engine) Summary() (Summary, error) {
	out, err := e.Output()
	if err != nil {
		return Summary{}, err
	}
	res, err := e.calc.Analyze(out)
	if err != nil {
		return Summary{}, fmt.Errorf("analyze output: %w", err)
	}

	return Summary{
		Mode:          out.Mode.String(),
		Input:         out.Input,
		Frequency:     out.Frequency,
		Direction:     out.Direction.String(),
		Label:         view.DirectionLabel(out.Direction),
		Subtitle:      view.Subtitle(out),
		Edges:         len(out.Edges),
		MeasuredPhase: res.PhaseB,
		MeasuredSpeed: res.Speed,
		DutyCycle:     res.A.DutyCycle,
		Count:         res.Count,
	}, nil
}
