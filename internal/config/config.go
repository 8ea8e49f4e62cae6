// Package config loads the YAML configuration of the encsim tool and merges
// command-line overrides on top of it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-encoder/dsp/core"
	"github.com/cwbudde/algo-encoder/dsp/encoder"
	"github.com/cwbudde/algo-encoder/internal/logging"
)

// MaxSweepSpeeds bounds the number of speeds a sweep may synthesize.
const MaxSweepSpeeds = 10000

// ErrConflictingDrive reports that both a phase and a speed were requested.
var ErrConflictingDrive = errors.New("config: phase and speed are mutually exclusive")

// Drive modes accepted in drive.mode.
const (
	ModePhase = "phase"
	ModeSpeed = "speed"
)

// Output formats accepted in output.format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// Config is the top-level YAML configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Drive   DriveConfig   `yaml:"drive"`
	Output  OutputConfig  `yaml:"output"`
	Sweep   SweepConfig   `yaml:"sweep"`
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig mirrors core.Config.
type EngineConfig struct {
	Duration          float64 `yaml:"duration"`
	DutyCycle         float64 `yaml:"duty_cycle"`
	SamplesPerPeriod  int     `yaml:"samples_per_period"`
	PulsesPerRotation float64 `yaml:"pulses_per_rotation"`
	PhaseDriveHz      float64 `yaml:"phase_drive_hz"`
}

// DriveConfig selects the encoder control.
type DriveConfig struct {
	Mode  string  `yaml:"mode"` // "phase" or "speed"
	Phase float64 `yaml:"phase"`
	Speed float64 `yaml:"speed"`
}

// OutputConfig selects how results are written. Limit caps the printed
// edge rows; 0 prints all of them.
type OutputConfig struct {
	Format  string `yaml:"format"`
	Limit   int    `yaml:"limit"`
	HTML    string `yaml:"html,omitempty"`
	Analyze bool   `yaml:"analyze"`
}

// SweepConfig describes a range of speeds synthesized in one run.
type SweepConfig struct {
	Enabled bool    `yaml:"enabled"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Step    float64 `yaml:"step"`
	Workers int     `yaml:"workers"`
}

// LoggingConfig sets the slog level: debug, info, warn or error.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a fully-populated Config with defaults.
func DefaultConfig() Config {
	engine := core.DefaultConfig()
	return Config{
		Engine: EngineConfig{
			Duration:          engine.Duration,
			DutyCycle:         engine.DutyCycle,
			SamplesPerPeriod:  engine.SamplesPerPeriod,
			PulsesPerRotation: engine.PulsesPerRotation,
			PhaseDriveHz:      engine.PhaseDriveFrequency,
		},
		Drive: DriveConfig{
			Mode:  ModePhase,
			Phase: 90,
		},
		Output: OutputConfig{
			Format: FormatTable,
			Limit:  10,
		},
		Sweep: SweepConfig{
			Min:     -5,
			Max:     5,
			Step:    1,
			Workers: 4,
		},
		Logging: LoggingConfig{
			Level: string(logging.LevelInfo),
		},
	}
}

// LoadConfigFile reads and parses a YAML config file on top of the defaults.
// Unknown fields are rejected.
func LoadConfigFile(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path is empty")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML bytes on top of the defaults.
func Parse(b []byte) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config yaml: %w", err)
	}

	// Only whitespace and comments may follow the document.
	if err := dec.Decode(&yaml.Node{}); !errors.Is(err, io.EOF) {
		return Config{}, errors.New("decode config yaml: unexpected trailing document")
	}

	return cfg, nil
}

// FlagOverrides holds command-line values that replace config file values.
// A nil pointer means the flag was not set.
type FlagOverrides struct {
	Phase *float64
	Speed *float64

	Duration          *float64
	DutyCycle         *float64
	SamplesPerPeriod  *int
	PulsesPerRotation *float64

	Format  *string
	Limit   *int
	HTML    *string
	Analyze *bool

	Sweep        *bool
	SweepMin     *float64
	SweepMax     *float64
	SweepStep    *float64
	SweepWorkers *int

	LogLevel *string
}

// Apply merges the overrides into cfg. Setting Phase or Speed also
// switches the drive mode; setting both returns ErrConflictingDrive.
func (o FlagOverrides) Apply(cfg *Config) error {
	if cfg == nil {
		return nil
	}
	if o.Phase != nil && o.Speed != nil {
		return ErrConflictingDrive
	}

	if o.Phase != nil {
		cfg.Drive.Mode = ModePhase
		cfg.Drive.Phase = *o.Phase
	}
	if o.Speed != nil {
		cfg.Drive.Mode = ModeSpeed
		cfg.Drive.Speed = *o.Speed
	}

	if o.Duration != nil {
		cfg.Engine.Duration = *o.Duration
	}
	if o.DutyCycle != nil {
		cfg.Engine.DutyCycle = *o.DutyCycle
	}
	if o.SamplesPerPeriod != nil {
		cfg.Engine.SamplesPerPeriod = *o.SamplesPerPeriod
	}
	if o.PulsesPerRotation != nil {
		cfg.Engine.PulsesPerRotation = *o.PulsesPerRotation
	}

	if o.Format != nil {
		cfg.Output.Format = *o.Format
	}
	if o.Limit != nil {
		cfg.Output.Limit = *o.Limit
	}
	if o.HTML != nil {
		cfg.Output.HTML = *o.HTML
	}
	if o.Analyze != nil {
		cfg.Output.Analyze = *o.Analyze
	}

	if o.Sweep != nil {
		cfg.Sweep.Enabled = *o.Sweep
	}
	if o.SweepMin != nil {
		cfg.Sweep.Min = *o.SweepMin
	}
	if o.SweepMax != nil {
		cfg.Sweep.Max = *o.SweepMax
	}
	if o.SweepStep != nil {
		cfg.Sweep.Step = *o.SweepStep
	}
	if o.SweepWorkers != nil {
		cfg.Sweep.Workers = *o.SweepWorkers
	}

	if o.LogLevel != nil {
		cfg.Logging.Level = *o.LogLevel
	}
	return nil
}

// Validate checks config invariants. Call it after defaults, file and
// overrides are applied.
func (c *Config) Validate() error {
	e := c.Engine
	if !(e.Duration > 0) || math.IsInf(e.Duration, 0) {
		return errors.New("engine.duration must be > 0")
	}
	if !(e.DutyCycle > 0 && e.DutyCycle < 1) {
		return errors.New("engine.duty_cycle must be between 0 and 1 (exclusive)")
	}
	if e.SamplesPerPeriod <= 0 {
		return errors.New("engine.samples_per_period must be > 0")
	}
	if !(e.PulsesPerRotation > 0) || math.IsInf(e.PulsesPerRotation, 0) {
		return errors.New("engine.pulses_per_rotation must be > 0")
	}
	if !(e.PhaseDriveHz > 0) || math.IsInf(e.PhaseDriveHz, 0) {
		return errors.New("engine.phase_drive_hz must be > 0")
	}

	switch c.Drive.Mode {
	case ModePhase, ModeSpeed:
	default:
		return fmt.Errorf("drive.mode must be %q or %q", ModePhase, ModeSpeed)
	}

	switch c.Output.Format {
	case FormatTable, FormatJSON, FormatCSV:
	default:
		return fmt.Errorf("output.format must be %q, %q or %q", FormatTable, FormatJSON, FormatCSV)
	}
	if c.Output.Limit < 0 {
		return errors.New("output.limit must be >= 0")
	}

	if c.Sweep.Enabled {
		if c.Sweep.Min > c.Sweep.Max {
			return errors.New("sweep.min must be <= sweep.max")
		}
		if !(c.Sweep.Step > 0) {
			return errors.New("sweep.step must be > 0")
		}
		if n := sweepCount(c.Sweep); !(n <= MaxSweepSpeeds) {
			return fmt.Errorf("sweep.step yields %.0f speeds, at most %d allowed", n, MaxSweepSpeeds)
		}
		if c.Sweep.Workers <= 0 {
			return errors.New("sweep.workers must be > 0")
		}
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}

	return nil
}

// EngineOptions converts the engine section into synthesizer options.
func (c *Config) EngineOptions() []core.Option {
	return []core.Option{
		core.WithDuration(c.Engine.Duration),
		core.WithDutyCycle(c.Engine.DutyCycle),
		core.WithSamplesPerPeriod(c.Engine.SamplesPerPeriod),
		core.WithPulsesPerRotation(c.Engine.PulsesPerRotation),
		core.WithPhaseDriveFrequency(c.Engine.PhaseDriveHz),
	}
}

// EncoderDrive returns the drive selected by the drive section.
func (c *Config) EncoderDrive() encoder.Drive {
	if c.Drive.Mode == ModeSpeed {
		return encoder.Speed(c.Drive.Speed)
	}
	return encoder.PhaseOffset(c.Drive.Phase)
}

// SweepSpeeds lists the speeds from Min to Max in Step increments. The
// values are computed from the index so rounding does not accumulate.
// It returns nil for an empty range or one above MaxSweepSpeeds.
func (c *Config) SweepSpeeds() []float64 {
	s := c.Sweep
	if s.Min > s.Max || !(s.Step > 0) {
		return nil
	}
	n := sweepCount(s)
	if !(n <= MaxSweepSpeeds) {
		return nil
	}
	speeds := make([]float64, int(n))
	for i := range speeds {
		speeds[i] = s.Min + float64(i)*s.Step
	}
	return speeds
}

func sweepCount(s SweepConfig) float64 {
	return math.Floor((s.Max-s.Min)/s.Step+1e-9) + 1
}
