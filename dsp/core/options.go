package core

// Config defines the shared synthesis settings of the encoder engine.
type Config struct {
	// Duration is the simulated window in seconds.
	Duration float64
	// DutyCycle is the fraction of each period a channel spends high.
	DutyCycle float64
	// SamplesPerPeriod sets the time resolution of each generated channel.
	SamplesPerPeriod int
	// PulsesPerRotation converts rotation speed into pulse frequency.
	PulsesPerRotation float64
	// PhaseDriveFrequency is the fixed pulse frequency used when the
	// engine is driven by a phase offset instead of a speed.
	PhaseDriveFrequency float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the settings of a LEGO NXT class motor encoder:
// 180 pulses per rotation, ~45% duty cycle, 100 ms of signal and a phase
// drive running at 10 rotations per second.
func DefaultConfig() Config {
	return Config{
		Duration:            0.1,
		DutyCycle:           0.45,
		SamplesPerPeriod:    20,
		PulsesPerRotation:   180,
		PhaseDriveFrequency: 1800,
	}
}

// WithDuration sets the simulated window in seconds.
func WithDuration(seconds float64) Option {
	return func(cfg *Config) {
		if seconds > 0 && IsFinite(seconds) {
			cfg.Duration = seconds
		}
	}
}

// WithDutyCycle sets the high fraction of each period. Values outside
// (0,1) are ignored.
func WithDutyCycle(duty float64) Option {
	return func(cfg *Config) {
		if duty > 0 && duty < 1 {
			cfg.DutyCycle = duty
		}
	}
}

// WithSamplesPerPeriod sets the number of samples generated per period.
func WithSamplesPerPeriod(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.SamplesPerPeriod = n
		}
	}
}

// WithPulsesPerRotation sets the encoder resolution.
func WithPulsesPerRotation(ppr float64) Option {
	return func(cfg *Config) {
		if ppr > 0 && IsFinite(ppr) {
			cfg.PulsesPerRotation = ppr
		}
	}
}

// WithPhaseDriveFrequency sets the pulse frequency used for phase-offset drives.
func WithPhaseDriveFrequency(hz float64) Option {
	return func(cfg *Config) {
		if hz > 0 && IsFinite(hz) {
			cfg.PhaseDriveFrequency = hz
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
