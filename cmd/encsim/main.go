// Command encsim synthesizes quadrature encoder signals and prints the
// merged edge sequence.
//
// Usage:
//
//	encsim [flags]
//
// Without flags it prints the first edges of a 90 degree phase offset.
//
// Examples:
//
//	encsim -phase 45
//	encsim -speed -2.5 -limit 20
//	encsim -speed 3 -format csv > edges.csv
//	encsim -speed 3 -analyze
//	encsim -speed 1 -html encoder.html
//	encsim -sweep -sweep-min -7 -sweep-max 7 -sweep-step 0.5
//	encsim -config encsim.yaml -log-level debug
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	ossignal "os/signal"
	"time"

	"github.com/cwbudde/algo-encoder/dsp/encoder"
	"github.com/cwbudde/algo-encoder/dsp/window"
	"github.com/cwbudde/algo-encoder/internal/config"
	"github.com/cwbudde/algo-encoder/internal/logging"
	"github.com/cwbudde/algo-encoder/measure/quadrature"
	"github.com/cwbudde/algo-encoder/view"
)

func main() {
	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			logging.New(os.Stderr, logging.LevelError).Error("encsim failed", "err", err)
		}
		stop()
		os.Exit(1)
	}
}

type options struct {
	cfg        config.Config
	windowType window.Type
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("encsim", flag.ContinueOnError)
	fs.SetOutput(stderr)

	def := config.DefaultConfig()
	configPath := fs.String("config", "", "YAML config file")
	phase := fs.Float64("phase", def.Drive.Phase, "phase offset of channel B in degrees")
	speed := fs.Float64("speed", def.Drive.Speed, "signed rotation speed in rotations per second")
	duration := fs.Float64("duration", def.Engine.Duration, "simulated window in seconds")
	duty := fs.Float64("duty", def.Engine.DutyCycle, "duty cycle of both channels")
	spp := fs.Int("spp", def.Engine.SamplesPerPeriod, "samples per pulse period")
	ppr := fs.Float64("ppr", def.Engine.PulsesPerRotation, "encoder pulses per rotation")
	format := fs.String("format", def.Output.Format, "output format: table, json or csv")
	limit := fs.Int("limit", def.Output.Limit, "edge rows in table output (0 prints all)")
	html := fs.String("html", "", "also render the charts to this HTML file")
	analyze := fs.Bool("analyze", false, "print the quadrature measurement")
	windowName := fs.String("window", window.TypeHann.String(), "window applied before the spectrum estimate")
	sweep := fs.Bool("sweep", false, "synthesize a range of speeds")
	sweepMin := fs.Float64("sweep-min", def.Sweep.Min, "lowest sweep speed")
	sweepMax := fs.Float64("sweep-max", def.Sweep.Max, "highest sweep speed")
	sweepStep := fs.Float64("sweep-step", def.Sweep.Step, "sweep speed increment")
	workers := fs.Int("workers", def.Sweep.Workers, "concurrent syntheses during a sweep")
	logLevel := fs.String("log-level", def.Logging.Level, "log level: error, warn, info or debug")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: encsim [flags]\n\n")
		fmt.Fprintf(stderr, "Synthesizes quadrature encoder signals and prints their edges.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  encsim -phase 45\n")
		fmt.Fprintf(stderr, "  encsim -speed -2.5 -analyze\n")
		fmt.Fprintf(stderr, "  encsim -sweep -sweep-min -7 -sweep-max 7\n")
	}

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := def
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadConfigFile(*configPath); err != nil {
			return options{}, err
		}
	}

	// Only flags given on the command line override the file.
	var o config.FlagOverrides
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "phase":
			o.Phase = phase
		case "speed":
			o.Speed = speed
		case "duration":
			o.Duration = duration
		case "duty":
			o.DutyCycle = duty
		case "spp":
			o.SamplesPerPeriod = spp
		case "ppr":
			o.PulsesPerRotation = ppr
		case "format":
			o.Format = format
		case "limit":
			o.Limit = limit
		case "html":
			o.HTML = html
		case "analyze":
			o.Analyze = analyze
		case "sweep":
			o.Sweep = sweep
		case "sweep-min":
			o.SweepMin = sweepMin
		case "sweep-max":
			o.SweepMax = sweepMax
		case "sweep-step":
			o.SweepStep = sweepStep
		case "workers":
			o.SweepWorkers = workers
		case "log-level":
			o.LogLevel = logLevel
		}
	})
	if err := o.Apply(&cfg); err != nil {
		return options{}, err
	}
	if err := cfg.Validate(); err != nil {
		return options{}, fmt.Errorf("invalid config: %w", err)
	}

	wt, err := window.ParseType(*windowName)
	if err != nil {
		return options{}, err
	}

	return options{cfg: cfg, windowType: wt}, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg := opts.cfg

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	log := logging.New(stderr, level)
	log.Debug("resolved config",
		"mode", cfg.Drive.Mode,
		"phase", cfg.Drive.Phase,
		"speed", cfg.Drive.Speed,
		"duration", cfg.Engine.Duration,
		"duty", cfg.Engine.DutyCycle,
		"spp", cfg.Engine.SamplesPerPeriod,
		"ppr", cfg.Engine.PulsesPerRotation,
		"format", cfg.Output.Format,
	)

	synth := encoder.NewSynthesizer(cfg.EngineOptions()...)
	calc := quadrature.NewCalculator(quadrature.Config{
		PulsesPerRotation: cfg.Engine.PulsesPerRotation,
		WindowType:        opts.windowType,
		HasWindow:         true,
	})

	if cfg.Sweep.Enabled {
		rows, err := runSweep(ctx, log, synth, cfg.SweepSpeeds(), cfg.Sweep.Workers, cfg.Engine.PulsesPerRotation)
		if err != nil {
			return err
		}
		return writeSweep(stdout, rows)
	}

	out, err := synthesize(log, synth, cfg.EncoderDrive())
	if err != nil {
		return err
	}

	switch cfg.Output.Format {
	case config.FormatJSON:
		err = writeJSON(stdout, out)
	case config.FormatCSV:
		err = writeCSV(stdout, out)
	default:
		err = writeTable(stdout, out, cfg.Output.Limit)
	}
	if err != nil {
		return fmt.Errorf("write %s output: %w", cfg.Output.Format, err)
	}

	if cfg.Output.Analyze {
		res, err := calc.Analyze(out)
		if err != nil {
			return err
		}
		if err := writeAnalysis(stdout, res); err != nil {
			return fmt.Errorf("write analysis: %w", err)
		}
	}

	if cfg.Output.HTML != "" {
		if err := renderFile(cfg.Output.HTML, out); err != nil {
			return err
		}
		log.Info("rendered charts", "file", cfg.Output.HTML)
	}

	return nil
}

func synthesize(log *slog.Logger, synth *encoder.Synthesizer, d encoder.Drive) (encoder.Output, error) {
	start := time.Now()
	out, err := synth.Synthesize(d)
	if err != nil {
		return encoder.Output{}, fmt.Errorf("synthesize: %w", err)
	}
	log.Debug("synthesized",
		"mode", out.Mode,
		"input", out.Input,
		"frequency", out.Frequency,
		"edges", len(out.Edges),
		"elapsed", time.Since(start),
	)
	return out, nil
}

func renderFile(path string, out encoder.Output) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create html file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close html file: %w", cerr)
		}
	}()
	return view.RenderHTML(f, out)
}
