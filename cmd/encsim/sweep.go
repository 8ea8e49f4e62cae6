package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-encoder/dsp/encoder"
	"github.com/cwbudde/algo-encoder/measure/quadrature"
)

type sweepRow struct {
	Speed     float64
	Frequency float64
	Direction encoder.Direction
	Edges     int
	Count     int
	Errors    int
	Measured  float64
}

// runSweep synthesizes and measures every speed with at most workers
// concurrent jobs. Rows are returned in the order of speeds.
func runSweep(ctx context.Context, log *slog.Logger, synth *encoder.Synthesizer, speeds []float64, workers int, ppr float64) ([]sweepRow, error) {
	calc := quadrature.NewCalculator(quadrature.Config{PulsesPerRotation: ppr, SkipSpectrum: true})
	rows := make([]sweepRow, len(speeds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, speed := range speeds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := synthesize(log, synth, encoder.Speed(speed))
			if err != nil {
				return fmt.Errorf("speed %g: %w", speed, err)
			}
			res, err := calc.Analyze(out)
			if err != nil {
				return fmt.Errorf("speed %g: %w", speed, err)
			}
			rows[i] = sweepRow{
				Speed:     speed,
				Frequency: out.Frequency,
				Direction: out.Direction,
				Edges:     len(out.Edges),
				Count:     res.Count,
				Errors:    res.Errors,
				Measured:  res.Speed,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info("sweep finished", "speeds", len(speeds), "workers", workers)
	return rows, nil
}

func writeSweep(w io.Writer, rows []sweepRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Speed [rot/s]\tFrequency [Hz]\tDirection\tEdges\tCount\tErrors\tMeasured [rot/s]\n")
	fmt.Fprintf(tw, "-------------\t--------------\t---------\t-----\t-----\t------\t----------------\n")
	for _, r := range rows {
		fmt.Fprintf(tw, "%.2f\t%.1f\t%s\t%d\t%d\t%d\t%.4f\n",
			r.Speed, r.Frequency, r.Direction, r.Edges, r.Count, r.Errors, r.Measured)
	}
	return tw.Flush()
}
