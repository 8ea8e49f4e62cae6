package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-encoder/dsp/encoder"
	"github.com/cwbudde/algo-encoder/measure/quadrature"
	"github.com/cwbudde/algo-encoder/view"
)

func writeTable(w io.Writer, out encoder.Output, limit int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Mode\t%s\n", out.Mode)
	fmt.Fprintf(tw, "Input\t%g\n", out.Input)
	fmt.Fprintf(tw, "Frequency\t%.2f Hz\n", out.Frequency)
	if label := view.DirectionLabel(out.Direction); label != "" {
		fmt.Fprintf(tw, "Direction\t%s\n", label)
	}
	fmt.Fprintf(tw, "Phases\tA %.0f°, B %.0f°\n", out.PhaseA, out.PhaseB)
	fmt.Fprintf(tw, "Edges\t%d\n", len(out.Edges))
	fmt.Fprintln(tw)

	edges := out.Edges
	if limit > 0 && limit < len(edges) {
		edges = edges[:limit]
	}
	fmt.Fprintf(tw, "#\tTime\tChannel\tType\tDelta\n")
	fmt.Fprintf(tw, "-\t----\t-------\t----\t-----\n")
	for i, e := range edges {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			i+1,
			encoder.FormatTime(e.Time),
			e.Channel,
			e.Kind,
			encoder.FormatTimeDelta(e.Delta),
		)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, out encoder.Output) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeCSV(w io.Writer, out encoder.Output) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "time_s", "channel", "type", "level", "delta_s"}); err != nil {
		return err
	}
	for i, e := range out.Edges {
		delta := ""
		if e.Delta != nil {
			delta = formatFloat(*e.Delta)
		}
		record := []string{
			strconv.Itoa(i + 1),
			formatFloat(e.Time),
			e.Channel.String(),
			e.Kind.String(),
			strconv.Itoa(e.Level),
			delta,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeAnalysis(w io.Writer, res quadrature.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Measurement\tA\tB\n")
	fmt.Fprintf(tw, "-----------\t-\t-\n")
	fmt.Fprintf(tw, "Rising edges\t%d\t%d\n", res.A.Rising, res.B.Rising)
	fmt.Fprintf(tw, "Falling edges\t%d\t%d\n", res.A.Falling, res.B.Falling)
	fmt.Fprintf(tw, "Edge frequency\t%.2f Hz\t%.2f Hz\n", res.A.EdgeFrequency, res.B.EdgeFrequency)
	fmt.Fprintf(tw, "Spectral peak\t%.2f Hz\t%.2f Hz\n", res.A.SpectralFrequency, res.B.SpectralFrequency)
	fmt.Fprintf(tw, "Fundamental\t%.4f\t%.4f\n", res.A.ToneAmplitude, res.B.ToneAmplitude)
	fmt.Fprintf(tw, "Duty cycle\t%.4f\t%.4f\n", res.A.DutyCycle, res.B.DutyCycle)
	fmt.Fprintf(tw, "Period jitter\t%s\t%s\n", encoder.FormatTime(res.A.Period.Jitter), encoder.FormatTime(res.B.Period.Jitter))
	fmt.Fprintln(tw)

	phase := "N/A"
	if res.HasPhase {
		phase = fmt.Sprintf("%.2f°", res.PhaseB)
	}
	fmt.Fprintf(tw, "Phase B vs A\t%s\n", phase)
	fmt.Fprintf(tw, "Count\t%d\n", res.Count)
	fmt.Fprintf(tw, "Decode errors\t%d\n", res.Errors)
	fmt.Fprintf(tw, "Coincident edges\t%d\n", res.Coincident)
	fmt.Fprintf(tw, "Direction\t%s\n", res.Direction)
	fmt.Fprintf(tw, "Rotations\t%.4f\n", res.Rotations)
	fmt.Fprintf(tw, "Speed\t%.4f rot/s\n", res.Speed)
	fmt.Fprintf(tw, "Delta mean\t%s\n", encoder.FormatTime(res.Deltas.Mean))
	fmt.Fprintf(tw, "Delta min/max\t%s / %s\n", encoder.FormatTime(res.Deltas.Min), encoder.FormatTime(res.Deltas.Max))

	return tw.Flush()
}
