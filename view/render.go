package view

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/cwbudde/algo-encoder/dsp/encoder"
)

const chartTitle = "Quadrature Encoder Signals"

// RenderHTML writes a page holding the waveform chart and the delta bar
// chart of out.
func RenderHTML(w io.Writer, out encoder.Output) error {
	page := components.NewPage()
	page.AddCharts(waveformChart(out), deltaChart(out))
	if err := page.Render(w); err != nil {
		return fmt.Errorf("view: render page: %w", err)
	}
	return nil
}

// Subtitle describes the drive behind out.
func Subtitle(out encoder.Output) string {
	switch out.Mode {
	case encoder.ModeSpeed:
		s := fmt.Sprintf("speed %.1f rot/s, %.0f Hz", out.Input, out.Frequency)
		if label := DirectionLabel(out.Direction); label != "" {
			s += ", " + label
		}
		return s
	default:
		return fmt.Sprintf("phase offset %.0f°, %.0f Hz", out.Input, out.Frequency)
	}
}

func waveformChart(out encoder.Output) *charts.Line {
	traces := Traces(out)
	window := VisibleWindow(out)

	// Both channels share one time grid.
	n := len(traces[0].Times)
	if window > 0 {
		n = 0
		for _, t := range traces[0].Times {
			if t > window {
				break
			}
			n++
		}
	}

	labels := make([]string, n)
	for i, t := range traces[0].Times[:n] {
		labels[i] = fmt.Sprintf("%.1f", t*1e6)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: chartTitle, Subtitle: Subtitle(out)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time (μs)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Signal Level"}),
	)
	line.SetXAxis(labels)
	for _, tr := range traces {
		n := min(n, len(tr.Levels))
		data := make([]opts.LineData, n)
		for i, v := range tr.Levels[:n] {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(tr.Name, data)
	}
	return line
}

func deltaChart(out encoder.Output) *charts.Bar {
	series := DeltaBars(out)
	total := 0
	for _, s := range series {
		total += len(s.Indices)
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Time Deltas Between Consecutive Edges"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Edge Number"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Delta (μs)"}),
	)
	bar.SetXAxis(indexLabels(total))
	for _, s := range series {
		// "-" leaves a gap where the other channel owns the bar.
		data := make([]opts.BarData, total)
		for i := range data {
			data[i] = opts.BarData{Value: "-"}
		}
		for i, idx := range s.Indices {
			data[idx-1] = opts.BarData{Value: s.Micros[i]}
		}
		bar.AddSeries("Channel "+s.Channel.String(), data)
	}
	return bar
}
