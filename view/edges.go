package view

import (
	"strconv"

	"github.com/cwbudde/algo-encoder/dsp/encoder"
	"github.com/cwbudde/algo-encoder/dsp/signal"
	"github.com/cwbudde/algo-vecmath"
)

const (
	// MaxArrows caps the delta arrows drawn over the waveform.
	MaxArrows = 40
	// MaxBars caps the edges shown in the delta bar chart.
	MaxBars = 50
	// TableRows is the number of rows in the edge table.
	TableRows = 10
)

// Vertical placement of arrows and labels above A and below B.
const (
	arrowYA = 3.3
	arrowYB = -0.3
	labelYA = 3.6
	labelYB = -0.6
)

// Marker is a vertical line at an edge.
type Marker struct {
	Time    float64
	Channel encoder.Channel
	Kind    signal.EdgeKind
}

// Arrow spans the gap between an edge and the edge before it.
type Arrow struct {
	From    float64
	To      float64
	Y       float64
	Channel encoder.Channel
	Label   string
	LabelX  float64
	LabelY  float64
}

// BarSeries holds the deltas of one channel in microseconds. Indices are
// 1-based positions among the edges that have a delta.
type BarSeries struct {
	Channel encoder.Channel
	Indices []int
	Micros  []float64
}

// Row is one line of the edge table.
type Row struct {
	Index   int    `json:"index"`
	Time    string `json:"time"`
	Channel string `json:"channel"`
	Kind    string `json:"type"`
	Delta   string `json:"delta"`
}

// markerSpan is the horizontal range that receives markers and arrows.
func markerSpan(out encoder.Output) float64 {
	return 2 * VisibleWindow(out)
}

// EdgeMarkers returns a marker for every merged edge inside twice the
// visible window.
func EdgeMarkers(out encoder.Output) []Marker {
	span := markerSpan(out)
	markers := make([]Marker, 0, len(out.Edges))
	for _, e := range out.Edges {
		if e.Time > span {
			break
		}
		markers = append(markers, Marker{Time: e.Time, Channel: e.Channel, Kind: e.Kind})
	}
	return markers
}

// DeltaArrows returns up to MaxArrows arrows for edges inside twice the
// visible window. Each arrow starts at Time-Delta, the preceding merged edge.
func DeltaArrows(out encoder.Output) []Arrow {
	span := markerSpan(out)
	arrows := make([]Arrow, 0, MaxArrows)
	for _, e := range out.Edges {
		if len(arrows) == MaxArrows || e.Time > span {
			break
		}
		if e.Delta == nil {
			continue
		}

		from := e.Time - *e.Delta
		y, ly := arrowYB, labelYB
		if e.Channel == encoder.ChannelA {
			y, ly = arrowYA, labelYA
		}
		arrows = append(arrows, Arrow{
			From:    from,
			To:      e.Time,
			Y:       y,
			Channel: e.Channel,
			Label:   encoder.FormatTimeDelta(e.Delta),
			LabelX:  (from + e.Time) / 2,
			LabelY:  ly,
		})
	}
	return arrows
}

// DeltaBars splits the first MaxBars deltas by channel, A first.
func DeltaBars(out encoder.Output) []BarSeries {
	deltas := make([]float64, 0, MaxBars)
	channels := make([]encoder.Channel, 0, MaxBars)
	for _, e := range out.Edges {
		if len(deltas) == MaxBars {
			break
		}
		if e.Delta != nil {
			deltas = append(deltas, *e.Delta)
			channels = append(channels, e.Channel)
		}
	}

	micros := make([]float64, len(deltas))
	vecmath.ScaleBlock(micros, deltas, 1e6)

	series := []BarSeries{{Channel: encoder.ChannelA}, {Channel: encoder.ChannelB}}
	for i, ch := range channels {
		s := &series[ch]
		s.Indices = append(s.Indices, i+1)
		s.Micros = append(s.Micros, micros[i])
	}
	return series
}

// EdgeTable returns the first TableRows merged edges as display rows.
func EdgeTable(out encoder.Output) []Row {
	n := min(len(out.Edges), TableRows)
	rows := make([]Row, n)
	for i, e := range out.Edges[:n] {
		rows[i] = Row{
			Index:   i + 1,
			Time:    encoder.FormatTime(e.Time),
			Channel: e.Channel.String(),
			Kind:    kindLabel(e.Kind),
			Delta:   encoder.FormatTimeDelta(e.Delta),
		}
	}
	return rows
}

func kindLabel(k signal.EdgeKind) string {
	if k == signal.Rising {
		return "↑ Rising"
	}
	return "↓ Falling"
}

func indexLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = strconv.Itoa(i + 1)
	}
	return labels
}
