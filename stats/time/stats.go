// Package time computes timing statistics over encoder edges and sampled
// square waves.
package time

import (
	"math"

	"github.com/cwbudde/algo-encoder/dsp/signal"
)

// Stats summarises a sequence of time intervals in seconds.
type Stats struct {
	Count    int
	Mean     float64
	Variance float64 // population variance
	StdDev   float64
	Min      float64
	MinPos   int
	Max      float64
	MaxPos   int
	Jitter   float64 // max - min
}

// Calculate computes interval statistics in a single pass using Welford's
// online algorithm for the mean and variance.
func Calculate(intervals []float64) Stats {
	n := len(intervals)
	if n == 0 {
		return Stats{}
	}

	var (
		mean   float64
		m2     float64
		maxVal = intervals[0]
		maxPos int
		minVal = intervals[0]
		minPos int
	)

	for i, x := range intervals {
		ni := float64(i + 1)
		delta := x - mean
		mean += delta / ni
		m2 += delta * (x - mean)

		if x > maxVal {
			maxVal = x
			maxPos = i
		}

		if x < minVal {
			minVal = x
			minPos = i
		}
	}

	variance := m2 / float64(n)

	return Stats{
		Count:    n,
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Min:      minVal,
		MinPos:   minPos,
		Max:      maxVal,
		MaxPos:   maxPos,
		Jitter:   maxVal - minVal,
	}
}

// EdgeCounts returns the number of rising and falling edges.
func EdgeCounts(edges []signal.Edge) (rising, falling int) {
	for _, e := range edges {
		if e.Kind == signal.Rising {
			rising++
		} else {
			falling++
		}
	}

	return rising, falling
}

// Periods returns the intervals between consecutive edges of the given kind.
func Periods(edges []signal.Edge, kind signal.EdgeKind) []float64 {
	var out []float64
	last := math.NaN()
	for _, e := range edges {
		if e.Kind != kind {
			continue
		}
		if !math.IsNaN(last) {
			out = append(out, e.Time-last)
		}
		last = e.Time
	}

	return out
}

// HighRatio returns the fraction of time the waveform spends high, each
// sample holding its level until the next sample. A single sample reports
// its own level; an empty input reports 0.
func HighRatio(samples []signal.Sample) float64 {
	switch len(samples) {
	case 0:
		return 0
	case 1:
		return float64(samples[0].Level)
	}

	span := samples[len(samples)-1].Time - samples[0].Time
	if span <= 0 {
		return 0
	}

	// Kahan summation keeps thousands of tiny intervals exact enough.
	var high, c float64
	for i := 0; i < len(samples)-1; i++ {
		if samples[i].Level == 0 {
			continue
		}
		y := (samples[i+1].Time - samples[i].Time) - c
		t := high + y
		c = (t - high) - y
		high = t
	}

	return high / span
}
