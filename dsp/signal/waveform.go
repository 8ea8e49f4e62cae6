package signal

// Waveform is one channel's sampled signal together with its edges.
// Edges is always derivable from Samples via DetectEdges.
type Waveform struct {
	Samples []Sample `json:"samples"`
	Edges   []Edge   `json:"edges"`
}

// Times returns the sample times.
func (w Waveform) Times() []float64 {
	out := make([]float64, len(w.Samples))
	for i, s := range w.Samples {
		out[i] = s.Time
	}
	return out
}

// Levels returns the sample levels as float64 values for spectral analysis.
func (w Waveform) Levels() []float64 {
	out := make([]float64, len(w.Samples))
	for i, s := range w.Samples {
		out[i] = float64(s.Level)
	}
	return out
}

// SampleInterval returns the spacing between consecutive samples, or 0
// when the waveform holds fewer than two samples.
func (w Waveform) SampleInterval() float64 {
	if len(w.Samples) < 2 {
		return 0
	}
	return w.Samples[1].Time - w.Samples[0].Time
}

// SampleRate returns the reciprocal of SampleInterval, or 0 when undefined.
func (w Waveform) SampleRate() float64 {
	dt := w.SampleInterval()
	if dt <= 0 {
		return 0
	}
	return 1 / dt
}
