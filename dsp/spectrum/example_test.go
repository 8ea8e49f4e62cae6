package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-encoder/dsp/signal"
	"github.com/cwbudde/algo-encoder/dsp/spectrum"
)

func ExampleAnalyze() {
	w, err := signal.Generate(0.1, 1800, 0.45, 0, 20)
	if err != nil {
		panic(err)
	}
	s, err := spectrum.Analyze(w.Levels(), w.SampleRate())
	if err != nil {
		panic(err)
	}
	freq, _ := s.Peak()

	fmt.Printf("fft=%d peak=%.0f Hz\n", s.FFTSize, freq)

	// Output:
	// fft=4096 peak=1800 Hz
}
