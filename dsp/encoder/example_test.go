package encoder_test

import (
	"fmt"

	"github.com/cwbudde/algo-encoder/dsp/encoder"
)

func ExampleSynthesize() {
	out, err := encoder.Synthesize(encoder.Speed(-2.5))
	if err != nil {
		panic(err)
	}

	fmt.Printf("%s %.0f Hz\n", out.Direction, out.Frequency)
	for _, e := range out.Edges[:3] {
		fmt.Printf("%s %-7s %s\n", e.Channel, e.Kind, encoder.FormatTimeDelta(e.Delta))
	}

	// Output:
	// reverse 450 Hz
	// A falling N/A
	// B falling 555.56 μs
	// A rising  666.67 μs
}
