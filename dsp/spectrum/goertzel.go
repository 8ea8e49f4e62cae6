package spectrum

import (
	"fmt"
	"math"
)

// ToneAmplitude returns the peak amplitude of the frequency component at
// frequency Hz in input, evaluated as a single DFT term with the Goertzel
// recurrence. The result is normalised so that a sine of amplitude a,
// spanning a whole number of cycles, yields a.
func ToneAmplitude(input []float64, frequency, sampleRate float64) (float64, error) {
	if len(input) == 0 {
		return 0, errTooShort
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, fmt.Errorf("goertzel: sample rate must be > 0: %v", sampleRate)
	}
	if frequency < 0 || frequency > sampleRate/2 || math.IsNaN(frequency) {
		return 0, fmt.Errorf("goertzel: frequency must be between 0 and sampleRate/2: %v", frequency)
	}

	coeff := 2 * math.Cos(2*math.Pi*frequency/sampleRate)
	var s0, s1 float64
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	power := s0*s0 + s1*s1 - coeff*s0*s1
	if power <= 0 {
		return 0, nil
	}

	return 2 * math.Sqrt(power) / float64(len(input)), nil
}
