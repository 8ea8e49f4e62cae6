// Package spectrum estimates the frequency content of sampled encoder
// channels.
//
// Analyze runs a windowed, zero-padded FFT over a channel's levels and
// reports magnitudes per bin together with the dominant frequency. For a
// single expected frequency, ToneAmplitude evaluates one DFT bin with the
// Goertzel recurrence instead of a full transform.
package spectrum
