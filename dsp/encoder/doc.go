// Package encoder synthesizes the two-channel output of a quadrature
// encoder.
//
// A Drive (a fixed phase offset between the channels, or a signed rotation
// speed) resolves to a pulse frequency, per-channel phase offsets and a
// rotation direction. Both channels are generated with the square wave
// generator from package signal, then their edges are merged into one
// globally time-ordered sequence where each edge carries the time elapsed
// since the previous edge of either channel.
//
// Synthesis is pure: it reads only its input and configuration, allocates
// a fresh Output and is safe for concurrent use.
package encoder
