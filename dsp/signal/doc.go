// Package signal synthesizes time-sampled square waves and detects their
// transition edges.
//
// A waveform is produced as an ordered list of (time, level) samples with
// levels in {0,1}, together with the rising and falling edges implied by
// adjacent samples. Generation is deterministic: identical inputs yield
// bit-for-bit identical waveforms.
package signal
