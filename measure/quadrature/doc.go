// Package quadrature measures synthesized encoder outputs the way a
// receiver would see them.
//
// Analyze recovers each channel's pulse frequency (from edge spacing and
// from the spectrum), its duty cycle and the phase offset between the
// channels, and runs a quadrature decoder over the merged edges to count
// signed position steps. From the count it infers the rotation direction
// and speed, closing the loop with the drive that produced the output.
package quadrature
