package quadrature

import "github.com/cwbudde/algo-encoder/dsp/encoder"

// steps maps prev<<2|next of the 2-bit (A<<1|B) state to a signed count.
// Forward rotation walks 11 -> 10 -> 00 -> 01 -> 11. Entries of 2 mark
// transitions where both channels changed at once.
var steps = [16]int8{
	0, 1, -1, 2,
	-1, 0, 2, 1,
	1, 2, 0, -1,
	2, -1, 1, 0,
}

// Decoder is a 4x quadrature decoder: every edge of either channel moves
// the count by one step.
type Decoder struct {
	state  uint8
	count  int
	errors int
}

// NewDecoder creates a decoder whose channels start at levels a and b.
func NewDecoder(a, b int) *Decoder {
	return &Decoder{state: pack(a, b)}
}

// Update applies a level change of channel ch and returns the step taken:
// +1 forward, -1 reverse, 0 when the level did not change.
func (d *Decoder) Update(ch encoder.Channel, level int) int {
	a, b := int(d.state>>1), int(d.state&1)
	if ch == encoder.ChannelA {
		a = level
	} else {
		b = level
	}
	next := pack(a, b)

	step := steps[d.state<<2|next]
	d.state = next
	if step == 2 {
		d.errors++
		return 0
	}
	d.count += int(step)
	return int(step)
}

// Count returns the signed number of steps seen so far.
func (d *Decoder) Count() int { return d.count }

// Errors returns the number of illegal transitions seen so far.
func (d *Decoder) Errors() int { return d.errors }

// levels returns the current (A, B) levels.
func (d *Decoder) levels() (a, b int) {
	return int(d.state >> 1), int(d.state & 1)
}

func pack(a, b int) uint8 {
	return uint8(a&1)<<1 | uint8(b&1)
}
