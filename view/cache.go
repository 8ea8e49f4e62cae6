package view

import (
	"sync"

	"github.com/cwbudde/algo-encoder/dsp/encoder"
)

// Cache remembers the most recent drive and its output so repeated renders
// of an unchanged control do not synthesize again. It is safe for
// concurrent use.
type Cache struct {
	mu    sync.Mutex
	synth *encoder.Synthesizer
	drive encoder.Drive
	out   encoder.Output
	valid bool
	hits  int
}

// NewCache creates a cache around synth. A nil synth uses the default
// configuration.
func NewCache(synth *encoder.Synthesizer) *Cache {
	if synth == nil {
		synth = encoder.NewSynthesizer()
	}
	return &Cache{synth: synth}
}

// Get returns the output for d, synthesizing only when d differs from the
// previous call.
func (c *Cache) Get(d encoder.Drive) (encoder.Output, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.drive == d {
		c.hits++
		return c.out, nil
	}

	out, err := c.synth.Synthesize(d)
	if err != nil {
		return encoder.Output{}, err
	}
	c.drive, c.out, c.valid = d, out, true
	return out, nil
}

// Hits reports how many calls were served without synthesizing.
func (c *Cache) Hits() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}

// Reset forgets the cached output.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drive, c.out, c.valid = nil, encoder.Output{}, false
}
