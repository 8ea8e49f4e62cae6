package encoder

import (
	"encoding/json"
	"fmt"

	"github.com/cwbudde/algo-encoder/dsp/signal"
)

// Channel identifies one of the two encoder outputs.
type Channel int

const (
	// ChannelA is the reference channel.
	ChannelA Channel = iota
	// ChannelB is the offset channel.
	ChannelB
)

// String returns "A" or "B".
func (c Channel) String() string {
	switch c {
	case ChannelA:
		return "A"
	case ChannelB:
		return "B"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

// MarshalJSON encodes the channel as "A" or "B".
func (c Channel) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// TaggedEdge is an edge of either channel placed in the merged sequence.
// Delta is the time since the preceding merged edge, nil for the first.
type TaggedEdge struct {
	signal.Edge
	Channel Channel  `json:"channel"`
	Delta   *float64 `json:"delta"`
}

// Output is the full result of one synthesis.
type Output struct {
	Mode      Mode            `json:"mode"`
	Input     float64         `json:"input"`
	ChannelA  signal.Waveform `json:"channelA"`
	ChannelB  signal.Waveform `json:"channelB"`
	Edges     []TaggedEdge    `json:"edges"`
	Frequency float64         `json:"frequency"`
	Duration  float64         `json:"duration"`
	Direction Direction       `json:"direction"`
	PhaseA    float64         `json:"phaseA"`
	PhaseB    float64         `json:"phaseB"`
}

// Waveform returns the waveform of channel c.
func (o Output) Waveform(c Channel) signal.Waveform {
	if c == ChannelB {
		return o.ChannelB
	}
	return o.ChannelA
}

// Period returns the pulse period in seconds, or 0 when stopped.
func (o Output) Period() float64 {
	if o.Frequency <= 0 {
		return 0
	}
	return 1 / o.Frequency
}
