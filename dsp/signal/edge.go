package signal

import (
	"encoding/json"
	"fmt"
)

// EdgeKind identifies the direction of a level transition.
type EdgeKind int

const (
	// Rising is a low to high transition.
	Rising EdgeKind = iota
	// Falling is a high to low transition.
	Falling
)

// String returns "rising" or "falling".
func (k EdgeKind) String() string {
	switch k {
	case Rising:
		return "rising"
	case Falling:
		return "falling"
	default:
		return fmt.Sprintf("EdgeKind(%d)", int(k))
	}
}

// MarshalJSON encodes the kind as its string name.
func (k EdgeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a kind from its string name.
func (k *EdgeKind) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "rising":
		*k = Rising
	case "falling":
		*k = Falling
	default:
		return fmt.Errorf("unknown edge kind %q", s)
	}
	return nil
}

// Sample is one point of a sampled square wave.
type Sample struct {
	Time  float64 `json:"time"`
	Level int     `json:"level"`
}

// Edge is a detected transition of a single channel.
// Level is the post-transition value: 1 for Rising, 0 for Falling.
type Edge struct {
	Time  float64  `json:"time"`
	Kind  EdgeKind `json:"type"`
	Level int      `json:"value"`
}

func edgeTo(t float64, level int) Edge {
	if level == 1 {
		return Edge{Time: t, Kind: Rising, Level: 1}
	}
	return Edge{Time: t, Kind: Falling, Level: 0}
}

// DetectEdges returns the transitions implied by adjacent samples.
// The first sample never produces an edge.
func DetectEdges(samples []Sample) []Edge {
	edges := make([]Edge, 0)
	for i := 1; i < len(samples); i++ {
		if samples[i].Level != samples[i-1].Level {
			edges = append(edges, edgeTo(samples[i].Time, samples[i].Level))
		}
	}
	return edges
}
