package encoder

import (
	"fmt"

	"github.com/cwbudde/algo-encoder/dsp/core"
)

// FormatTimeDelta renders a delta in microseconds with two decimals, or
// "N/A" when there is no preceding edge.
func FormatTimeDelta(seconds *float64) string {
	if seconds == nil {
		return "N/A"
	}
	return FormatTime(*seconds)
}

// FormatTime renders a time in seconds as microseconds with two decimals.
func FormatTime(seconds float64) string {
	return fmt.Sprintf("%.2f μs", core.Microseconds(seconds))
}
