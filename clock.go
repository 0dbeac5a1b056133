// SPDX-License-Identifier: EPL-2.0

package scrubber

import (
	"fmt"
	"time"
)

// FormatClock renders d as HH:MM:SS.cc. Negative durations show as zero.
func FormatClock(d time.Duration) string {
	d = max(d, 0)
	cs := d.Milliseconds() / 10

	return fmt.Sprintf("%02d:%02d:%02d.%02d",
		cs/360000, cs/6000%60, cs/100%60, cs%100)
}

// FormatProgress renders "elapsed of total". An unknown total shows as
// dashes.
func FormatProgress(elapsed time.Duration, total time.Duration, known bool) string {
	if !known {
		return FormatClock(elapsed) + " of --:--:--.--"
	}
	return FormatClock(elapsed) + " of " + FormatClock(total)
}
