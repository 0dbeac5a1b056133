// SPDX-License-Identifier: EPL-2.0

package scrubber

import (
	"testing"
	"time"
)

func TestFormatClock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00.00"},
		{1500 * time.Millisecond, "00:00:01.50"},
		{59*time.Second + 999*time.Millisecond, "00:00:59.99"},
		{61 * time.Second, "00:01:01.00"},
		{2*time.Hour + 3*time.Minute + 4*time.Second + 50*time.Millisecond, "02:03:04.05"},
		{-time.Second, "00:00:00.00"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.in); got != tt.want {
			t.Errorf("FormatClock(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatProgress(t *testing.T) {
	t.Parallel()

	if got := FormatProgress(3*time.Second, 10*time.Second, true); got != "00:00:03.00 of 00:00:10.00" {
		t.Errorf("FormatProgress() = %q", got)
	}
	if got := FormatProgress(time.Second, 0, false); got != "00:00:01.00 of --:--:--.--" {
		t.Errorf("FormatProgress(unknown) = %q", got)
	}
}
