// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"testing"
	"time"

	"github.com/ik5/scrubber/internal/audiotest"
)

func TestFrameDurationConversion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		frames int64
		rate   int
		d      time.Duration
	}{
		{44100, 44100, time.Second},
		{22050, 44100, 500 * time.Millisecond},
		{400, 8000, 50 * time.Millisecond},
		{0, 48000, 0},
	}

	for _, tt := range tests {
		if got := FramesToDuration(tt.frames, tt.rate); got != tt.d {
			t.Errorf("FramesToDuration(%d, %d) = %v, want %v", tt.frames, tt.rate, got, tt.d)
		}
		if got := DurationToFrames(tt.d, tt.rate); got != tt.frames {
			t.Errorf("DurationToFrames(%v, %d) = %d, want %d", tt.d, tt.rate, got, tt.frames)
		}
	}

	if got := FramesToDuration(100, 0); got != 0 {
		t.Errorf("FramesToDuration with zero rate = %v, want 0", got)
	}
	if got := DurationToFrames(-time.Second, 8000); got != 0 {
		t.Errorf("DurationToFrames(negative) = %d, want 0", got)
	}
}

func TestSourceDuration(t *testing.T) {
	t.Parallel()

	d, ok := SourceDuration(audiotest.NewSilentSource(8000, 2, 16000))
	if !ok || d != 2*time.Second {
		t.Errorf("SourceDuration() = %v, %v, want 2s, true", d, ok)
	}

	if _, ok := SourceDuration(audiotest.NewSilentSource(8000, 2, 16000).HideDuration()); ok {
		t.Error("SourceDuration() ok = true for hidden duration")
	}
}

func TestCountDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels int
		frames   int
		want     time.Duration
	}{
		{"stereo half second", 44100, 2, 22050, 500 * time.Millisecond},
		{"mono ten seconds", 8000, 1, 80000, 10 * time.Second},
		{"truncated to millisecond", 1000, 1, 1, time.Millisecond},
		{"empty", 8000, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSilentSource(tt.rate, tt.channels, tt.frames).HideDuration()
			got, err := CountDuration(src)
			if err != nil {
				t.Fatalf("CountDuration() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("CountDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSkipFrames(t *testing.T) {
	t.Parallel()

	t.Run("seeker", func(t *testing.T) {
		t.Parallel()

		src := audiotest.NewRampSource(1000, 2, 1000)
		if err := SkipFrames(src, 250); err != nil {
			t.Fatalf("SkipFrames() error = %v", err)
		}
		if src.Position() != 250 {
			t.Errorf("Position() = %d, want 250", src.Position())
		}
		if src.Reads() != 0 {
			t.Errorf("seekable source was read %d times", src.Reads())
		}
	})

	t.Run("decode and discard", func(t *testing.T) {
		t.Parallel()

		src := audiotest.NewRampSource(1000, 2, 5000)
		wrapped := NewFadeIn(src, 0) // hides SeekFrame
		if err := SkipFrames(wrapped, 3000); err != nil {
			t.Fatalf("SkipFrames() error = %v", err)
		}
		if src.Position() != 3000 {
			t.Errorf("Position() = %d, want 3000", src.Position())
		}

		buf := make([]float32, 2)
		if _, err := wrapped.ReadSamples(buf); err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
		if buf[0] != 3000 {
			t.Errorf("first sample after skip = %v, want 3000", buf[0])
		}
	})

	t.Run("past the end", func(t *testing.T) {
		t.Parallel()

		src := NewFadeIn(audiotest.NewRampSource(1000, 1, 100), 0)
		if err := SkipFrames(src, 1000); err != nil {
			t.Fatalf("SkipFrames() past end error = %v", err)
		}
	})
}
