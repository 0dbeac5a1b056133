// SPDX-License-Identifier: EPL-2.0

package scrubber

import (
	"log/slog"
	"math"
	"time"

	"github.com/ik5/scrubber/transport"
)

// Playback speed bounds accepted by Player.SetSpeed, and the presets
// offered next to them.
const (
	MinSpeed = 0.5
	MaxSpeed = 3.0

	SpeedHalf    = 0.5
	SpeedRegular = 1.0
	SpeedDouble  = 2.0
)

// Config holds the player settings.
type Config struct {
	// PollInterval is the granularity of the play time estimate.
	PollInterval time.Duration
	// FadeIn is applied every time audio starts from a new position.
	FadeIn time.Duration
	Speed  float64
	Volume float64
	Repeat bool

	// SampleRate and BufferDuration configure the speaker.
	SampleRate     int
	BufferDuration time.Duration

	LogLevel slog.Level
}

func DefaultConfig() Config {
	return Config{
		PollInterval:   transport.DefaultPollInterval,
		FadeIn:         transport.DefaultFadeIn,
		Speed:          transport.DefaultSpeed,
		Volume:         1,
		Repeat:         false,
		SampleRate:     44100,
		BufferDuration: 100 * time.Millisecond,
		LogLevel:       slog.LevelInfo,
	}
}

// ClampSpeed limits s to [MinSpeed, MaxSpeed]. NaN becomes SpeedRegular.
func ClampSpeed(s float64) float64 {
	if math.IsNaN(s) {
		return SpeedRegular
	}
	return min(max(s, MinSpeed), MaxSpeed)
}
