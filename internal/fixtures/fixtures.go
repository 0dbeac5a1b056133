// SPDX-License-Identifier: EPL-2.0

// Package fixtures builds small in-memory WAV files for tests.
package fixtures

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/ik5/scrubber/audio"
	"github.com/ik5/scrubber/formats/wav"
)

// WAV encodes samples as a 16-bit WAV file.
func WAV(tb testing.TB, sampleRate, channels int, samples []int16) []byte {
	tb.Helper()

	buf := new(bytes.Buffer)
	if err := wav.WriteWAV16(buf, sampleRate, channels, samples); err != nil {
		tb.Fatalf("encoding fixture: %v", err)
	}
	return buf.Bytes()
}

// Tone returns d of a half-scale sine at freq Hz on every channel.
func Tone(tb testing.TB, sampleRate, channels int, d time.Duration, freq float64) []byte {
	tb.Helper()

	frames := int(audio.DurationToFrames(d, sampleRate))
	samples := make([]int16, frames*channels)
	for i := range frames {
		v := int16(16384 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
		for c := range channels {
			samples[i*channels+c] = v
		}
	}
	return WAV(tb, sampleRate, channels, samples)
}

// Silence returns d of digital silence.
func Silence(tb testing.TB, sampleRate, channels int, d time.Duration) []byte {
	tb.Helper()

	frames := int(audio.DurationToFrames(d, sampleRate))
	return WAV(tb, sampleRate, channels, make([]int16, frames*channels))
}

// Ramp returns a mono file whose sample i is i/RampStep full scale, which
// lets a test tell from a decoded value which frame it came from.
func Ramp(tb testing.TB, sampleRate, frames int) []byte {
	tb.Helper()

	samples := make([]int16, frames)
	for i := range frames {
		samples[i] = int16(i % RampStep)
	}
	return WAV(tb, sampleRate, 1, samples)
}

// RampStep is the period of the ramp written by Ramp.
const RampStep = 32768

// RampFrame converts a decoded ramp sample back into its frame index
// (modulo RampStep).
func RampFrame(v float32) int {
	return int(math.Round(float64(v) * 32768))
}
