// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds synthetic audio sources for tests.
package audiotest

import (
	"errors"
	"io"
	"math"
	"time"
)

// MockSource generates audio for testing. It implements audio.Source,
// audio.DurationReporter and audio.FrameSeeker (without importing the audio
// package to avoid cycles).
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // Total samples to generate (per channel)
	generated    int // Samples generated so far (per channel)
	waveform     func(sample int, channel int) float32

	hideDuration bool
	noSeek       bool
	closed       bool
	reads        int
}

// NewMockSource creates a new mock audio source.
// totalSamples is the total number of samples per channel to generate.
// waveform is a function that generates sample values given sample index and channel.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 { return 0 })
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, channel int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 { return value })
}

// NewRampSource yields the frame index on every channel, handy for checking
// where a stream was positioned.
func NewRampSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, _ int) float32 {
		return float32(sample)
	})
}

// HideDuration makes Duration report an unknown length.
func (m *MockSource) HideDuration() *MockSource {
	m.hideDuration = true
	return m
}

// DisableSeek makes SeekFrame fail, for exercising seek error paths.
func (m *MockSource) DisableSeek() *MockSource {
	m.noSeek = true
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Position returns the next frame to be generated.
func (m *MockSource) Position() int { return m.generated }

// Reads returns how many times ReadSamples was called.
func (m *MockSource) Reads() int { return m.reads }

// Reset resets the generated sample counter to allow re-reading
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) Duration() (time.Duration, bool) {
	if m.hideDuration || m.sampleRate == 0 {
		return 0, false
	}
	return time.Duration(int64(m.totalSamples) * int64(time.Second) / int64(m.sampleRate)), true
}

var errSeekDisabled = errors.New("seek disabled")

func (m *MockSource) SeekFrame(frame int64) error {
	if m.noSeek {
		return errSeekDisabled
	}
	m.generated = int(min(frame, int64(m.totalSamples)))
	return nil
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	m.reads++
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	framesToWrite := min(len(dst)/m.channels, m.totalSamples-m.generated)
	for frame := range framesToWrite {
		sampleIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalSamples {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}

// Reader is the subset of audio.Source ReadAll needs.
type Reader interface {
	Channels() int
	ReadSamples(dst []float32) (int, error)
}

// ReadAll drains src and returns every sample it produced.
func ReadAll(src Reader) ([]float32, error) {
	var out []float32
	buf := make([]float32, 512*max(src.Channels(), 1))
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}
