// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/ik5/scrubber/audio"
)

// mockOggVorbisReader simulates the oggvorbis.Reader for testing
type mockOggVorbisReader struct {
	sampleRate int
	channels   int
	samples    []float32
	offset     int
	length     int64
	err        error
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }
func (m *mockOggVorbisReader) Length() int64   { return m.length }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}
	n := copy(buf, m.samples[m.offset:])
	m.offset += n
	return n, nil
}

func (m *mockOggVorbisReader) SetPosition(pos int64) error {
	off := int(pos) * m.channels
	if off > len(m.samples) {
		return errors.New("position out of range")
	}
	m.offset = off
	return nil
}

func newSource(m *mockOggVorbisReader) *source {
	return &source{dec: m, sampleRate: m.sampleRate, channels: m.channels}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("OggS but not really a vorbis stream")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("Decode(%q) error = nil, want error", data)
		}
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src := newSource(&mockOggVorbisReader{
		sampleRate: 44100,
		channels:   2,
		samples:    []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3},
	})

	// odd length is trimmed to whole frames
	buf := make([]float32, 5)
	n, err := src.ReadSamples(buf)
	if n != 4 || err != nil {
		t.Fatalf("ReadSamples() = %d, %v, want 4, nil", n, err)
	}
	if buf[3] != -0.2 {
		t.Errorf("buf[3] = %v, want -0.2", buf[3])
	}

	n, err = src.ReadSamples(buf)
	if n != 2 || err != nil {
		t.Fatalf("ReadSamples() = %d, %v, want 2, nil", n, err)
	}

	n, err = src.ReadSamples(buf)
	if n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("ReadSamples() at end = %d, %v, want 0, EOF", n, err)
	}

	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v", n, err)
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("corrupt page")
	src := newSource(&mockOggVorbisReader{sampleRate: 8000, channels: 1, err: boom})

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func TestSource_DurationAndSeek(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 8000)
	for i := range samples {
		samples[i] = float32(i)
	}
	m := &mockOggVorbisReader{sampleRate: 4000, channels: 2, samples: samples, length: 4000}
	src := newSource(m)

	if d, ok := audio.SourceDuration(src); !ok || d != time.Second {
		t.Errorf("Duration() = %v, %v, want 1s, true", d, ok)
	}

	if err := audio.SkipFrames(src, 1000); err != nil {
		t.Fatalf("SkipFrames() error = %v", err)
	}
	buf := make([]float32, 2)
	if _, err := src.ReadSamples(buf); err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if buf[0] != 2000 {
		t.Errorf("first sample after seek = %v, want 2000", buf[0])
	}

	if err := src.SeekFrame(10000); err == nil {
		t.Error("SeekFrame() past the end error = nil")
	}

	m.length = 0
	if _, ok := audio.SourceDuration(src); ok {
		t.Error("Duration() ok = true for unknown length")
	}
}
