// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/scrubber/audio"
)

// mockAiffReader simulates aiff.Decoder for testing
type mockAiffReader struct {
	sampleRate int
	channels   int
	samples    []int
	offset     int
	err        error
}

func (m *mockAiffReader) Format() *goaudio.Format {
	return &goaudio.Format{SampleRate: m.sampleRate, NumChannels: m.channels}
}

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n
	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("FORM but not AIFF at all")} {
		_, err := Decoder{}.Decode(bytes.NewReader(data))
		if err == nil {
			t.Errorf("Decode(%q) error = nil, want error", data)
		}
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bitDepth int
		in       []int
		want     []float32
	}{
		{"8-bit signed", 8, []int{-64, 64}, []float32{-0.5, 0.5}},
		{"16-bit", 16, []int{16384, -32768}, []float32{0.5, -1}},
		{"24-bit", 24, []int{-4194304, 0}, []float32{-0.5, 0}},
		{"32-bit", 32, []int{1073741824, 0}, []float32{0.5, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := &source{
				dec:        &mockAiffReader{sampleRate: 8000, channels: 2, samples: tt.in},
				sampleRate: 8000,
				channels:   2,
				bitDepth:   tt.bitDepth,
			}

			buf := make([]float32, 4)
			n, err := src.ReadSamples(buf)
			if n != len(tt.want) || !errors.Is(err, io.EOF) {
				t.Fatalf("ReadSamples() = %d, %v, want %d, EOF", n, err, len(tt.want))
			}
			for i, want := range tt.want {
				if buf[i] != want {
					t.Errorf("sample[%d] = %v, want %v", i, buf[i], want)
				}
			}

			if n, err := src.ReadSamples(buf); n != 0 || !errors.Is(err, io.EOF) {
				t.Errorf("read after end = %d, %v, want 0, EOF", n, err)
			}
		})
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("bad chunk")
	src := &source{dec: &mockAiffReader{err: boom}, sampleRate: 8000, channels: 1, bitDepth: 16}

	if _, err := src.ReadSamples(make([]float32, 2)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func TestSource_Duration(t *testing.T) {
	t.Parallel()

	src := &source{dec: &mockAiffReader{}, sampleRate: 22050, channels: 1, bitDepth: 16, frames: 44100}
	if d, ok := audio.SourceDuration(src); !ok || d != 2*time.Second {
		t.Errorf("Duration() = %v, %v, want 2s, true", d, ok)
	}

	src.frames = 0
	if _, ok := audio.SourceDuration(src); ok {
		t.Error("Duration() ok = true without a frame count")
	}
}
