// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestWriteWAV16_Header(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sampleRate int
		channels   int
		samples    int
	}{
		{"mono 8k", 8000, 1, 10},
		{"stereo 44.1k", 44100, 2, 100},
		{"empty", 48000, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := new(bytes.Buffer)
			if err := WriteWAV16(buf, tt.sampleRate, tt.channels, make([]int16, tt.samples)); err != nil {
				t.Fatalf("WriteWAV16() error = %v", err)
			}
			data := buf.Bytes()

			if len(data) != headerSize+tt.samples*2 {
				t.Fatalf("len = %d, want %d", len(data), headerSize+tt.samples*2)
			}
			if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" || string(data[36:40]) != "data" {
				t.Errorf("bad chunk markers: %q", data[:40])
			}
			if got := binary.LittleEndian.Uint16(data[22:24]); int(got) != tt.channels {
				t.Errorf("channels = %d, want %d", got, tt.channels)
			}
			if got := binary.LittleEndian.Uint32(data[24:28]); int(got) != tt.sampleRate {
				t.Errorf("sample rate = %d, want %d", got, tt.sampleRate)
			}
			if got := binary.LittleEndian.Uint32(data[28:32]); int(got) != tt.sampleRate*tt.channels*2 {
				t.Errorf("byte rate = %d, want %d", got, tt.sampleRate*tt.channels*2)
			}
			if got := binary.LittleEndian.Uint16(data[32:34]); int(got) != tt.channels*2 {
				t.Errorf("block align = %d, want %d", got, tt.channels*2)
			}
			if got := binary.LittleEndian.Uint32(data[40:44]); int(got) != tt.samples*2 {
				t.Errorf("data size = %d, want %d", got, tt.samples*2)
			}
		})
	}
}

func TestWriteWAV16_SamplesAcrossChunks(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 20000)
	for i := range samples {
		samples[i] = int16(i - 10000)
	}

	buf := new(bytes.Buffer)
	if err := WriteWAV16(buf, 8000, 1, samples); err != nil {
		t.Fatalf("WriteWAV16() error = %v", err)
	}

	data := buf.Bytes()[headerSize:]
	for i, want := range samples {
		if got := int16(binary.LittleEndian.Uint16(data[i*2:])); got != want {
			t.Fatalf("sample[%d] = %d, want %d", i, got, want)
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("write failed") }

func TestWriteWAV16_Errors(t *testing.T) {
	t.Parallel()

	if err := WriteWAV16(new(bytes.Buffer), 8000, 0, nil); !errors.Is(err, ErrInvalidChannels) {
		t.Errorf("zero channels error = %v, want ErrInvalidChannels", err)
	}
	if err := WriteWAV16(failingWriter{}, 8000, 1, []int16{1}); err == nil {
		t.Error("WriteWAV16() to failing writer error = nil")
	}
}
