// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	beepflac "github.com/gopxl/beep/v2/flac"
	"github.com/ik5/scrubber/audio"
)

// source adapts a beep stream to audio.Source. beep always streams stereo
// pairs, so mono files are narrowed back to a single channel.
type source struct {
	s          beep.StreamSeekCloser
	sampleRate int
	channels   int
	buf        [][2]float64
	done       bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 512 * s.channels }

func (s *source) Close() error {
	if err := s.s.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *source) Duration() (time.Duration, bool) {
	frames := s.s.Len()
	if frames <= 0 {
		return 0, false
	}
	return audio.FramesToDuration(int64(frames), s.sampleRate), true
}

func (s *source) SeekFrame(frame int64) error {
	frame = min(frame, int64(s.s.Len()))
	if err := s.s.Seek(int(frame)); err != nil {
		return fmt.Errorf("flac seek: %w", err)
	}
	s.done = false
	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.done {
		return 0, io.EOF
	}

	frames := len(dst) / s.channels
	if frames == 0 {
		return 0, nil
	}
	if cap(s.buf) < frames {
		s.buf = make([][2]float64, frames)
	}
	s.buf = s.buf[:frames]

	n, ok := s.s.Stream(s.buf)
	for i := range n {
		for c := range s.channels {
			dst[i*s.channels+c] = float32(s.buf[i][c])
		}
	}

	if !ok {
		s.done = true
		if err := s.s.Err(); err != nil {
			return n * s.channels, fmt.Errorf("%w", err)
		}
		return n * s.channels, io.EOF
	}

	return n * s.channels, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := audio.ReadSeeker(r)
	if err != nil {
		return nil, err
	}

	s, format, err := beepflac.Decode(rs)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		s:          s,
		sampleRate: int(format.SampleRate),
		channels:   min(max(format.NumChannels, 1), 2),
	}, nil
}
