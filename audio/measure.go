// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"time"
)

const maxEmptyReads = 32

// FramesToDuration converts a frame count at rate into play time.
func FramesToDuration(frames int64, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(frames * int64(time.Second) / int64(rate))
}

// DurationToFrames converts play time into a frame count at rate.
func DurationToFrames(d time.Duration, rate int) int64 {
	if d <= 0 || rate <= 0 {
		return 0
	}
	return int64(d) * int64(rate) / int64(time.Second)
}

// SourceDuration returns the length declared by src, if it declares one.
func SourceDuration(src Source) (time.Duration, bool) {
	dr, ok := src.(DurationReporter)
	if !ok {
		return 0, false
	}
	return dr.Duration()
}

// CountDuration drains src and derives its length from the number of
// samples it produced. The result is truncated to whole milliseconds and is
// only as good as the decoder's own sample accounting, so variable bitrate
// or damaged files can come out slightly off.
func CountDuration(src Source) (time.Duration, error) {
	ch := src.Channels()
	rate := src.SampleRate()
	if ch <= 0 || rate <= 0 {
		return 0, nil
	}

	size := src.BufSize()
	if size < ch {
		size = 4096
	}
	buf := make([]float32, size-size%ch)

	var samples int64
	empty := 0
	for {
		n, err := src.ReadSamples(buf)
		samples += int64(n)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("counting samples: %w", err)
		}
		if n == 0 {
			empty++
			if empty > maxEmptyReads {
				return 0, ErrNoProgress
			}
			continue
		}
		empty = 0
	}

	ms := samples * 1000 / (int64(ch) * int64(rate))
	return time.Duration(ms) * time.Millisecond, nil
}

// SkipFrames advances src by frames. Sources implementing FrameSeeker seek
// directly, others are decoded and discarded. Running into the end of the
// stream is not an error; the source is simply left exhausted.
func SkipFrames(src Source, frames int64) error {
	if frames <= 0 {
		return nil
	}

	if fs, ok := src.(FrameSeeker); ok {
		return fs.SeekFrame(frames)
	}

	ch := src.Channels()
	if ch <= 0 {
		return nil
	}
	buf := make([]float32, 1024*ch)
	remaining := frames * int64(ch)
	empty := 0
	for remaining > 0 {
		want := min(int64(len(buf)), remaining)
		n, err := src.ReadSamples(buf[:want])
		remaining -= int64(n)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("skipping frames: %w", err)
		}
		if n == 0 {
			empty++
			if empty > maxEmptyReads {
				return ErrNoProgress
			}
			continue
		}
		empty = 0
	}

	return nil
}
