// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"time"
)

// FadeIn ramps the gain of src linearly from silence to unity over the
// first d of audio.
type FadeIn struct {
	src    Source
	length int64 // frames
	done   int64
}

func NewFadeIn(src Source, d time.Duration) *FadeIn {
	return &FadeIn{
		src:    src,
		length: DurationToFrames(d, src.SampleRate()),
	}
}

func (f *FadeIn) SampleRate() int { return f.src.SampleRate() }
func (f *FadeIn) Channels() int   { return f.src.Channels() }
func (f *FadeIn) BufSize() int    { return f.src.BufSize() }
func (f *FadeIn) Close() error {
	if err := f.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (f *FadeIn) ReadSamples(dst []float32) (int, error) {
	n, err := f.src.ReadSamples(dst)
	if f.done >= f.length || n == 0 {
		return n, err
	}

	ch := f.src.Channels()
	for frame := 0; frame*ch < n && f.done < f.length; frame++ {
		gain := float32(f.done) / float32(f.length)
		for c := range ch {
			if i := frame*ch + c; i < n {
				dst[i] *= gain
			}
		}
		f.done++
	}

	return n, err
}
