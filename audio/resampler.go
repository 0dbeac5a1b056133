// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/scrubber/utils"
)

// resamplerBlock is the number of source frames pulled per refill. It is
// kept small so that wrappers counting consumed frames upstream (Periodic)
// stay close to what has actually been rendered.
const resamplerBlock = 256

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
//
// A playback speed multiplies the rate at which source frames are consumed
// while the output rate stays fixed: speed 2 plays twice as fast (and an
// octave up), speed 0.5 plays at half speed.
//
// Includes basic anti-aliasing filtering whenever source frames are consumed
// faster than output frames are produced.
type Resampler struct {
	src      Source
	srcRate  float64
	dstRate  float64
	speed    float64
	ratio    float64 // source frames per output frame, speed included
	channels int

	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames   [4][]float32
	hasFrame [4]bool
	primed   bool

	// position between frames[1] and frames[2]
	pos float64

	srcBuf []float32
	srcLen int
	srcOff int
	eof    bool

	filterState []float32
	useFilter   bool
	filterAlpha float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()

	r := &Resampler{
		src:         src,
		srcRate:     float64(src.SampleRate()),
		dstRate:     float64(dstRate),
		speed:       1,
		channels:    channels,
		srcBuf:      make([]float32, resamplerBlock*channels),
		filterState: make([]float32, channels),
	}
	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}
	r.updateRatio()

	return r
}

// ValidSpeed reports whether speed can drive a Resampler: positive and
// finite.
func ValidSpeed(speed float64) bool {
	return speed > 0 && !math.IsInf(speed, 1)
}

// SetSpeed changes the playback speed. Values rejected by ValidSpeed are
// ignored. It must not be called concurrently with ReadSamples.
func (r *Resampler) SetSpeed(speed float64) {
	if !ValidSpeed(speed) {
		return
	}
	r.speed = speed
	r.updateRatio()
}

func (r *Resampler) Speed() float64 { return r.speed }

func (r *Resampler) updateRatio() {
	r.ratio = r.srcRate / r.dstRate * r.speed

	// one-pole low-pass, cutoff roughly at the output Nyquist
	r.useFilter = r.ratio > 1.0
	r.filterAlpha = 0.5
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }
func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// refill pulls the next block of source frames into srcBuf.
func (r *Resampler) refill() error {
	empty := 0
	for {
		n, err := r.src.ReadSamples(r.srcBuf)
		r.srcLen = n - n%r.channels
		r.srcOff = 0
		if errors.Is(err, io.EOF) {
			r.eof = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w", err)
		}
		if r.srcLen > 0 {
			return nil
		}
		empty++
		if empty > maxEmptyReads {
			return ErrNoProgress
		}
	}
}

// fetchNextFrame shifts the interpolation window by one source frame.
func (r *Resampler) fetchNextFrame() error {
	copy(r.frames[0], r.frames[1])
	copy(r.frames[1], r.frames[2])
	copy(r.frames[2], r.frames[3])
	r.hasFrame[0] = r.hasFrame[1]
	r.hasFrame[1] = r.hasFrame[2]
	r.hasFrame[2] = r.hasFrame[3]
	r.hasFrame[3] = false

	if r.srcOff >= r.srcLen && !r.eof {
		if err := r.refill(); err != nil {
			return err
		}
	}
	if r.srcOff >= r.srcLen {
		return nil
	}

	next := r.srcBuf[r.srcOff : r.srcOff+r.channels]
	r.srcOff += r.channels
	copy(r.frames[3], next)
	r.hasFrame[3] = true

	if r.useFilter {
		if !r.primed && !r.hasFrame[2] {
			// first frame: start the filter settled to avoid a click
			copy(r.filterState, r.frames[3])
		}
		for c := range r.channels {
			r.frames[3][c] = r.filterAlpha*r.frames[3][c] + (1-r.filterAlpha)*r.filterState[c]
			r.filterState[c] = r.frames[3][c]
		}
	} else {
		copy(r.filterState, r.frames[3])
	}

	return nil
}

// ReadSamples produces dst samples at r.dstRate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.channels <= 0 || len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		// Slide the first three source frames into t0, t+1, t+2.
		for range 3 {
			if err := r.fetchNextFrame(); err != nil {
				return 0, err
			}
		}
		r.primed = true
	}

	written := 0
	framesNeeded := len(dst) / r.channels
	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.fetchNextFrame(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.hasFrame[1] {
			if written == 0 {
				return 0, io.EOF
			}
			return written * r.channels, io.EOF
		}

		alpha := float32(r.pos)
		for c := range r.channels {
			y1 := r.frames[1][c]
			y0, y2, y3 := y1, y1, y1
			if r.hasFrame[0] {
				y0 = r.frames[0][c]
			}
			if r.hasFrame[2] {
				y2 = r.frames[2][c]
				y3 = y2
			}
			if r.hasFrame[3] {
				y3 = r.frames[3][c]
			}
			dst[written*r.channels+c] = utils.CubicInterpolate(y0, y1, y2, y3, alpha)
		}
		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
