// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"time"
)

// Periodic passes src through unchanged and calls fn once for every
// interval worth of frames that has been read from it. fn runs on whatever
// goroutine drives ReadSamples, usually the output device's.
type Periodic struct {
	src    Source
	period int64 // frames per callback, 0 disables
	acc    int64
	fn     func()
}

func NewPeriodic(src Source, interval time.Duration, fn func()) *Periodic {
	return &Periodic{
		src:    src,
		period: DurationToFrames(interval, src.SampleRate()),
		fn:     fn,
	}
}

func (p *Periodic) SampleRate() int { return p.src.SampleRate() }
func (p *Periodic) Channels() int   { return p.src.Channels() }
func (p *Periodic) BufSize() int    { return p.src.BufSize() }
func (p *Periodic) Close() error {
	if err := p.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (p *Periodic) ReadSamples(dst []float32) (int, error) {
	n, err := p.src.ReadSamples(dst)
	if p.period <= 0 || p.fn == nil || n == 0 {
		return n, err
	}

	if ch := p.src.Channels(); ch > 0 {
		p.acc += int64(n / ch)
	}
	for p.acc >= p.period {
		p.acc -= p.period
		p.fn()
	}

	return n, err
}
