// SPDX-License-Identifier: EPL-2.0

//go:build (linux && cgo) || windows || darwin

package device

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/ik5/scrubber/audio"
)

// SpeakerAvailable reports whether this build can drive a sound card.
const SpeakerAvailable = true

var (
	speakerOnce sync.Once
	speakerRate beep.SampleRate
	speakerErr  error
)

// Speaker plays through the default sound card. The underlying output is
// opened once per process; later NewSpeaker calls share it and keep the
// sample rate chosen first.
type Speaker struct {
	rate beep.SampleRate
	opts options
}

// NewSpeaker opens the sound card at rate Hz with roughly buffer of
// latency.
func NewSpeaker(rate int, buffer time.Duration, opts ...Option) (*Speaker, error) {
	speakerOnce.Do(func() {
		speakerRate = beep.SampleRate(rate)
		speakerErr = speaker.Init(speakerRate, speakerRate.N(buffer))
	})
	if speakerErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, speakerErr)
	}

	return &Speaker{rate: speakerRate, opts: newOptions(opts)}, nil
}

func (sp *Speaker) Device() Device  { return sp }
func (sp *Speaker) SampleRate() int { return int(sp.rate) }
func (sp *Speaker) Channels() int   { return 2 }

func (sp *Speaker) NewSink() (Sink, error) {
	q := newQueue(int(sp.rate), 2, sp.opts.log)
	gain := &effects.Gain{Streamer: &queueStreamer{q: q}}
	ctrl := &beep.Ctrl{Streamer: gain}

	speaker.Play(ctrl)

	return &speakerSink{q: q, ctrl: ctrl, gain: gain}, nil
}

// queueStreamer feeds a queue to beep. It streams silence while the queue
// is empty so the sink stays attached, and ends once the queue is closed.
type queueStreamer struct {
	q   *queue
	buf []float32
}

func (s *queueStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.q.isClosed() {
		return 0, false
	}

	if cap(s.buf) < len(samples)*2 {
		s.buf = make([]float32, len(samples)*2)
	}
	s.buf = s.buf[:len(samples)*2]

	n := s.q.fill(s.buf) / 2
	for i := range n {
		samples[i] = [2]float64{float64(s.buf[2*i]), float64(s.buf[2*i+1])}
	}
	for i := n; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}

	return len(samples), true
}

func (s *queueStreamer) Err() error { return nil }

// speakerSink mutates beep state under speaker.Lock, as the speaker
// streams on its own goroutine while holding the same lock.
type speakerSink struct {
	q    *queue
	ctrl *beep.Ctrl
	gain *effects.Gain
}

func (s *speakerSink) Append(src audio.Source) { s.q.append(src) }
func (s *speakerSink) IsEmpty() bool           { return s.q.isEmpty() }
func (s *speakerSink) Speed() float64          { return s.q.getSpeed() }
func (s *speakerSink) SetSpeed(v float64)      { s.q.setSpeed(v) }

func (s *speakerSink) Pause() {
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
}

func (s *speakerSink) Play() {
	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
}

func (s *speakerSink) IsPaused() bool {
	speaker.Lock()
	defer speaker.Unlock()

	return s.ctrl.Paused
}

// Volume is linear: 1 leaves the signal untouched, 0 mutes it.
func (s *speakerSink) Volume() float64 {
	speaker.Lock()
	defer speaker.Unlock()

	return 1 + s.gain.Gain
}

func (s *speakerSink) SetVolume(v float64) {
	if math.IsNaN(v) {
		return
	}

	speaker.Lock()
	s.gain.Gain = max(v, 0) - 1
	speaker.Unlock()
}

func (s *speakerSink) Close() error {
	speaker.Lock()
	// a nil streamer makes the mixer drop the sink
	s.ctrl.Streamer = nil
	err := s.q.close()
	speaker.Unlock()

	if err != nil {
		return fmt.Errorf("closing sink: %w", err)
	}
	return nil
}
