// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"io"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/ik5/scrubber/audio"
	"github.com/ik5/scrubber/formats/wav"
	"github.com/ik5/scrubber/utils"
)

// Memory is a device without hardware. Nothing plays until Advance is
// called, which pulls audio from every live sink on the caller's goroutine
// exactly as a sound card would in real time. With capture on, the mixed
// output is kept for inspection or export.
type Memory struct {
	rate     int
	channels int
	opts     options

	mtx      sync.Mutex
	sinks    []*memorySink
	capture  bool
	captured []float32
	failErr  error
}

// NewMemory creates a memory device producing rate Hz with channels
// interleaved channels.
func NewMemory(rate, channels int, opts ...Option) *Memory {
	return &Memory{
		rate:     max(rate, 1),
		channels: max(channels, 1),
		opts:     newOptions(opts),
	}
}

func (m *Memory) Device() Device  { return m }
func (m *Memory) SampleRate() int { return m.rate }
func (m *Memory) Channels() int   { return m.channels }

// FailNewSink makes the following NewSink calls fail with err. A nil err
// restores normal behaviour.
func (m *Memory) FailNewSink(err error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.failErr = err
}

func (m *Memory) NewSink() (Sink, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.failErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrSinkAlloc, m.failErr)
	}

	s := &memorySink{
		dev:    m,
		q:      newQueue(m.rate, m.channels, m.opts.log),
		volume: 1,
	}
	m.sinks = append(m.sinks, s)

	return s, nil
}

// LiveSinks is the number of sinks not yet closed.
func (m *Memory) LiveSinks() int {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	return len(m.sinks)
}

// Capture turns recording of the mixed output on or off.
func (m *Memory) Capture(on bool) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.capture = on
}

// Advance plays d worth of audio. Sinks are pulled in 10ms blocks.
func (m *Memory) Advance(d time.Duration) {
	frames := audio.DurationToFrames(d, m.rate)
	block := int64(max(m.rate/100, 1))

	mix := make([]float32, int(block)*m.channels)
	tmp := make([]float32, len(mix))
	for done := int64(0); done < frames; {
		n := int(min(block, frames-done)) * m.channels
		clear(mix[:n])

		m.mtx.Lock()
		sinks := slices.Clone(m.sinks)
		m.mtx.Unlock()

		for _, s := range sinks {
			s.pull(mix[:n], tmp[:n])
		}

		m.mtx.Lock()
		if m.capture {
			m.captured = append(m.captured, mix[:n]...)
		}
		m.mtx.Unlock()

		done += int64(n / m.channels)
	}
}

// Captured returns a copy of the recorded output.
func (m *Memory) Captured() []float32 {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	return slices.Clone(m.captured)
}

// CapturedPCM16 returns the recorded output as 16-bit PCM.
func (m *Memory) CapturedPCM16() []int16 {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	pcm16 := make([]int16, len(m.captured))
	for i, x := range m.captured {
		pcm16[i] = utils.Float32ToInt16(x)
	}
	return pcm16
}

// WriteWAV writes the recorded output as a 16-bit WAV file.
func (m *Memory) WriteWAV(w io.Writer) error {
	return wav.WriteWAV16(w, m.rate, m.channels, m.CapturedPCM16())
}

func (m *Memory) remove(s *memorySink) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.sinks = slices.DeleteFunc(m.sinks, func(x *memorySink) bool { return x == s })
}

type memorySink struct {
	dev *Memory
	q   *queue

	mtx    sync.Mutex
	paused bool
	volume float64
	closed bool
}

// pull mixes the sink's next samples into mix, using tmp as scratch.
func (s *memorySink) pull(mix, tmp []float32) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed || s.paused {
		return
	}

	n := s.q.fill(tmp)
	vol := float32(s.volume)
	for i := range n {
		mix[i] += tmp[i] * vol
	}
}

func (s *memorySink) Append(src audio.Source) { s.q.append(src) }
func (s *memorySink) IsEmpty() bool           { return s.q.isEmpty() }
func (s *memorySink) Speed() float64          { return s.q.getSpeed() }
func (s *memorySink) SetSpeed(v float64)      { s.q.setSpeed(v) }

func (s *memorySink) Pause() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.paused = true
}

func (s *memorySink) Play() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.paused = false
}

func (s *memorySink) IsPaused() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.paused
}

func (s *memorySink) Volume() float64 {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.volume
}

func (s *memorySink) SetVolume(v float64) {
	if math.IsNaN(v) {
		return
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.volume = max(v, 0)
}

func (s *memorySink) Close() error {
	s.mtx.Lock()
	s.closed = true
	err := s.q.close()
	s.mtx.Unlock()

	s.dev.remove(s)
	if err != nil {
		return fmt.Errorf("closing sink: %w", err)
	}
	return nil
}
