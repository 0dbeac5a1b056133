// SPDX-License-Identifier: EPL-2.0

// Package transport drives playback of one sound file on a device sink.
//
// A device sink can only be appended to, so every reposition goes through
// the same flush-and-requeue path: the sink is replaced with a fresh one
// and a new stream, decoded from the file and skipped to the cursor, is
// queued on it. Play position is not read back from the device. Instead the
// queued stream carries a callback that advances an atomic counter as the
// device consumes audio, and every requeue presets that counter to the time
// the cursor points at.
package transport

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ik5/scrubber/audio"
	"github.com/ik5/scrubber/device"
	"github.com/ik5/scrubber/formats"
	"github.com/ik5/scrubber/sound"
)

// Source is one sound file bound to one device sink. Its methods are meant
// to be called from a single goroutine.
type Source struct {
	data   *sound.Data
	reg    *audio.Registry
	format string
	state  *State
	sink   device.Sink
	log    *slog.Logger
	closed bool
}

// Option configures a Source.
type Option func(*Source)

// WithRegistry sets the decoders used to open the file. The default is
// formats.DefaultRegistry.
func WithRegistry(reg *audio.Registry) Option {
	return func(s *Source) {
		if reg != nil {
			s.reg = reg
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.log = l
		}
	}
}

func WithRepeat(on bool) Option {
	return func(s *Source) { s.state.SetRepeat(on) }
}

func WithFadeIn(d time.Duration) Option {
	return func(s *Source) { s.state.SetFadeIn(d) }
}

func WithSpeed(speed float64) Option {
	return func(s *Source) {
		if audio.ValidSpeed(speed) {
			s.state.speed = speed
		}
	}
}

func WithPollInterval(d time.Duration) Option {
	return func(s *Source) { s.state.SetPollInterval(d) }
}

// New opens data on a sink of ctx's device. It fails with
// audio.ErrUnsupportedFormat when no decoder accepts the data and with a
// device error when no sink can be allocated. Nothing is queued yet.
func New(ctx device.Context, data *sound.Data, opts ...Option) (*Source, error) {
	s := &Source{
		data:  data,
		state: newState(data.Cursor()),
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.reg == nil {
		s.reg = formats.DefaultRegistry()
	}

	format, probe, err := data.Probe(s.reg)
	if err != nil {
		return nil, fmt.Errorf("opening sound: %w", err)
	}
	s.format = format
	s.state.total = s.measure(probe)
	if err := probe.Close(); err != nil {
		s.log.Debug("closing probe decoder", "error", err)
	}

	sink, err := ctx.Device().NewSink()
	if err != nil {
		return nil, fmt.Errorf("opening sound: %w", err)
	}
	sink.SetSpeed(s.state.speed)
	s.sink = sink

	s.log.Debug("sound opened", "format", format, "total", s.state.total)

	return s, nil
}

// measure resolves the total length: the container's own figure when it
// has one, otherwise the sample count of a full decode, otherwise zero.
func (s *Source) measure(src audio.Source) time.Duration {
	if d, ok := audio.SourceDuration(src); ok && d > 0 {
		return d
	}

	d, err := audio.CountDuration(src)
	if err != nil {
		s.log.Warn("could not determine sound length", "format", s.format, "error", err)
		return 0
	}
	return d
}

// Format is the registry key of the decoder in use.
func (s *Source) Format() string { return s.format }

func (s *Source) Data() *sound.Data { return s.data }

func (s *Source) State() *State { return s.state }

func (s *Source) Elapsed() time.Duration { return s.state.Elapsed() }

func (s *Source) TotalLength() time.Duration { return s.state.TotalLength() }

// decode opens the file from its first frame.
func (s *Source) decode() (audio.Source, error) {
	dec, ok := s.reg.Get(s.format)
	if !ok {
		return nil, fmt.Errorf("%w: %s", audio.ErrUnsupportedFormat, s.format)
	}

	src, err := dec.Decode(s.data.NewReader())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrUnsupportedFormat, err)
	}
	return src, nil
}

// open builds the stream to queue: decoded from frac of the way through,
// looping when repeat is on, then ticking the counter and fading in.
func (s *Source) open(frac float64) (audio.Source, error) {
	src, err := s.decode()
	if err != nil {
		return nil, err
	}

	if frac > 0 {
		frames := audio.DurationToFrames(s.state.positionAt(frac), src.SampleRate())
		if err := audio.SkipFrames(src, frames); err != nil {
			_ = src.Close()
			return nil, fmt.Errorf("seeking: %w", err)
		}
	}

	if s.state.repeat {
		src = audio.NewRepeat(src, s.decode)
	}

	interval, tick := s.state.ticker()
	var out audio.Source = audio.NewPeriodic(src, interval, tick)
	if s.state.fadeIn > 0 {
		out = audio.NewFadeIn(out, s.state.fadeIn)
	}

	return out, nil
}

// Enqueue queues the file from the cursor position and presets the
// elapsed counter to match. Unless start is set or the sink was already
// playing, the sink is left paused. The counter is untouched when the
// stream cannot be built.
func (s *Source) Enqueue(start bool) error {
	if s.closed {
		return ErrClosed
	}

	wasPlaying := s.Playing() || start
	frac := s.state.cursor.Fraction()

	stream, err := s.open(frac)
	if err != nil {
		return err
	}

	s.state.storeElapsed(s.state.positionAt(frac))
	s.sink.Append(stream)
	if !wasPlaying {
		s.sink.Pause()
	}

	s.log.Debug("stream queued", "fraction", frac, "start", start)

	return nil
}

// Resume starts playback, queuing the file first when nothing is queued.
func (s *Source) Resume() error {
	if s.Stopped() {
		if err := s.Enqueue(true); err != nil {
			return err
		}
	}
	s.sink.Play()

	return nil
}

func (s *Source) Pause() {
	if !s.closed {
		s.sink.Pause()
	}
}

// Stop replaces the sink with a fresh one from ctx, keeping volume and
// speed. The old sink is closed before Stop returns, so nothing queued on
// it can move the counter any more. With clearTime the counter is reset
// and the file is queued paused at the cursor; without it the new sink is
// left empty for the caller to queue on.
func (s *Source) Stop(ctx device.Context, clearTime bool) error {
	if s.closed {
		return ErrClosed
	}

	sink, err := ctx.Device().NewSink()
	if err != nil {
		return fmt.Errorf("rebuilding sink: %w", err)
	}

	volume := s.sink.Volume()
	if err := s.sink.Close(); err != nil {
		s.log.Debug("closing replaced sink", "error", err)
	}
	s.sink = sink
	s.sink.SetSpeed(s.state.speed)
	s.sink.SetVolume(volume)

	s.log.Debug("sink rebuilt", "clear_time", clearTime)

	if clearTime {
		s.state.storeElapsed(0)
		return s.Enqueue(false)
	}

	return nil
}

// SetSpeed changes the playback rate of queued and future audio.
// Non-positive and non-finite values are ignored.
func (s *Source) SetSpeed(speed float64) {
	if !audio.ValidSpeed(speed) || s.closed {
		return
	}
	s.state.speed = speed
	s.sink.SetSpeed(speed)
}

func (s *Source) Speed() float64 { return s.state.speed }

func (s *Source) Volume() float64 { return s.sink.Volume() }

func (s *Source) SetVolume(v float64) { s.sink.SetVolume(v) }

// Stopped reports that nothing is queued.
func (s *Source) Stopped() bool { return s.sink.IsEmpty() }

// Paused reports that the sink is suspended.
func (s *Source) Paused() bool { return s.sink.IsPaused() }

// Playing reports that queued audio is flowing.
func (s *Source) Playing() bool { return !s.Paused() && !s.Stopped() }

// Close releases the sink. The Source is unusable afterwards.
func (s *Source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.sink.Close(); err != nil {
		return fmt.Errorf("closing source: %w", err)
	}
	return nil
}
