// SPDX-License-Identifier: EPL-2.0

// Package device abstracts the audio output. A Device hands out Sinks; a
// Sink plays the sources appended to it one after another on the device's
// own goroutine.
//
// Sinks are append-only. There is no way to rewind or drop what was queued
// except closing the sink and asking the device for a new one. Close is a
// hard barrier: once it returns, nothing that was queued on the sink is read
// again, so callbacks riding inside a queued source cannot fire late.
package device

import (
	"log/slog"

	"github.com/ik5/scrubber/audio"
)

// Context gives access to the output device.
type Context interface {
	Device() Device
}

// Device creates sinks. All sinks of a device share its sample rate and
// channel layout; sources are converted on the way in.
type Device interface {
	NewSink() (Sink, error)
	SampleRate() int
	Channels() int
}

// Sink is a queue of sources playing on a Device.
type Sink interface {
	// Append queues src after everything already queued. The sink takes
	// ownership and closes src when it is finished or the sink is closed.
	Append(src audio.Source)
	Pause()
	Play()
	IsPaused() bool
	// IsEmpty reports whether nothing is left to play.
	IsEmpty() bool
	Volume() float64
	SetVolume(v float64)
	// Speed is the playback rate of queued and future sources; 1 is normal.
	Speed() float64
	SetSpeed(s float64)
	Close() error
}

type options struct {
	log *slog.Logger
}

// Option configures a device.
type Option func(*options)

// WithLogger sets the logger used for stream failures met while playing.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
