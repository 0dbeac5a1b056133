// SPDX-License-Identifier: EPL-2.0

package transport

import (
	"sync/atomic"
	"time"

	"github.com/ik5/scrubber/sound"
)

// Defaults applied by New when no option overrides them.
const (
	DefaultFadeIn       = 10 * time.Millisecond
	DefaultSpeed        = 1.0
	DefaultPollInterval = 50 * time.Millisecond
)

// State is the playback configuration of a Source together with its
// elapsed time estimate.
//
// The estimate is a microsecond counter. A callback inside every queued
// stream adds one poll interval to it each time a poll interval of audio
// has been read by the device, so it is only as precise as the interval.
// The counter is the only field touched from the device goroutine; every
// other field belongs to the goroutine driving the Source.
type State struct {
	cursor *sound.Cursor

	repeat       bool
	fadeIn       time.Duration
	speed        float64
	pollInterval time.Duration

	elapsed atomic.Int64 // microseconds
	total   time.Duration
}

func newState(cursor *sound.Cursor) *State {
	return &State{
		cursor:       cursor,
		fadeIn:       DefaultFadeIn,
		speed:        DefaultSpeed,
		pollInterval: DefaultPollInterval,
	}
}

// Cursor is the byte position the next queued stream starts from.
func (s *State) Cursor() *sound.Cursor { return s.cursor }

func (s *State) Repeat() bool { return s.repeat }

// SetRepeat makes streams queued from now on loop forever.
func (s *State) SetRepeat(on bool) { s.repeat = on }

func (s *State) FadeIn() time.Duration { return s.fadeIn }

// SetFadeIn sets the fade applied to the start of every queued stream.
func (s *State) SetFadeIn(d time.Duration) { s.fadeIn = max(d, 0) }

func (s *State) Speed() float64 { return s.speed }

func (s *State) PollInterval() time.Duration { return s.pollInterval }

// SetPollInterval changes the counter granularity of streams queued from
// now on. Non-positive intervals are ignored.
func (s *State) SetPollInterval(d time.Duration) {
	if d > 0 {
		s.pollInterval = d
	}
}

// Elapsed is the estimated play position. With repeat on it wraps at the
// total length.
func (s *State) Elapsed() time.Duration {
	d := time.Duration(s.elapsed.Load()) * time.Microsecond
	if s.repeat && s.total > 0 {
		d %= s.total
	}
	return d
}

// TotalLength is the play length resolved when the Source was created,
// zero when it could not be determined.
func (s *State) TotalLength() time.Duration { return s.total }

// positionAt converts a byte fraction of the file into play time.
func (s *State) positionAt(frac float64) time.Duration {
	return time.Duration(frac*float64(s.total.Microseconds())) * time.Microsecond
}

func (s *State) storeElapsed(d time.Duration) { s.elapsed.Store(d.Microseconds()) }

// ticker returns the callback placed in a queued stream. It adds the
// current poll interval, so a later SetPollInterval does not skew streams
// that are already queued.
func (s *State) ticker() (time.Duration, func()) {
	step := s.pollInterval.Microseconds()
	return s.pollInterval, func() { s.elapsed.Add(step) }
}
