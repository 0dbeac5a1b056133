// SPDX-License-Identifier: EPL-2.0

//go:build !((linux && cgo) || windows || darwin)

package device

import (
	"fmt"
	"time"
)

// SpeakerAvailable reports whether this build can drive a sound card.
// Sound output on linux needs cgo.
const SpeakerAvailable = false

// Speaker is unavailable in this build; NewSpeaker always fails.
type Speaker struct{}

func NewSpeaker(int, time.Duration, ...Option) (*Speaker, error) {
	return nil, ErrUnavailable
}

func (sp *Speaker) Device() Device  { return sp }
func (sp *Speaker) SampleRate() int { return 0 }
func (sp *Speaker) Channels() int   { return 0 }

func (sp *Speaker) NewSink() (Sink, error) {
	return nil, fmt.Errorf("%w: %w", ErrSinkAlloc, ErrUnavailable)
}
