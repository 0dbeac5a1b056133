// SPDX-License-Identifier: EPL-2.0

// Package formats wires the bundled decoders into an audio.Registry.
package formats

import (
	"github.com/ik5/scrubber/audio"
	"github.com/ik5/scrubber/formats/aiff"
	"github.com/ik5/scrubber/formats/flac"
	"github.com/ik5/scrubber/formats/mp3"
	"github.com/ik5/scrubber/formats/vorbis"
	"github.com/ik5/scrubber/formats/wav"
)

// Format keys used by DefaultRegistry.
const (
	WAV    = "wav"
	AIFF   = "aiff"
	FLAC   = "flac"
	Vorbis = "ogg"
	MP3    = "mp3"
)

// DefaultRegistry returns a registry holding every bundled decoder.
// Container formats with strict magic numbers are probed first; mp3 goes
// last because its frame sync scan accepts the most garbage.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(WAV, wav.Decoder{})
	reg.Register(AIFF, aiff.Decoder{})
	reg.Register(FLAC, flac.Decoder{})
	reg.Register(Vorbis, vorbis.Decoder{})
	reg.Register(MP3, mp3.Decoder{})

	return reg
}
