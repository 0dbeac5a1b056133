// SPDX-License-Identifier: EPL-2.0

package scrubber

import (
	"github.com/ik5/scrubber/audio"
	"github.com/ik5/scrubber/device"
	"github.com/ik5/scrubber/sound"
)

// Load failures match one of these with errors.Is.
var (
	// ErrIO means the file could not be read.
	ErrIO = sound.ErrIO

	// ErrUnsupportedFormat means no decoder accepts the file.
	ErrUnsupportedFormat = audio.ErrUnsupportedFormat

	// ErrDevice means the output device is unavailable or no sink could
	// be allocated on it.
	ErrDevice = device.ErrDevice
)
