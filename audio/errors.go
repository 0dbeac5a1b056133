// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrUnsupportedFormat is returned when no decoder recognizes the input.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrNoProgress is returned when a source keeps returning zero samples
	// without an error.
	ErrNoProgress = errors.New("audio source made no progress")
)
