// SPDX-License-Identifier: EPL-2.0

package device

import (
	"errors"
	"fmt"
)

var (
	// ErrDevice is matched by every output device failure.
	ErrDevice = errors.New("audio device error")

	// ErrUnavailable indicates there is no usable output device.
	ErrUnavailable = fmt.Errorf("%w: unavailable", ErrDevice)

	// ErrSinkAlloc indicates a sink could not be created on the device.
	ErrSinkAlloc = fmt.Errorf("%w: allocating sink", ErrDevice)
)
