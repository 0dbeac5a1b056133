// SPDX-License-Identifier: EPL-2.0

package transport

import "errors"

// ErrClosed is returned by operations on a closed Source.
var ErrClosed = errors.New("transport: source closed")
