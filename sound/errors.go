// SPDX-License-Identifier: EPL-2.0

package sound

import "errors"

// ErrIO indicates the sound file could not be read.
var ErrIO = errors.New("reading sound data")
