// SPDX-License-Identifier: EPL-2.0

package device

import (
	"errors"
	"testing"
)

func TestErrors_ShareDeviceSentinel(t *testing.T) {
	t.Parallel()

	for _, err := range []error{ErrUnavailable, ErrSinkAlloc} {
		if !errors.Is(err, ErrDevice) {
			t.Errorf("errors.Is(%v, ErrDevice) = false", err)
		}
	}
	if errors.Is(ErrUnavailable, ErrSinkAlloc) || errors.Is(ErrSinkAlloc, ErrUnavailable) {
		t.Error("ErrUnavailable and ErrSinkAlloc must stay distinguishable")
	}
}
