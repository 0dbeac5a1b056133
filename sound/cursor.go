// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"errors"
	"io"
	"math"
)

var errNegativePosition = errors.New("sound: negative position")

// Cursor is a byte position over a Data. It implements io.ReadSeeker.
// A Cursor is owned by one goroutine; create one per reader instead of
// sharing.
type Cursor struct {
	data *Data
	pos  int64
}

func (c *Cursor) Data() *Data { return c.data }

func (c *Cursor) Read(p []byte) (int, error) {
	if c.pos >= c.data.Len() {
		return 0, io.EOF
	}
	n := copy(p, c.data.b[c.pos:])
	c.pos += int64(n)
	return n, nil
}

func (c *Cursor) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = c.pos + offset
	case io.SeekEnd:
		pos = c.data.Len() + offset
	default:
		return 0, errors.New("sound: invalid whence")
	}
	if pos < 0 {
		return 0, errNegativePosition
	}

	c.pos = pos
	return pos, nil
}

// Position is the current byte offset.
func (c *Cursor) Position() int64 { return c.pos }

// SetPosition moves to byte offset pos, clamped to the data.
func (c *Cursor) SetPosition(pos int64) {
	c.pos = min(max(pos, 0), c.data.Len())
}

// Fraction is the position relative to the data length, in [0, 1].
// An empty Data is always at 0.
func (c *Cursor) Fraction() float64 {
	size := c.data.Len()
	if size == 0 {
		return 0
	}
	return min(float64(c.pos)/float64(size), 1)
}

// SetFraction moves to f of the way through the data, f clamped to [0, 1]
// and NaN taken as 0. The last addressable byte is len-1, so 1 lands on it
// rather than past the end.
func (c *Cursor) SetFraction(f float64) {
	if math.IsNaN(f) {
		f = 0
	}
	f = min(max(f, 0), 1)
	size := c.data.Len()
	if size == 0 {
		c.pos = 0
		return
	}
	c.pos = int64(f * float64(size-1))
}
