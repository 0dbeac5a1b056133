// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// Repeat plays the current source to its end and then keeps starting over
// with a fresh source from reopen, forever.
type Repeat struct {
	cur    Source
	reopen func() (Source, error)
}

func NewRepeat(first Source, reopen func() (Source, error)) *Repeat {
	return &Repeat{cur: first, reopen: reopen}
}

func (r *Repeat) SampleRate() int { return r.cur.SampleRate() }
func (r *Repeat) Channels() int   { return r.cur.Channels() }
func (r *Repeat) BufSize() int    { return r.cur.BufSize() }
func (r *Repeat) Close() error {
	if err := r.cur.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (r *Repeat) ReadSamples(dst []float32) (int, error) {
	n, err := r.cur.ReadSamples(dst)
	if !errors.Is(err, io.EOF) {
		return n, err
	}

	_ = r.cur.Close()
	next, oerr := r.reopen()
	if oerr != nil {
		return n, fmt.Errorf("reopening for repeat: %w", oerr)
	}
	r.cur = next

	if n > 0 {
		return n, nil
	}

	// An empty pass would spin forever, so the fresh source gets one try.
	return r.cur.ReadSamples(dst)
}
