// SPDX-License-Identifier: EPL-2.0

package device

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/ik5/scrubber/internal/audiotest"
)

// brokenSource yields a few samples and then fails.
type brokenSource struct {
	left   int
	closed bool
}

func (b *brokenSource) SampleRate() int { return 1000 }
func (b *brokenSource) Channels() int   { return 1 }
func (b *brokenSource) BufSize() int    { return 64 }
func (b *brokenSource) Close() error    { b.closed = true; return nil }

func (b *brokenSource) ReadSamples(dst []float32) (int, error) {
	if b.left == 0 {
		return 0, errors.New("corrupt frame")
	}
	n := min(len(dst), b.left)
	for i := range n {
		dst[i] = 1
	}
	b.left -= n
	return n, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestQueue_DropsFailedSource(t *testing.T) {
	t.Parallel()

	q := newQueue(1000, 1, discardLogger())
	broken := &brokenSource{left: 20}
	next := audiotest.NewConstantSource(1000, 1, 100, 0.5)
	q.append(broken)
	q.append(next)

	buf := make([]float32, 60)
	n := q.fill(buf)
	if n != 60 {
		t.Fatalf("fill() = %d, want 60", n)
	}
	if !broken.closed {
		t.Error("failed source not closed")
	}
	if buf[0] != 1 || buf[59] != 0.5 {
		t.Errorf("buf[0], buf[59] = %v, %v; want 1, 0.5", buf[0], buf[59])
	}
}

func TestQueue_IgnoresInvalidSpeed(t *testing.T) {
	t.Parallel()

	q := newQueue(1000, 1, discardLogger())
	q.append(audiotest.NewSilentSource(1000, 1, 100))
	q.setSpeed(1.5)

	for _, bad := range []float64{0, -2, math.NaN(), math.Inf(1)} {
		q.setSpeed(bad)
		if got := q.getSpeed(); got != 1.5 {
			t.Errorf("getSpeed() after setSpeed(%v) = %v, want 1.5", bad, got)
		}
	}
	if got := q.items[0].rs.Speed(); got != 1.5 {
		t.Errorf("queued resampler speed = %v, want 1.5", got)
	}
}

func TestQueue_EmptyAndClosed(t *testing.T) {
	t.Parallel()

	q := newQueue(1000, 2, discardLogger())
	if !q.isEmpty() {
		t.Error("new queue not empty")
	}
	if n := q.fill(make([]float32, 8)); n != 0 {
		t.Errorf("fill() on empty queue = %d", n)
	}

	src := audiotest.NewSilentSource(1000, 2, 100)
	q.append(src)
	if err := q.close(); err != nil {
		t.Fatalf("close() error = %v", err)
	}
	if !src.Closed() || !q.isClosed() || !q.isEmpty() {
		t.Error("close() left sources behind")
	}
	if err := q.close(); err != nil {
		t.Errorf("second close() error = %v", err)
	}
	if n := q.fill(make([]float32, 8)); n != 0 {
		t.Errorf("fill() after close = %d", n)
	}
}
