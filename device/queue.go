// SPDX-License-Identifier: EPL-2.0

package device

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/ik5/scrubber/audio"
)

type queueItem struct {
	rs  *audio.Resampler
	out audio.Source
}

// queue converts appended sources to the device format and plays them in
// order. Speed lives in each item's resampler so that it also applies to
// audio that is already queued.
type queue struct {
	mtx      sync.Mutex
	rate     int
	channels int
	speed    float64
	items    []queueItem
	closed   bool
	log      *slog.Logger
}

func newQueue(rate, channels int, log *slog.Logger) *queue {
	return &queue{
		rate:     rate,
		channels: channels,
		speed:    1,
		log:      log,
	}
}

func (q *queue) append(src audio.Source) {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	if q.closed {
		_ = src.Close()
		return
	}

	rs := audio.NewResampler(src, q.rate)
	rs.SetSpeed(q.speed)
	q.items = append(q.items, queueItem{rs: rs, out: audio.NewChannelMixer(rs, q.channels)})
}

func (q *queue) getSpeed() float64 {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	return q.speed
}

func (q *queue) setSpeed(s float64) {
	if !audio.ValidSpeed(s) {
		return
	}

	q.mtx.Lock()
	defer q.mtx.Unlock()

	q.speed = s
	for _, it := range q.items {
		it.rs.SetSpeed(s)
	}
}

func (q *queue) isEmpty() bool {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	return len(q.items) == 0
}

// fill reads device-format samples into dst and returns how many were
// written. Finished and failed sources are closed and dropped. dst must
// hold whole frames.
func (q *queue) fill(dst []float32) int {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	n := 0
	for n < len(dst) && len(q.items) > 0 && !q.closed {
		it := q.items[0]
		m, err := it.out.ReadSamples(dst[n:])
		n += m
		if err == nil {
			if m == 0 {
				break
			}
			continue
		}

		if !errors.Is(err, io.EOF) {
			q.log.Warn("dropping stream after read error", "error", err)
		}
		if cerr := it.out.Close(); cerr != nil {
			q.log.Debug("closing finished stream", "error", cerr)
		}
		q.items[0] = queueItem{}
		q.items = q.items[1:]
	}

	return n
}

func (q *queue) close() error {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true

	var errs []error
	for _, it := range q.items {
		errs = append(errs, it.out.Close())
	}
	q.items = nil

	return errors.Join(errs...)
}

func (q *queue) isClosed() bool {
	q.mtx.Lock()
	defer q.mtx.Unlock()

	return q.closed
}
