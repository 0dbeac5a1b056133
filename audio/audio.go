// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// Source is a pull-based stream of decoded PCM.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// DurationReporter is implemented by sources whose container declares the
// total play length. ok is false when the length is not known up front.
type DurationReporter interface {
	Duration() (d time.Duration, ok bool)
}

// FrameSeeker is implemented by sources that can jump to an absolute frame
// without decoding everything before it.
type FrameSeeker interface {
	SeekFrame(frame int64) error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry of decoders by format key (e.g., "wav", "mp3", "ogg").
// Registration order is kept, Probe tries decoders in that order.
type Registry struct {
	codecs map[string]Decoder
	order  []string

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.codecs[format]; !ok {
		r.order = append(r.order, format)
	}
	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Formats returns the registered format keys in probe order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Probe finds the first registered decoder that accepts data and returns
// the format key together with an open Source positioned at frame 0.
// The caller owns the returned Source.
func (r *Registry) Probe(data []byte) (string, Source, error) {
	var errs []error
	for _, format := range r.Formats() {
		d, ok := r.Get(format)
		if !ok {
			continue
		}

		src, err := d.Decode(bytes.NewReader(data))
		if err == nil {
			return format, src, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", format, err))
	}

	return "", nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, errors.Join(errs...))
}

// CanDecode reports whether any registered decoder accepts data.
func (r *Registry) CanDecode(data []byte) bool {
	_, src, err := r.Probe(data)
	if err != nil {
		return false
	}
	_ = src.Close()

	return true
}
