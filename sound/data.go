// SPDX-License-Identifier: EPL-2.0

// Package sound holds whole audio files in memory.
//
// A Data never changes after it is built, so any number of players,
// cursors and decoders may share one without copying or locking.
package sound

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/ik5/scrubber/audio"
)

// Data is an immutable in-memory copy of an encoded audio file.
type Data struct {
	b []byte
}

// New wraps a copy of b. The bytes are not validated.
func New(b []byte) *Data {
	return &Data{b: bytes.Clone(b)}
}

// Load reads the whole file at path.
func Load(path string) (*Data, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return &Data{b: b}, nil
}

// FromReader reads r to the end.
func FromReader(r io.Reader) (*Data, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return &Data{b: b}, nil
}

// Len is the size of the encoded file in bytes.
func (d *Data) Len() int64 { return int64(len(d.b)) }

// NewReader returns an independent reader positioned at byte 0.
func (d *Data) NewReader() *bytes.Reader { return bytes.NewReader(d.b) }

// Cursor returns a new read position at byte 0.
func (d *Data) Cursor() *Cursor { return &Cursor{data: d} }

// Probe finds a decoder in reg for the data and opens it at frame 0.
func (d *Data) Probe(reg *audio.Registry) (string, audio.Source, error) {
	return reg.Probe(d.b)
}

// CanDecode reports whether any decoder in reg accepts the data. Probing
// runs over a throwaway reader, so nothing about d changes.
func (d *Data) CanDecode(reg *audio.Registry) bool {
	return reg.CanDecode(d.b)
}
