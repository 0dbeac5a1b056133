// SPDX-License-Identifier: EPL-2.0

package sound

import (
	"errors"
	"io"
	"math"
	"testing"
)

func TestCursor_ReadSeek(t *testing.T) {
	t.Parallel()

	c := New([]byte("0123456789")).Cursor()

	if pos, err := c.Seek(4, io.SeekStart); pos != 4 || err != nil {
		t.Fatalf("Seek(4, start) = %d, %v", pos, err)
	}
	if pos, err := c.Seek(-1, io.SeekCurrent); pos != 3 || err != nil {
		t.Fatalf("Seek(-1, current) = %d, %v", pos, err)
	}

	buf := make([]byte, 2)
	if n, err := c.Read(buf); n != 2 || err != nil || string(buf) != "34" {
		t.Errorf("Read() = %d, %v, %q", n, err, buf)
	}

	if pos, err := c.Seek(-2, io.SeekEnd); pos != 8 || err != nil {
		t.Fatalf("Seek(-2, end) = %d, %v", pos, err)
	}
	rest, err := io.ReadAll(c)
	if err != nil || string(rest) != "89" {
		t.Errorf("ReadAll() = %q, %v", rest, err)
	}
	if n, err := c.Read(buf); n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("Read() at end = %d, %v, want 0, EOF", n, err)
	}

	if _, err := c.Seek(-20, io.SeekCurrent); err == nil {
		t.Error("Seek() before start error = nil")
	}
	if _, err := c.Seek(0, 42); err == nil {
		t.Error("Seek() with bad whence error = nil")
	}
}

func TestCursor_Fraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		size    int
		f       float64
		wantPos int64
	}{
		{"start", 101, 0, 0},
		{"middle", 101, 0.5, 50},
		{"end lands on last byte", 101, 1, 100},
		{"clamped high", 101, 3, 100},
		{"clamped low", 101, -1, 0},
		{"empty", 0, 0.7, 0},
		{"NaN is the start", 101, math.NaN(), 0},
		{"+Inf clamped", 101, math.Inf(1), 100},
		{"-Inf clamped", 101, math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := New(make([]byte, tt.size)).Cursor()
			c.SetFraction(tt.f)
			if c.Position() != tt.wantPos {
				t.Errorf("Position() = %d, want %d", c.Position(), tt.wantPos)
			}
		})
	}
}

func TestCursor_SetPosition(t *testing.T) {
	t.Parallel()

	c := New(make([]byte, 200)).Cursor()

	c.SetPosition(50)
	if got := c.Fraction(); got != 0.25 {
		t.Errorf("Fraction() = %v, want 0.25", got)
	}

	c.SetPosition(1000)
	if c.Position() != 200 || c.Fraction() != 1 {
		t.Errorf("SetPosition(1000) = %d (%v), want 200 (1)", c.Position(), c.Fraction())
	}

	c.SetPosition(-5)
	if c.Position() != 0 {
		t.Errorf("SetPosition(-5) = %d, want 0", c.Position())
	}

	if New(nil).Cursor().Fraction() != 0 {
		t.Error("Fraction() of empty data != 0")
	}
}
