// SPDX-License-Identifier: EPL-2.0

// Package marks keeps bookmarks into a sound as normalized positions in
// [0, 1] and finds the neighbours of a play position.
package marks

import (
	"slices"

	"github.com/samber/lo"
)

// PlayingBackoff is how far before the current position Prev starts
// looking while playing. Without it, pressing Prev right after passing a
// mark would land on that same mark again.
const PlayingBackoff = 0.05

// List is a sorted set of marks.
type List struct {
	marks []float64
}

// New builds a list from positions. Values are clamped to [0, 1] and
// duplicates dropped.
func New(positions ...float64) *List {
	l := &List{}
	l.marks = lo.Uniq(lo.Map(positions, func(p float64, _ int) float64 {
		return clamp(p)
	}))
	slices.Sort(l.marks)

	return l
}

func clamp(p float64) float64 { return min(max(p, 0), 1) }

func (l *List) Len() int { return len(l.marks) }

// All returns the marks in ascending order.
func (l *List) All() []float64 { return slices.Clone(l.marks) }

// Get returns mark i.
func (l *List) Get(i int) (float64, bool) {
	if i < 0 || i >= len(l.marks) {
		return 0, false
	}
	return l.marks[i], true
}

// Add inserts pos. It reports false when pos is already marked.
func (l *List) Add(pos float64) bool {
	pos = clamp(pos)
	if lo.Contains(l.marks, pos) {
		return false
	}

	i, _ := slices.BinarySearch(l.marks, pos)
	l.marks = slices.Insert(l.marks, i, pos)

	return true
}

// Remove deletes mark i.
func (l *List) Remove(i int) bool {
	if i < 0 || i >= len(l.marks) {
		return false
	}
	l.marks = slices.Delete(l.marks, i, i+1)

	return true
}

// Next is the first mark after pos, or the end when there is none.
func (l *List) Next(pos float64) float64 {
	return lo.FindOrElse(l.marks, 1, func(m float64) bool { return m > pos })
}

// Prev is the last mark before pos, or the start when there is none.
// While playing the search starts PlayingBackoff earlier.
func (l *List) Prev(pos float64, playing bool) float64 {
	if playing {
		pos -= PlayingBackoff
	}

	m, _, ok := lo.FindLastIndexOf(l.marks, func(m float64) bool { return m < pos })
	if !ok {
		return 0
	}
	return m
}
