// Package buffer holds the rows of the edited file, renders them for
// display and keeps their syntax highlighting consistent across edits.
package buffer

import (
	"example.com/rabi/pkg/syntax"
)

// Buffer is the ordered sequence of rows. It owns every Row; callers may
// read rows through Row but change text only through Buffer methods, which
// re-highlight the affected rows.
type Buffer struct {
	rows  []*Row
	rules *syntax.Rules
	tab   int
}

// New returns a buffer with a single empty row.
func New(rules *syntax.Rules, tab int) *Buffer {
	b := &Buffer{rules: rules, tab: tab}
	b.InsertRow(0, nil)
	return b
}

// Len returns the number of rows.
func (b *Buffer) Len() int { return len(b.rows) }

// Row returns row y, or nil when y is out of range.
func (b *Buffer) Row(y int) *Row {
	if y < 0 || y >= len(b.rows) {
		return nil
	}
	return b.rows[y]
}

// Line returns the raw bytes of row y.
func (b *Buffer) Line(y int) []byte {
	if r := b.Row(y); r != nil {
		return r.Chars
	}
	return nil
}

// Rules returns the active highlighting rules (nil for plain text).
func (b *Buffer) Rules() *syntax.Rules { return b.rules }

// TabStop returns the tab width used for rendering.
func (b *Buffer) TabStop() int { return b.tab }

// SetRules switches the highlighting rules and re-renders every row.
func (b *Buffer) SetRules(rules *syntax.Rules) {
	b.rules = rules
	b.UpdateAll()
}

// SetTabStop changes the tab width and re-renders every row.
func (b *Buffer) SetTabStop(tab int) {
	b.tab = tab
	b.UpdateAll()
}

// Size returns the number of bytes the buffer occupies on disk.
func (b *Buffer) Size() int {
	n := 0
	for _, r := range b.rows {
		n += len(r.Chars) + 1
	}
	return n
}

// UpdateRow re-renders row y from the end state of row y-1 and keeps going
// down while a row's end state differs from the one it had before. With
// ignoreFollowing only row y is recomputed. It returns the number of rows
// recomputed.
func (b *Buffer) UpdateRow(y int, ignoreFollowing bool) int {
	if y < 0 || y >= len(b.rows) {
		return 0
	}
	state := syntax.NormalState
	if y > 0 {
		state = b.rows[y-1].EndState
	}
	n := 0
	for ; y < len(b.rows); y++ {
		row := b.rows[y]
		prev, known := row.EndState, row.highlighted
		state = row.Update(b.rules, state, b.tab)
		n++
		if ignoreFollowing || (known && state == prev) {
			break
		}
	}
	return n
}

// UpdateAll re-renders every row from scratch.
func (b *Buffer) UpdateAll() {
	state := syntax.NormalState
	for _, row := range b.rows {
		state = row.Update(b.rules, state, b.tab)
	}
}

// InsertRow inserts a new row holding chars at index at (0..Len()).
func (b *Buffer) InsertRow(at int, chars []byte) {
	if at < 0 || at > len(b.rows) {
		return
	}
	b.rows = append(b.rows, nil)
	copy(b.rows[at+1:], b.rows[at:])
	b.rows[at] = NewRow(chars)
	b.UpdateRow(at, false)
}

// DeleteRow removes row at. The last remaining row is cleared instead so
// the buffer is never empty.
func (b *Buffer) DeleteRow(at int) {
	if at < 0 || at >= len(b.rows) {
		return
	}
	if len(b.rows) == 1 {
		b.ClearRow(0)
		return
	}
	copy(b.rows[at:], b.rows[at+1:])
	b.rows[len(b.rows)-1] = nil
	b.rows = b.rows[:len(b.rows)-1]
	b.UpdateRow(at, false)
}

// ClearRow removes every byte of row y.
func (b *Buffer) ClearRow(y int) {
	if r := b.Row(y); r != nil {
		r.Chars = r.Chars[:0]
		b.UpdateRow(y, false)
	}
}

// InsertByte inserts c before byte x of row y. When y equals Len() a new
// row holding c is appended.
func (b *Buffer) InsertByte(x, y int, c byte) {
	if y == len(b.rows) {
		b.InsertRow(y, []byte{c})
		return
	}
	r := b.Row(y)
	if r == nil {
		return
	}
	x = clamp(x, 0, len(r.Chars))
	r.Chars = append(r.Chars, 0)
	copy(r.Chars[x+1:], r.Chars[x:])
	r.Chars[x] = c
	b.UpdateRow(y, false)
}

// InsertNewline splits row y at byte x; the bytes from x on move to a new
// row below. When y equals Len() an empty row is appended.
func (b *Buffer) InsertNewline(x, y int) {
	r := b.Row(y)
	if r == nil {
		b.InsertRow(len(b.rows), nil)
		return
	}
	x = clamp(x, 0, len(r.Chars))
	if x == 0 {
		b.InsertRow(y, nil)
		return
	}
	tail := append([]byte(nil), r.Chars[x:]...)
	r.Chars = r.Chars[:x]
	b.rows = append(b.rows, nil)
	copy(b.rows[y+2:], b.rows[y+1:])
	b.rows[y+1] = NewRow(tail)
	b.UpdateRow(y, true)
	b.UpdateRow(y+1, false)
}

// DeleteChar removes the character before byte x of row y, joining row y
// onto the previous row when x is 0. It returns the resulting cursor
// position. At the position past the last row nothing is deleted and the
// cursor moves to the end of the last row.
func (b *Buffer) DeleteChar(x, y int) (int, int) {
	switch {
	case y == len(b.rows) && y > 0:
		return len(b.rows[y-1].Chars), y - 1
	case y < 0 || y >= len(b.rows):
		return x, y
	}
	r := b.rows[y]
	x = clamp(x, 0, len(r.Chars))
	if x > 0 {
		n := r.CharSize(r.RenderX(x) - 1)
		if n > x {
			n = x
		}
		r.Chars = append(r.Chars[:x-n], r.Chars[x:]...)
		b.UpdateRow(y, false)
		return x - n, y
	}
	if y == 0 {
		return 0, 0
	}
	prev := b.rows[y-1]
	newX := len(prev.Chars)
	prev.Chars = append(prev.Chars, r.Chars...)
	copy(b.rows[y:], b.rows[y+1:])
	b.rows[len(b.rows)-1] = nil
	b.rows = b.rows[:len(b.rows)-1]
	b.UpdateRow(y-1, true)
	b.UpdateRow(y, false)
	return newX, y - 1
}

// ClearMatches drops every find highlight.
func (b *Buffer) ClearMatches() {
	for _, r := range b.rows {
		r.Match = nil
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
