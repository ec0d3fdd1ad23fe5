package buffer

import (
	"strings"
	"unicode/utf8"

	"example.com/rabi/pkg/search"
	"example.com/rabi/pkg/syntax"
	"github.com/mattn/go-runewidth"
)

// Row is one line of text: its raw bytes, their rendered form, the maps
// between byte offsets and render columns, and the highlight result.
//
// C2R has len(Chars)+1 entries and maps a byte offset to the render column
// where its character starts; R2C has Width()+1 entries and maps a render
// column to the byte offset of the character drawn there. Both end with a
// sentinel (total width, total length) and are rebuilt together by Update.
type Row struct {
	Chars  []byte
	Render string
	C2R    []int
	R2C    []int
	// Colors holds one class per byte of Render.
	Colors   []syntax.Class
	EndState syntax.HlState
	// Match is the render-column span of the active find match, if any.
	Match *search.Range

	// highlighted is false until the first Update; the cascade never
	// stops at a row that has no previous end state.
	highlighted bool
}

// NewRow returns a row holding chars. It must be updated before use.
func NewRow(chars []byte) *Row {
	return &Row{Chars: chars, C2R: []int{0}, R2C: []int{0}}
}

// Update rebuilds Render, C2R, R2C and the highlight of the row, starting
// the highlighter in state in. It returns the row's new end state.
func (r *Row) Update(rules *syntax.Rules, in syntax.HlState, tab int) syntax.HlState {
	if tab < 1 {
		tab = 1
	}
	var sb strings.Builder
	sb.Grow(len(r.Chars))
	c2r := r.C2R[:0]
	r2c := r.R2C[:0]
	cx, rx := 0, 0
	for cx < len(r.Chars) {
		ch, size := utf8.DecodeRune(r.Chars[cx:])
		var width int
		if ch == '\t' {
			width = tab - rx%tab
			sb.WriteString(strings.Repeat(" ", width))
		} else {
			// Invalid bytes decode as one-byte RuneError and render as U+FFFD.
			width = runewidth.RuneWidth(ch)
			if width < 1 {
				width = 1
			}
			sb.WriteRune(ch)
		}
		for i := 0; i < size; i++ {
			c2r = append(c2r, rx)
		}
		for i := 0; i < width; i++ {
			r2c = append(r2c, cx)
		}
		cx += size
		rx += width
	}
	r.C2R = append(c2r, rx)
	r.R2C = append(r2c, cx)
	r.Render = sb.String()
	r.Colors, r.EndState = highlight(r.Render, rules, in, r.Colors)
	r.highlighted = true
	return r.EndState
}

// Width returns the render width of the row in columns.
func (r *Row) Width() int { return r.C2R[len(r.C2R)-1] }

// RenderX maps byte offset cx to its render column, clamping cx to the row.
func (r *Row) RenderX(cx int) int {
	if cx < 0 {
		cx = 0
	}
	if cx >= len(r.C2R) {
		cx = len(r.C2R) - 1
	}
	return r.C2R[cx]
}

// CharX maps render column rx to the byte offset of the character drawn
// there, clamping rx to the row.
func (r *Row) CharX(rx int) int {
	if rx < 0 {
		rx = 0
	}
	if rx >= len(r.R2C) {
		rx = len(r.R2C) - 1
	}
	return r.R2C[rx]
}

// CharSize returns the byte length of the character occupying render column
// rx: the distance to the next differing R2C entry, or 1 when there is none.
func (r *Row) CharSize(rx int) int {
	if rx < 0 || rx >= len(r.R2C) {
		return 1
	}
	cx0 := r.R2C[rx]
	for _, cx := range r.R2C[rx+1:] {
		if cx != cx0 {
			return cx - cx0
		}
	}
	return 1
}
