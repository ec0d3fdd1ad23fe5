package app

import (
	"example.com/rabi/pkg/buffer"
	"github.com/gdamore/tcell/v2"
)

// Cursor is the byte position in the buffer and the top-left corner of the
// viewport. Y may equal the row count: the line past the end of the file.
type Cursor struct {
	X, Y                 int
	RowOffset, ColOffset int
}

// currentRow returns the row under the cursor, or nil past the end.
func (r *Runner) currentRow() *buffer.Row { return r.Buf.Row(r.Cursor.Y) }

// rx returns the render column of the cursor.
func (r *Runner) rx() int {
	if row := r.currentRow(); row != nil {
		return row.RenderX(r.Cursor.X)
	}
	return 0
}

// clampX keeps the cursor inside the current row.
func (r *Runner) clampX() {
	n := 0
	if row := r.currentRow(); row != nil {
		n = len(row.Chars)
	}
	r.Cursor.X = min(max(r.Cursor.X, 0), n)
}

// moveToRender puts the cursor on render column rx of its row.
func (r *Runner) moveToRender(rx int) {
	if row := r.currentRow(); row != nil {
		r.Cursor.X = row.CharX(rx)
	} else {
		r.Cursor.X = 0
	}
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' }

// moveCursor handles the arrow keys; word moves skip runs of blanks and
// then runs of other bytes.
func (r *Runner) moveCursor(k tcell.Key, word bool) {
	c := &r.Cursor
	row := r.currentRow()
	switch k {
	case tcell.KeyLeft:
		switch {
		case c.X > 0 && word:
			for c.X > 0 && isSpace(row.Chars[c.X-1]) {
				c.X--
			}
			for c.X > 0 && !isSpace(row.Chars[c.X-1]) {
				c.X--
			}
		case c.X > 0:
			c.X -= row.CharSize(row.RenderX(c.X) - 1)
		case c.Y > 0:
			c.Y--
			c.X = len(r.currentRow().Chars)
		}
	case tcell.KeyRight:
		switch {
		case row != nil && c.X < len(row.Chars) && word:
			for c.X < len(row.Chars) && isSpace(row.Chars[c.X]) {
				c.X++
			}
			for c.X < len(row.Chars) && !isSpace(row.Chars[c.X]) {
				c.X++
			}
		case row != nil && c.X < len(row.Chars):
			c.X += row.CharSize(row.RenderX(c.X))
		case row != nil:
			c.X, c.Y = 0, c.Y+1
		}
	case tcell.KeyUp, tcell.KeyDown:
		rx := r.rx()
		if k == tcell.KeyUp && c.Y > 0 {
			c.Y--
		} else if k == tcell.KeyDown && c.Y < r.Buf.Len() {
			c.Y++
		}
		r.moveToRender(rx)
	}
	r.clampX()
}

// pageUp and pageDown move by one screen relative to the viewport, then
// scroll brings the viewport along.
func (r *Runner) pageUp() {
	r.Cursor.Y = max(r.Cursor.RowOffset-r.textRows, 0)
	r.clampX()
}

func (r *Runner) pageDown() {
	r.Cursor.Y = min(r.Cursor.RowOffset+2*r.textRows-1, r.Buf.Len())
	r.clampX()
}

// scroll adjusts the offsets so the cursor is inside the text area.
func (r *Runner) scroll() {
	c := &r.Cursor
	c.RowOffset = min(max(c.RowOffset, c.Y-(r.textRows-1)), c.Y)
	rx := r.rx()
	c.ColOffset = min(max(c.ColOffset, rx-(r.textCols-1)), rx)
}
