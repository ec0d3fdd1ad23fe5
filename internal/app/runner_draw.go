package app

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"example.com/rabi/pkg/buffer"
	"example.com/rabi/pkg/syntax"
	"github.com/charmbracelet/x/ansi"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

const (
	sgrReset   = "\x1b[m"
	sgrReverse = "\x1b[7m"
	clearLine  = "\x1b[K"
)

// refresh writes one complete frame to the terminal.
func (r *Runner) refresh() error {
	r.layout()
	r.scroll()
	_, err := r.Term.Write(r.render())
	return err
}

// render builds a frame: the text area, the status bar, the message bar
// and the final cursor position.
func (r *Runner) render() []byte {
	var b bytes.Buffer
	b.WriteString("\x1b[?25l\x1b[H")
	r.drawRows(&b)
	r.drawStatusBar(&b)
	r.drawMessageBar(&b)
	row, col := r.cursorPosition()
	fmt.Fprintf(&b, "\x1b[%d;%dH\x1b[?25h", row+1, col+1)
	return b.Bytes()
}

// cursorPosition is the zero-based screen cell of the cursor. Prompts
// other than search put it at the end of the input.
func (r *Runner) cursorPosition() (int, int) {
	if r.Command != nil {
		if _, finding := r.Command.(*FindCommand); !finding {
			w := ansi.StringWidth(r.Command.Prompt() + r.Command.Text())
			return r.textRows + 1, min(w, r.screenCols-1)
		}
	}
	return r.Cursor.Y - r.Cursor.RowOffset, r.rx() - r.Cursor.ColOffset + r.leftPad
}

func (r *Runner) drawRows(b *bytes.Buffer) {
	for i := 0; i < r.textRows; i++ {
		y := r.Cursor.RowOffset + i
		row := r.Buf.Row(y)
		if r.leftPad > 0 {
			if row != nil {
				b.WriteString(sgrFG(r.Theme.LineNumber))
				fmt.Fprintf(b, "%*d ", r.leftPad-1, y+1)
				b.WriteString(sgrReset)
			} else {
				fmt.Fprintf(b, "%*s", r.leftPad, "")
			}
		}
		if row == nil {
			b.WriteString("~")
		} else {
			r.drawRow(b, row)
		}
		b.WriteString(clearLine + "\r\n")
	}
}

// drawRow writes the visible columns of row with its colors. A wide
// character cut by the left edge is replaced by spaces.
func (r *Runner) drawRow(b *bytes.Buffer, row *buffer.Row) {
	left, right := r.Cursor.ColOffset, r.Cursor.ColOffset+r.textCols
	cur := ""
	col := 0
	for i, w := 0, 0; i < len(row.Render) && col < right; i += w {
		ch, size := utf8.DecodeRuneInString(row.Render[i:])
		w = size
		width := max(runewidth.RuneWidth(ch), 1)
		start := col
		col += width
		if col <= left {
			continue
		}
		if start < left || col > right {
			b.WriteString(sgrReset)
			cur = ""
			for c := max(start, left); c < min(col, right); c++ {
				b.WriteByte(' ')
			}
			continue
		}
		style := r.styleFor(row.Colors[i], row.Match != nil && row.Match.Contains(start))
		if ch < 0x20 || ch == 0x7f {
			// Control characters show as reversed ^X letters.
			sym := byte('?')
			if ch < 0x20 {
				sym = '@' + byte(ch)
			}
			b.WriteString(sgrReverse)
			b.WriteByte(sym)
			b.WriteString(sgrReset)
			cur = ""
			continue
		}
		if style != cur {
			b.WriteString(sgrReset + style)
			cur = style
		}
		b.WriteRune(ch)
	}
	b.WriteString(sgrReset)
}

// styleFor returns the SGR sequence for a highlight class.
func (r *Runner) styleFor(class syntax.Class, match bool) string {
	if match {
		return sgrPair(r.Theme.HighlightMatchFG, r.Theme.HighlightMatchBG)
	}
	return sgrFG(r.Theme.SyntaxColor(class.String()))
}

func (r *Runner) drawStatusBar(b *bytes.Buffer) {
	name := "[No Name]"
	if r.FilePath != "" {
		name = filepath.Base(r.FilePath)
	}
	dirty := ""
	if r.Dirty {
		dirty = " (modified)"
	}
	left := fmt.Sprintf("%s%s - %d lines", name, dirty, r.Buf.Len())
	lang := "no ft"
	if rules := r.Buf.Rules(); rules != nil {
		lang = rules.Name
	}
	right := fmt.Sprintf("%s | %d:%d", lang, r.Cursor.Y+1, r.rx()+1)

	width := r.screenCols
	left = ansi.Truncate(left, width, "…")
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		right, gap = "", width-ansi.StringWidth(left)
	}
	b.WriteString(sgrPair(r.Theme.StatusForeground, r.Theme.StatusBackground))
	b.WriteString(left)
	for ; gap > 0; gap-- {
		b.WriteByte(' ')
	}
	b.WriteString(right)
	b.WriteString(sgrReset + "\r\n")
}

func (r *Runner) drawMessageBar(b *bytes.Buffer) {
	b.WriteString(clearLine)
	msg := r.statusMessage()
	if r.Command != nil {
		msg = r.Command.Prompt() + r.Command.Text()
	}
	if msg == "" {
		return
	}
	b.WriteString(sgrFG(r.Theme.MessageForeground))
	b.WriteString(ansi.Truncate(ansi.Strip(msg), r.screenCols, ""))
	b.WriteString(sgrReset)
}

// sgrPair sets both colors, or reverse video when the theme leaves both to
// the terminal.
func sgrPair(fg, bg tcell.Color) string {
	if fg == tcell.ColorDefault && bg == tcell.ColorDefault {
		return sgrReverse
	}
	return sgrFG(fg) + sgrBG(bg)
}

// sgrFG and sgrBG convert a theme color to an SGR sequence: the 16 ANSI
// colors use their classic codes, the rest of the palette 38;5 and named
// or RGB colors 38;2.
func sgrFG(c tcell.Color) string { return sgrColor(c, 30, 90, 39) }

func sgrBG(c tcell.Color) string { return sgrColor(c, 40, 100, 49) }

func sgrColor(c tcell.Color, base, bright, reset int) string {
	if c == tcell.ColorDefault || !c.Valid() {
		return "\x1b[" + strconv.Itoa(reset) + "m"
	}
	if c&tcell.ColorIsRGB == 0 {
		switch idx := int(c - tcell.ColorValid); {
		case idx < 8:
			return "\x1b[" + strconv.Itoa(base+idx) + "m"
		case idx < 16:
			return "\x1b[" + strconv.Itoa(bright+idx-8) + "m"
		case idx < 256:
			return fmt.Sprintf("\x1b[%d;5;%dm", base+8, idx)
		}
	}
	red, green, blue := c.RGB()
	return fmt.Sprintf("\x1b[%d;2;%d;%d;%dm", base+8, red, green, blue)
}
