package app

import (
	"strings"
	"testing"

	"example.com/rabi/pkg/keys"
	"github.com/gdamore/tcell/v2"
)

func numberedRows(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString("row\n")
	}
	return b.String()
}

// With 12 screen rows the text area is 10 rows high.
func TestPageDownFormula(t *testing.T) {
	r := newTestRunner(t, numberedRows(100))
	if r.textRows != 10 {
		t.Fatalf("text rows %d, want 10", r.textRows)
	}
	steps := []struct {
		key       tcell.Key
		y, offset int
	}{
		{tcell.KeyPgDn, 19, 10},
		{tcell.KeyPgDn, 29, 20},
		{tcell.KeyPgUp, 10, 10},
		{tcell.KeyPgUp, 0, 0},
		{tcell.KeyPgUp, 0, 0},
	}
	for i, s := range steps {
		r.HandleKey(key(s.key))
		if r.Cursor.Y != s.y || r.Cursor.RowOffset != s.offset {
			t.Fatalf("step %d: y=%d offset=%d, want y=%d offset=%d", i, r.Cursor.Y, r.Cursor.RowOffset, s.y, s.offset)
		}
	}
}

func TestPageDownStopsPastLastRow(t *testing.T) {
	r := newTestRunner(t, numberedRows(25))
	r.Cursor.Y, r.Cursor.RowOffset = 15, 10
	r.HandleKey(key(tcell.KeyPgDn))
	if r.Cursor.Y != 25 {
		t.Fatalf("y=%d, want 25 (the line past the end)", r.Cursor.Y)
	}
	if r.Cursor.RowOffset != 16 {
		t.Fatalf("offset=%d, want 16", r.Cursor.RowOffset)
	}
}

func TestArrowsWrapAcrossRows(t *testing.T) {
	r := newTestRunner(t, "ab\ncd")
	r.HandleKey(key(tcell.KeyLeft))
	if r.Cursor.X != 0 || r.Cursor.Y != 0 {
		t.Fatalf("left at origin moved to %+v", r.Cursor)
	}
	r.HandleKey(key(tcell.KeyEnd))
	r.HandleKey(key(tcell.KeyRight))
	if r.Cursor.X != 0 || r.Cursor.Y != 1 {
		t.Fatalf("right at end of row: %+v", r.Cursor)
	}
	r.HandleKey(key(tcell.KeyLeft))
	if r.Cursor.X != 2 || r.Cursor.Y != 0 {
		t.Fatalf("left at start of row: %+v", r.Cursor)
	}
	r.HandleKey(key(tcell.KeyDown))
	r.HandleKey(key(tcell.KeyEnd))
	r.HandleKey(key(tcell.KeyRight))
	if r.Cursor.Y != 2 || r.Cursor.X != 0 {
		t.Fatalf("right at end of last row must reach the line past the end: %+v", r.Cursor)
	}
	r.HandleKey(key(tcell.KeyRight))
	r.HandleKey(key(tcell.KeyDown))
	if r.Cursor.Y != 2 {
		t.Fatalf("cursor moved beyond the line past the end: %+v", r.Cursor)
	}
}

func TestArrowsStepOverMultibyte(t *testing.T) {
	r := newTestRunner(t, "é世x")
	r.HandleKey(key(tcell.KeyRight))
	if r.Cursor.X != 2 {
		t.Fatalf("x=%d after é, want 2", r.Cursor.X)
	}
	r.HandleKey(key(tcell.KeyRight))
	if r.Cursor.X != 5 || r.rx() != 3 {
		t.Fatalf("x=%d rx=%d after 世, want 5 and 3", r.Cursor.X, r.rx())
	}
	r.HandleKey(key(tcell.KeyLeft))
	if r.Cursor.X != 2 {
		t.Fatalf("x=%d back over 世, want 2", r.Cursor.X)
	}
}

func TestUpDownKeepRenderColumn(t *testing.T) {
	r := newTestRunner(t, "\tx\nabcdefgh\nab")
	r.HandleKey(key(tcell.KeyDown))
	r.HandleKey(key(tcell.KeyEnd))
	r.Cursor.X = 4
	r.HandleKey(key(tcell.KeyUp))
	// Render column 4 lies on 'x' after the tab.
	if r.Cursor.X != 1 || r.Cursor.Y != 0 {
		t.Fatalf("up: %+v", r.Cursor)
	}
	r.HandleKey(key(tcell.KeyDown))
	if r.Cursor.X != 4 {
		t.Fatalf("down: x=%d, want 4", r.Cursor.X)
	}
	r.HandleKey(key(tcell.KeyDown))
	if r.Cursor.X != 2 {
		t.Fatalf("down to a shorter row: x=%d, want 2", r.Cursor.X)
	}
}

func TestCtrlArrowsMoveByWord(t *testing.T) {
	r := newTestRunner(t, "foo  bar baz")
	right := tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModCtrl)
	left := tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModCtrl)
	for _, want := range []int{3, 8, 12} {
		r.HandleKey(right)
		if r.Cursor.X != want {
			t.Fatalf("ctrl+right: x=%d, want %d", r.Cursor.X, want)
		}
	}
	for _, want := range []int{9, 5, 0} {
		r.HandleKey(left)
		if r.Cursor.X != want {
			t.Fatalf("ctrl+left: x=%d, want %d", r.Cursor.X, want)
		}
	}
}

func TestDecodedCtrlArrow(t *testing.T) {
	r := newTestRunner(t, "foo bar")
	d := keys.NewDecoder(strings.NewReader("\x1b[1;5C"))
	ev, err := d.ReadKey()
	if err != nil {
		t.Fatal(err)
	}
	r.HandleKey(ev)
	if r.Cursor.X != 3 {
		t.Fatalf("x=%d, want 3", r.Cursor.X)
	}
}

func TestScrollFollowsCursor(t *testing.T) {
	r := newTestRunner(t, strings.Repeat("x", 200)+"\n"+numberedRows(30))
	r.HandleKey(key(tcell.KeyEnd))
	// 80 columns minus the 4-column gutter for 31 rows.
	if r.textCols != 76 {
		t.Fatalf("text cols %d, want 76", r.textCols)
	}
	if r.Cursor.ColOffset != 200-75 {
		t.Fatalf("col offset %d, want %d", r.Cursor.ColOffset, 200-75)
	}
	r.HandleKey(key(tcell.KeyHome))
	if r.Cursor.ColOffset != 0 {
		t.Fatalf("col offset %d after Home", r.Cursor.ColOffset)
	}
	for i := 0; i < 15; i++ {
		r.HandleKey(key(tcell.KeyDown))
	}
	if r.Cursor.RowOffset != 6 {
		t.Fatalf("row offset %d, want 6", r.Cursor.RowOffset)
	}
}
