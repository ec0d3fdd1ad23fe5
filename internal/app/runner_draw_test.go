package app

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"example.com/rabi/pkg/config"
	"example.com/rabi/pkg/search"
	"github.com/gdamore/tcell/v2"
)

func TestSGRColor(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{sgrFG(tcell.ColorDefault), "\x1b[39m"},
		{sgrBG(tcell.ColorDefault), "\x1b[49m"},
		{sgrFG(tcell.ColorMaroon), "\x1b[31m"},
		{sgrFG(tcell.ColorRed), "\x1b[91m"},
		{sgrBG(tcell.ColorNavy), "\x1b[44m"},
		{sgrBG(tcell.ColorSilver), "\x1b[47m"},
		{sgrFG(tcell.PaletteColor(200)), "\x1b[38;5;200m"},
		{sgrBG(tcell.PaletteColor(17)), "\x1b[48;5;17m"},
		{sgrFG(tcell.NewRGBColor(1, 2, 3)), "\x1b[38;2;1;2;3m"},
	}
	for i, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("case %d: %q, want %q", i, tc.got, tc.want)
		}
	}
	if got := sgrPair(tcell.ColorDefault, tcell.ColorDefault); got != sgrReverse {
		t.Fatalf("default pair %q, want reverse video", got)
	}
}

// screenLines splits a frame into its screen lines with escape sequences
// removed.
func screenLines(frame []byte) []string {
	var plain strings.Builder
	s := string(frame)
	for i := 0; i < len(s); i++ {
		if s[i] != 0x1b {
			plain.WriteByte(s[i])
			continue
		}
		// Skip CSI sequences up to their final byte.
		for i++; i < len(s) && !(s[i] >= '@' && s[i] <= '~' && s[i] != '['); i++ {
		}
	}
	return strings.Split(plain.String(), "\r\n")
}

func TestRenderLayout(t *testing.T) {
	r := newTestRunner(t, "hello\n\tworld")
	r.FilePath = "/tmp/notes.txt"
	r.Dirty = true
	r.setSize(6, 50)
	r.setStatus("saved ok")
	lines := screenLines(r.render())
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6: %q", len(lines), lines)
	}
	if lines[0] != " 1 hello" || lines[1] != " 2     world" {
		t.Fatalf("text rows %q %q", lines[0], lines[1])
	}
	if lines[2] != "   ~" || lines[3] != "   ~" {
		t.Fatalf("rows past the end %q %q", lines[2], lines[3])
	}
	status := lines[4]
	if !strings.HasPrefix(status, "notes.txt (modified) - 2 lines") || !strings.HasSuffix(status, "no ft | 1:1") {
		t.Fatalf("status bar %q", status)
	}
	if len(status) != 50 {
		t.Fatalf("status bar width %d, want 50", len(status))
	}
	if lines[5] != "saved ok" {
		t.Fatalf("message bar %q", lines[5])
	}
}

func TestRenderCursorPosition(t *testing.T) {
	r := newTestRunner(t, "\tab")
	r.Cursor.X = 2
	frame := string(r.render())
	// Gutter of 3 columns, render column 5: screen column 9 (1-based).
	if !strings.HasSuffix(frame, "\x1b[1;9H\x1b[?25h") {
		t.Fatalf("cursor sequence in %q", frame[len(frame)-20:])
	}
	r.startCommand(&GoToCommand{Input: "12"})
	frame = string(r.render())
	w := len("Enter line number[:column]: 12")
	want := "\x1b[12;" + strconv.Itoa(w+1) + "H"
	if !strings.Contains(frame, want) {
		t.Fatalf("prompt cursor %q not in frame", want)
	}
}

func TestMessageExpires(t *testing.T) {
	r := newTestRunner(t, "x")
	r.setStatus("hello")
	if !strings.Contains(string(r.render()), "hello") {
		t.Fatalf("fresh message not drawn")
	}
	start := r.now()
	r.now = func() time.Time { return start.Add(r.Config.MessageDuration) }
	if strings.Contains(string(r.render()), "hello") {
		t.Fatalf("expired message drawn")
	}
}

func TestPromptReplacesMessage(t *testing.T) {
	r := newTestRunner(t, "x")
	r.setStatus("hello")
	r.startCommand(&SaveCommand{Input: "a.go"})
	lines := screenLines(r.render())
	if got := lines[len(lines)-1]; got != "Save as: a.go" {
		t.Fatalf("message bar %q", got)
	}
}

func TestRenderColorsAndMatch(t *testing.T) {
	r := newTestRunner(t, "func x // c")
	r.Buf.SetRules(goRules)
	r.Buf.Row(0).Match = &search.Range{Start: 5, End: 6}
	frame := string(r.render())
	kw := sgrFG(r.Theme.SyntaxColor("keyword1"))
	if !strings.Contains(frame, kw+"func") {
		t.Fatalf("keyword color missing")
	}
	match := sgrPair(r.Theme.HighlightMatchFG, r.Theme.HighlightMatchBG)
	if !strings.Contains(frame, match+"x") {
		t.Fatalf("match style missing")
	}
	cm := sgrFG(r.Theme.SyntaxColor("comment"))
	if !strings.Contains(frame, cm+"// c") {
		t.Fatalf("comment color missing")
	}
}

func TestRenderControlCharacters(t *testing.T) {
	r := newTestRunner(t, "a\x01b")
	frame := string(r.render())
	if !strings.Contains(frame, sgrReverse+"A"+sgrReset) {
		t.Fatalf("control byte not shown as reversed letter")
	}
}

func TestRenderHorizontalScroll(t *testing.T) {
	r := newTestRunner(t, "ab世cd")
	r.Config.ShowLineNumbers = false
	r.setSize(4, 80)
	r.Cursor.ColOffset = 3
	lines := screenLines(r.render())
	// The wide character starts at column 2 and is cut by the left edge.
	if lines[0] != " cd" {
		t.Fatalf("row %q", lines[0])
	}
	r.Cursor.ColOffset = 0
	r.setSize(4, 3)
	lines = screenLines(r.render())
	if lines[0] != "ab " {
		t.Fatalf("row cut at the right edge %q", lines[0])
	}
}

func TestMonoThemeUsesReverseVideo(t *testing.T) {
	cfg := config.Default()
	cfg.Theme = "mono"
	r, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	frame := string(r.render())
	if !strings.Contains(frame, sgrReverse+"[No Name] - 1 lines") {
		t.Fatalf("status bar not in reverse video")
	}
}
