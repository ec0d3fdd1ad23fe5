package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestParseKeybinding(t *testing.T) {
	kb, err := ParseKeybinding("Ctrl+X")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	ev := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModCtrl)
	if !kb.Matches(ev) {
		t.Fatalf("expected match for Ctrl+X")
	}
	if !kb.Matches(tcell.NewEventKey(tcell.KeyCtrlX, 0, tcell.ModCtrl)) {
		t.Fatalf("expected match for KeyCtrlX")
	}
	if kb.String() != "Ctrl+X" {
		t.Fatalf("unexpected String: %q", kb.String())
	}
}

func TestParseKeybinding_Invalid(t *testing.T) {
	for _, s := range []string{"Ctrl+", "Alt+X", "Ctrl+1", "Ctrl+M", "X"} {
		if _, err := ParseKeybinding(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.ini"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TabStop != 4 || cfg.QuitTimes != 2 || cfg.MessageDuration != 3*time.Second || !cfg.ShowLineNumbers {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	data := "# editor\n; comment\n\ntab_stop = 8\nquit_times=3\nmessage_duration = 5\nshow_line_numbers = false\ntheme = dark\nkey_quit = Ctrl+W\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TabStop != 8 || cfg.QuitTimes != 3 || cfg.MessageDuration != 5*time.Second || cfg.ShowLineNumbers {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Theme != "dark" {
		t.Fatalf("expected dark theme, got %q", cfg.Theme)
	}
	ev := tcell.NewEventKey(tcell.KeyCtrlW, 0, tcell.ModCtrl)
	if !cfg.Keymap["quit"].Matches(ev) {
		t.Fatalf("expected remapped quit to Ctrl+W")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cases := map[string]string{
		"unknown key":    "colour = red\n",
		"zero tab":       "tab_stop = 0\n",
		"bad bool":       "show_line_numbers = maybe\n",
		"missing equals": "tab_stop\n",
		"unknown action": "key_fly = Ctrl+Y\n",
		"unknown theme":  "theme = neon\n",
	}
	for name, data := range cases {
		path := filepath.Join(t.TempDir(), FileName)
		if err := os.WriteFile(path, []byte("tab_stop = 2\n"+data), 0644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		_, err := Load(path)
		var ce *Error
		if !errors.As(err, &ce) {
			t.Fatalf("%s: expected *Error, got %v", name, err)
		}
		if ce.Line != 2 || ce.Path != path {
			t.Fatalf("%s: unexpected location %s:%d", name, ce.Path, ce.Line)
		}
	}
}

func TestParseINISkipsCommentsAndKeepsValue(t *testing.T) {
	var got []string
	err := ParseINI(strings.NewReader("a = 1\n# x = 2\n  ; y\nb= x, y \n"), func(k, v string) error {
		got = append(got, k+"|"+v)
		return nil
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"a| 1", "b| x, y"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestParseList(t *testing.T) {
	got := ParseList(` fn , let,, mut `)
	if len(got) != 3 || got[0] != "fn" || got[1] != "let" || got[2] != "mut" {
		t.Fatalf("unexpected list %q", got)
	}
}

func TestParseFields(t *testing.T) {
	got, err := ParseFields(" /* , */ ", 2)
	if err != nil || len(got) != 2 || got[0] != "/*" || got[1] != "*/" {
		t.Fatalf("got %q, %v", got, err)
	}
	for _, v := range []string{"/*,,*/", "/*", "/*, ", ""} {
		if _, err := ParseFields(v, 2); err == nil {
			t.Fatalf("%q: expected error", v)
		}
	}
}
