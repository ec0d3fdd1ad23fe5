package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
)

// FileName is the editor configuration file looked up in the config directory.
const FileName = "rabi.ini"

// Keybinding represents a single key combination.
type Keybinding struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// Config holds user configuration values.
type Config struct {
	// TabStop is the width of a tab stop in render columns.
	TabStop int
	// QuitTimes is how many quit presses are needed to leave with unsaved changes.
	QuitTimes int
	// MessageDuration is how long a status message stays visible.
	MessageDuration time.Duration
	ShowLineNumbers bool
	// Theme names one of BuiltinThemes; ThemeFile, if set, overrides it.
	Theme     string
	ThemeFile string
	Keymap    map[string]Keybinding
}

// Default returns a Config with the builtin values.
func Default() *Config {
	return &Config{
		TabStop:         4,
		QuitTimes:       2,
		MessageDuration: 3 * time.Second,
		ShowLineNumbers: true,
		Theme:           "default",
		Keymap:          DefaultKeymap(),
	}
}

// DefaultKeymap provides builtin command bindings.
func DefaultKeymap() map[string]Keybinding {
	return map[string]Keybinding{
		"quit":        mustParse("Ctrl+Q"),
		"save":        mustParse("Ctrl+S"),
		"find":        mustParse("Ctrl+F"),
		"goto":        mustParse("Ctrl+G"),
		"execute":     mustParse("Ctrl+E"),
		"copy":        mustParse("Ctrl+C"),
		"cut":         mustParse("Ctrl+X"),
		"paste":       mustParse("Ctrl+V"),
		"duplicate":   mustParse("Ctrl+D"),
		"remove_line": mustParse("Ctrl+R"),
		"refresh":     mustParse("Ctrl+L"),
	}
}

// Load loads configuration from the provided path. If the file does not
// exist, defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	err := ParseINIFile(path, func(key, value string) error {
		switch key {
		case "tab_stop":
			v, err := ParseUint(value)
			if err != nil {
				return err
			}
			if v == 0 {
				return errors.New("tab_stop must be greater than 0")
			}
			cfg.TabStop = v
		case "quit_times":
			v, err := ParseUint(value)
			if err != nil {
				return err
			}
			if v == 0 {
				return errors.New("quit_times must be greater than 0")
			}
			cfg.QuitTimes = v
		case "message_duration":
			v, err := ParseUint(value)
			if err != nil {
				return err
			}
			cfg.MessageDuration = time.Duration(v) * time.Second
		case "show_line_numbers":
			v, err := ParseBool(value)
			if err != nil {
				return err
			}
			cfg.ShowLineNumbers = v
		case "theme":
			name := strings.TrimSpace(value)
			if _, ok := BuiltinThemes[name]; !ok {
				return fmt.Errorf("unknown theme %q", name)
			}
			cfg.Theme = name
		case "theme_file":
			cfg.ThemeFile = strings.TrimSpace(value)
		default:
			action, ok := strings.CutPrefix(key, "key_")
			if !ok {
				return fmt.Errorf("unknown key %q", key)
			}
			if _, known := cfg.Keymap[action]; !known {
				return fmt.Errorf("unknown action %q", action)
			}
			kb, err := ParseKeybinding(strings.TrimSpace(value))
			if err != nil {
				return err
			}
			cfg.Keymap[action] = kb
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

// Dir returns the user configuration directory for rabi:
// $XDG_CONFIG_HOME/rabi, falling back to ~/.config/rabi.
func Dir() string {
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		return filepath.Join(x, "rabi")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "rabi")
}

// LoadDefault attempts to read rabi.ini from dir, or from Dir() when dir is empty.
func LoadDefault(dir string) (*Config, error) {
	if dir == "" {
		dir = Dir()
	}
	if dir == "" {
		return Default(), nil
	}
	return Load(filepath.Join(dir, FileName))
}

// ResolveTheme returns the theme selected by the config.
func (c *Config) ResolveTheme() (Theme, error) {
	if c.ThemeFile != "" {
		return ImportTheme(c.ThemeFile)
	}
	if t, ok := BuiltinThemes[c.Theme]; ok {
		return t, nil
	}
	return DefaultTheme(), nil
}

// ParseKeybinding converts a textual key description like "Ctrl+S" into a
// Keybinding. Currently only Ctrl+<letter> is supported; Ctrl+H, Ctrl+I and
// Ctrl+M are rejected because terminals send them as Backspace, Tab and Enter.
func ParseKeybinding(s string) (Keybinding, error) {
	parts := strings.Split(s, "+")
	if len(parts) != 2 {
		return Keybinding{}, errors.New("invalid keybinding: " + s)
	}
	if !strings.EqualFold(parts[0], "ctrl") {
		return Keybinding{}, errors.New("invalid modifier in keybinding: " + s)
	}
	r := []rune(strings.ToLower(parts[1]))
	if len(r) != 1 || r[0] < 'a' || r[0] > 'z' {
		return Keybinding{}, errors.New("invalid key in keybinding: " + s)
	}
	switch r[0] {
	case 'h', 'i', 'm':
		return Keybinding{}, errors.New("reserved key in keybinding: " + s)
	}
	return Keybinding{Key: tcell.KeyRune, Rune: r[0], Mod: tcell.ModCtrl}, nil
}

func mustParse(s string) Keybinding {
	kb, _ := ParseKeybinding(s)
	return kb
}

// String formats the binding the way ParseKeybinding accepts it.
func (k Keybinding) String() string {
	if k.Key == tcell.KeyRune && k.Mod == tcell.ModCtrl {
		return "Ctrl+" + strings.ToUpper(string(k.Rune))
	}
	return tcell.KeyNames[k.Key]
}

// Matches returns true if the binding matches the provided event.
func (k Keybinding) Matches(ev *tcell.EventKey) bool {
	if ev == nil {
		return false
	}
	if k.Key == ev.Key() && k.Rune == ev.Rune() && k.Mod == ev.Modifiers() {
		return true
	}
	if k.Key == tcell.KeyRune && k.Mod == tcell.ModCtrl && k.Rune >= 'a' && k.Rune <= 'z' {
		// Control keys arrive either as KeyCtrlX or as the raw ASCII code.
		off := tcell.Key(k.Rune - 'a')
		return ev.Key() == tcell.KeyCtrlA+off || ev.Key() == tcell.KeySOH+off
	}
	return false
}
