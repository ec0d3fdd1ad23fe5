package config

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ImportTheme reads a Base16 YAML scheme (keys base00..base0F) and converts
// it to a Theme.
func ImportTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, err
	}
	content := string(data)
	if !strings.Contains(strings.ToLower(content), "base00:") {
		return Theme{}, errors.New("unrecognized theme format: " + filepath.Base(path))
	}
	return importBase16(content), nil
}

var reKVHex = regexp.MustCompile(`^\s*([A-Za-z0-9_.-]+)\s*:\s*['\"]?([#0-9a-fA-Fx]{6,8})['\"]?\s*$`)

// hexColor converts "#rrggbb", "0xrrggbb" or "rrggbb" to a color.
func hexColor(v string, fallback tcell.Color) tcell.Color {
	v = strings.ToLower(strings.Trim(strings.TrimSpace(v), "'\""))
	if h, ok := strings.CutPrefix(v, "#"); ok {
		v = h
	} else if h, ok := strings.CutPrefix(v, "0x"); ok {
		v = h
	}
	if len(v) != 6 {
		return fallback
	}
	if _, err := strconv.ParseUint(v, 16, 32); err != nil {
		return fallback
	}
	return ParseColor("#"+v, fallback)
}

func importBase16(s string) Theme {
	bases := map[string]string{}
	scanner := bufio.NewScanner(strings.NewReader(s))
	for scanner.Scan() {
		m := reKVHex.FindStringSubmatch(scanner.Text())
		if len(m) == 3 && strings.HasPrefix(strings.ToLower(m[1]), "base") {
			bases[strings.ToLower(m[1])] = m[2]
		}
	}
	t := DefaultTheme()
	get := func(k string, fb tcell.Color) tcell.Color { return hexColor(bases[k], fb) }

	t.TextDefault = get("base05", t.TextDefault)
	t.LineNumber = get("base03", t.LineNumber)
	t.StatusBackground = get("base02", t.StatusBackground)
	t.StatusForeground = get("base06", t.StatusForeground)
	t.MessageForeground = t.TextDefault
	t.HighlightMatchBG = get("base0a", t.HighlightMatchBG)
	t.HighlightMatchFG = get("base00", t.HighlightMatchFG)

	syn := make(map[string]tcell.Color, len(t.SyntaxColors))
	for k, v := range t.SyntaxColors {
		syn[k] = v
	}
	syn["number"] = get("base09", syn["number"])
	syn["string"] = get("base0b", syn["string"])
	syn["block_string"] = syn["string"]
	syn["comment"] = get("base03", syn["comment"])
	syn["block_comment"] = syn["comment"]
	syn["keyword1"] = get("base0e", syn["keyword1"])
	syn["keyword2"] = get("base0d", syn["keyword2"])
	t.SyntaxColors = syn
	return t
}
