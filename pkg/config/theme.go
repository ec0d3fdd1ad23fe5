package config

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Theme represents configurable colors for the text area, bars, and syntax classes.
type Theme struct {
	TextDefault tcell.Color
	LineNumber  tcell.Color

	// Status bar; the message bar uses MessageForeground on the default background.
	StatusBackground  tcell.Color
	StatusForeground  tcell.Color
	MessageForeground tcell.Color

	// Active find match.
	HighlightMatchBG tcell.Color
	HighlightMatchFG tcell.Color

	// Syntax classes by name (number, string, comment, keyword1, ...).
	SyntaxColors map[string]tcell.Color
}

// DefaultTheme uses terminal defaults and the ANSI palette so the editor
// follows the user's terminal colors.
func DefaultTheme() Theme {
	return Theme{
		TextDefault: tcell.ColorDefault,
		LineNumber:  tcell.ColorGray,

		StatusBackground:  tcell.ColorSilver,
		StatusForeground:  tcell.ColorBlack,
		MessageForeground: tcell.ColorDefault,

		HighlightMatchBG: tcell.ColorNavy,
		HighlightMatchFG: tcell.ColorDefault,

		SyntaxColors: map[string]tcell.Color{
			"number":        tcell.ColorMaroon,
			"string":        tcell.ColorGreen,
			"block_string":  tcell.ColorGreen,
			"comment":       tcell.ColorTeal,
			"block_comment": tcell.ColorTeal,
			"keyword1":      tcell.ColorOlive,
			"keyword2":      tcell.ColorPurple,
		},
	}
}

// BuiltinThemes exposes the presets by name.
var BuiltinThemes = map[string]Theme{
	"default": DefaultTheme(),
	"dark": {
		TextDefault: tcell.ColorWhite,
		LineNumber:  tcell.ColorSilver,

		StatusBackground:  tcell.ColorGray,
		StatusForeground:  tcell.ColorWhite,
		MessageForeground: tcell.ColorWhite,

		HighlightMatchBG: tcell.ColorDarkOliveGreen,
		HighlightMatchFG: tcell.ColorWhite,

		SyntaxColors: map[string]tcell.Color{
			"number":        tcell.ColorLightCoral,
			"string":        tcell.ColorLightGreen,
			"block_string":  tcell.ColorLightGreen,
			"comment":       tcell.ColorSilver,
			"block_comment": tcell.ColorSilver,
			"keyword1":      tcell.ColorLightYellow,
			"keyword2":      tcell.ColorLightBlue,
		},
	},
	"mono": {
		TextDefault:       tcell.ColorDefault,
		LineNumber:        tcell.ColorDefault,
		StatusBackground:  tcell.ColorDefault,
		StatusForeground:  tcell.ColorDefault,
		MessageForeground: tcell.ColorDefault,
		HighlightMatchBG:  tcell.ColorDefault,
		HighlightMatchFG:  tcell.ColorDefault,
		SyntaxColors:      map[string]tcell.Color{},
	},
}

// SyntaxColor returns the color for a syntax class name, or TextDefault.
func (t Theme) SyntaxColor(class string) tcell.Color {
	if c, ok := t.SyntaxColors[class]; ok {
		return c
	}
	return t.TextDefault
}

// ParseColor returns a tcell.Color from a name or hex like "#aabbcc".
// If parsing fails, it returns the provided fallback.
func ParseColor(s string, fallback tcell.Color) tcell.Color {
	if s == "" {
		return fallback
	}
	// tcell.GetColor supports W3C names or #RRGGBB (case-insensitive)
	c := tcell.GetColor(strings.ToLower(s))
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
