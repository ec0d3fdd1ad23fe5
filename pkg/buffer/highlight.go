package buffer

import (
	"strings"

	"example.com/rabi/pkg/syntax"
)

const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^`{|}~"

// isSeparator reports whether c delimits words, numbers and keywords:
// ASCII whitespace, NUL, or ASCII punctuation other than '_'.
func isSeparator(c byte) bool {
	switch c {
	case 0, ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return strings.IndexByte(punctuation, c) >= 0
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

type block struct {
	start, end string
	kind       syntax.StateKind
	class      syntax.Class
}

func blocksOf(rules *syntax.Rules) []block {
	var out []block
	if d := rules.BlockComment; d != nil && d.Start != "" && d.End != "" {
		out = append(out, block{d.Start, d.End, syntax.StateInBlockComment, syntax.BlockComment})
	}
	if s := rules.BlockString; s != "" {
		out = append(out, block{s, s, syntax.StateInBlockString, syntax.BlockString})
	}
	return out
}

func appendN(hl []syntax.Class, c syntax.Class, n int) []syntax.Class {
	for ; n > 0; n-- {
		hl = append(hl, c)
	}
	return hl
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// highlight classifies every byte of line, starting in state in. It reuses
// buf and returns the classes and the state carried to the next row.
func highlight(line string, rules *syntax.Rules, in syntax.HlState, buf []syntax.Class) ([]syntax.Class, syntax.HlState) {
	n := len(line)
	hl := buf[:0]
	if rules == nil {
		return appendN(hl, syntax.Normal, n), syntax.NormalState
	}
	blocks := blocksOf(rules)
	state := in
outer:
	for len(hl) < n {
		i := len(hl)
		if state.Kind == syntax.StateNormal && hasAnyPrefix(line[i:], rules.LineComments) {
			hl = appendN(hl, syntax.Comment, n-i)
			break
		}
		for _, b := range blocks {
			if state.Kind == b.kind {
				if strings.HasPrefix(line[i:], b.end) {
					hl = appendN(hl, b.class, len(b.end))
					state = syntax.NormalState
				} else {
					hl = append(hl, b.class)
				}
				continue outer
			}
			if state.Kind == syntax.StateNormal && strings.HasPrefix(line[i:], b.start) {
				hl = appendN(hl, b.class, len(b.start))
				state = syntax.HlState{Kind: b.kind}
				continue outer
			}
		}
		c := line[i]
		if state.Kind == syntax.StateInString {
			hl = append(hl, syntax.String)
			if c == state.Quote {
				state = syntax.NormalState
			} else if c == '\\' && i != n-1 {
				hl = append(hl, syntax.String)
			}
			continue
		}
		if rules.IsQuote(c) {
			state = syntax.InString(c)
			hl = append(hl, syntax.String)
			continue
		}
		prevSep := i == 0 || isSeparator(line[i-1])
		if rules.HighlightNumbers &&
			((isDigit(c) && prevSep) || (i > 0 && hl[i-1] == syntax.Number && !prevSep && !isSeparator(c))) {
			hl = append(hl, syntax.Number)
			continue
		}
		if prevSep {
			if kw, class, ok := matchKeyword(line[i:], rules.Keywords); ok {
				hl = appendN(hl, class, len(kw))
				continue
			}
		}
		hl = append(hl, syntax.Normal)
	}
	// A single-line string never spans rows.
	if state.Kind == syntax.StateInString {
		state = syntax.NormalState
	}
	return hl, state
}

// matchKeyword returns the first keyword, in declaration order, that s
// starts with and that is followed by a separator or the end of s.
func matchKeyword(s string, classes []syntax.KeywordClass) (string, syntax.Class, bool) {
	for _, kc := range classes {
		for _, kw := range kc.Words {
			if kw == "" || !strings.HasPrefix(s, kw) {
				continue
			}
			if len(s) == len(kw) || isSeparator(s[len(kw)]) {
				return kw, kc.Class, true
			}
		}
	}
	return "", syntax.Normal, false
}
