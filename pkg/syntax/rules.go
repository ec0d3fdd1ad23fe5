// Package syntax holds the per-language highlighting rules and the state
// carried by the highlighter from one row to the next.
package syntax

// Class is the highlight class assigned to one rendered byte.
type Class uint8

const (
	Normal Class = iota
	Number
	String
	BlockString
	Comment
	BlockComment
	Keyword1
	Keyword2
)

var classNames = [...]string{
	Normal:       "normal",
	Number:       "number",
	String:       "string",
	BlockString:  "block_string",
	Comment:      "comment",
	BlockComment: "block_comment",
	Keyword1:     "keyword1",
	Keyword2:     "keyword2",
}

// String returns the theme name of the class.
func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "normal"
}

// StateKind enumerates the highlighter states that can span bytes.
type StateKind uint8

const (
	StateNormal StateKind = iota
	StateInBlockComment
	StateInString
	StateInBlockString
)

// HlState is the highlighter state at a row boundary. Quote is only
// meaningful for StateInString. HlState values are comparable.
type HlState struct {
	Kind  StateKind
	Quote byte
}

// Predefined states.
var (
	NormalState    = HlState{}
	InBlockComment = HlState{Kind: StateInBlockComment}
	InBlockString  = HlState{Kind: StateInBlockString}
)

// InString returns the state for a single-line string opened with quote q.
func InString(q byte) HlState { return HlState{Kind: StateInString, Quote: q} }

func (s HlState) String() string {
	switch s.Kind {
	case StateInBlockComment:
		return "InBlockComment"
	case StateInString:
		return "InString(" + string(rune(s.Quote)) + ")"
	case StateInBlockString:
		return "InBlockString"
	}
	return "Normal"
}

// Delims is a start/end delimiter pair.
type Delims struct {
	Start string
	End   string
}

// KeywordClass binds a set of keywords to a highlight class.
type KeywordClass struct {
	Class Class
	Words []string
}

// Rules is the immutable highlighting configuration of one language.
type Rules struct {
	Name             string
	HighlightNumbers bool
	LineComments     []string
	Quotes           []byte
	BlockComment     *Delims
	BlockString      string
	Keywords         []KeywordClass
}

// IsQuote reports whether c opens a single-line string.
func (r *Rules) IsQuote(c byte) bool {
	for _, q := range r.Quotes {
		if q == c {
			return true
		}
	}
	return false
}
