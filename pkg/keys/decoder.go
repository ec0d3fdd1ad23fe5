// Package keys decodes the raw byte stream of a terminal in raw mode into
// key events.
package keys

import (
	"errors"
	"io"

	"github.com/gdamore/tcell/v2"
)

// ErrNoInput is returned by a byte source when no byte arrived within its
// read timeout. The decoder passes it through so the caller can do other
// work, such as handling a resize, before reading again.
var ErrNoInput = errors.New("keys: no input")

const esc = 0x1b

// Decoder turns bytes into key events one key at a time.
type Decoder struct {
	r io.ByteReader
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.ByteReader) *Decoder {
	return &Decoder{r: r}
}

// ReadKey blocks until one key is decoded. An error from the first byte of
// a key is returned as is; within an escape sequence any error or
// unexpected byte resolves to KeyEsc.
func (d *Decoder) ReadKey() (*tcell.EventKey, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return nil, err
	}
	if b != esc {
		return ByteKey(b), nil
	}
	return d.escape(), nil
}

// ByteKey returns the event for a single byte typed outside an escape
// sequence. Printable bytes, including every byte >= 0x80, are KeyRune
// events carrying the byte value; control bytes keep their ASCII key code.
func ByteKey(b byte) *tcell.EventKey {
	switch {
	case b == 0x7f:
		return tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone)
	case b == '\b', b == '\t', b == '\r', b == esc:
		return tcell.NewEventKey(tcell.Key(b), 0, tcell.ModNone)
	case b >= 1 && b <= 26:
		return Ctrl(rune('a' + b - 1))
	case b < 0x20:
		return tcell.NewEventKey(tcell.Key(b), rune(b)+'@', tcell.ModCtrl)
	}
	return tcell.NewEventKey(tcell.KeyRune, rune(b), tcell.ModNone)
}

// Ctrl returns the event for Ctrl plus a lower case letter.
func Ctrl(letter rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyCtrlA+tcell.Key(letter-'a'), letter, tcell.ModCtrl)
}

// IsBackspace reports whether ev deletes backwards: Backspace, Ctrl-H or
// the DEL byte most terminals send for the backspace key.
func IsBackspace(ev *tcell.EventKey) bool {
	k := ev.Key()
	return k == tcell.KeyBackspace || k == tcell.KeyBackspace2
}

// IsPrintable reports whether ev carries a byte that can be typed into the
// buffer or a prompt.
func IsPrintable(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyRune && ev.Rune() >= 0x20 && ev.Rune() != 0x7f && ev.Rune() <= 0xff
}

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func ctrlKey(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModCtrl) }

var arrows = map[byte]tcell.Key{
	'A': tcell.KeyUp,
	'B': tcell.KeyDown,
	'C': tcell.KeyRight,
	'D': tcell.KeyLeft,
	'H': tcell.KeyHome,
	'F': tcell.KeyEnd,
}

// tilde maps the numeric parameter of "ESC [ n ~" sequences.
var tilde = map[byte]tcell.Key{
	'1': tcell.KeyHome,
	'7': tcell.KeyHome,
	'4': tcell.KeyEnd,
	'8': tcell.KeyEnd,
	'3': tcell.KeyDelete,
	'5': tcell.KeyPgUp,
	'6': tcell.KeyPgDn,
}

func isCtrlArrow(b byte) bool { return b >= 'A' && b <= 'D' }

// escape decodes what follows an ESC byte. A CSI sequence is read up to
// its final byte even when it is not recognised, so its tail never shows
// up as typed text.
func (d *Decoder) escape() *tcell.EventKey {
	intro, err := d.r.ReadByte()
	if err != nil || (intro != '[' && intro != 'O') {
		return key(tcell.KeyEsc)
	}
	if intro == 'O' {
		b, err := d.r.ReadByte()
		if k, ok := arrows[b]; ok && err == nil {
			return key(k)
		}
		return key(tcell.KeyEsc)
	}
	params, final, ok := d.csi()
	if !ok {
		return key(tcell.KeyEsc)
	}
	switch {
	case final == '~' && len(params) == 1:
		if k, ok := tilde[params[0]]; ok {
			return key(k)
		}
	case len(params) == 0:
		if k, ok := arrows[final]; ok {
			return key(k)
		}
	case isCtrlArrow(final) && (string(params) == "5" || string(params) == "1;5"):
		return ctrlKey(arrows[final])
	}
	return key(tcell.KeyEsc)
}

// csi reads the parameter and intermediate bytes of a CSI sequence and its
// final byte (0x40-0x7e). ok is false when the input stopped or held a
// byte that cannot appear in a sequence.
func (d *Decoder) csi() (params []byte, final byte, ok bool) {
	for {
		b, err := d.r.ReadByte()
		switch {
		case err != nil:
			return nil, 0, false
		case b >= 0x40 && b <= 0x7e:
			return params, b, true
		case b >= 0x20 && b <= 0x3f:
			params = append(params, b)
		default:
			return nil, 0, false
		}
	}
}
