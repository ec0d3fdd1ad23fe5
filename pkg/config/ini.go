package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Error reports a malformed configuration or syntax rule file.
type Error struct {
	Path string
	Line int
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// ErrSyntax is wrapped by Error for lines that are not key=value pairs.
var ErrSyntax = errors.New("syntax error")

// ParseINI reads key=value lines from r and calls fn for each pair.
// Blank lines and lines starting with '#' or ';' are skipped. Keys are
// trimmed; values are passed as written and the Parse* helpers trim them.
// Any error returned by fn is wrapped in an *Error carrying the line number.
func ParseINI(r io.Reader, fn func(key, value string) error) error {
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return &Error{Line: n, Err: ErrSyntax}
		}
		if err := fn(strings.TrimSpace(key), value); err != nil {
			return &Error{Line: n, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return nil
}

// ParseINIFile is ParseINI over the file at path. Errors from the parser
// carry the path.
func ParseINIFile(path string, fn func(key, value string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := ParseINI(f, fn); err != nil {
		var ce *Error
		if errors.As(err, &ce) {
			ce.Path = path
			return ce
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// ParseBool parses a trimmed boolean value.
func ParseBool(value string) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", strings.TrimSpace(value))
	}
	return b, nil
}

// ParseUint parses a trimmed non-negative integer value.
func ParseUint(value string) (int, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(value), 10, 31)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", strings.TrimSpace(value))
	}
	return int(v), nil
}

// ParseList splits a comma separated value and trims every element.
// Empty elements are dropped.
func ParseList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseFields splits a comma separated value into exactly n trimmed
// fields. Empty fields count toward n and are rejected.
func ParseFields(value string, n int) ([]string, error) {
	parts := strings.Split(value, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d values, got %d", n, len(parts))
	}
	for i, p := range parts {
		if parts[i] = strings.TrimSpace(p); parts[i] == "" {
			return nil, fmt.Errorf("value %d is empty", i+1)
		}
	}
	return parts, nil
}
