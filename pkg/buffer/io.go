package buffer

import (
	"bufio"
	"bytes"
	"io"

	"example.com/rabi/pkg/syntax"
)

// Read builds a buffer from r with one row per line. Lines end in "\n"; a
// trailing "\r" is dropped, and a final newline does not produce an extra
// empty row. Empty input gives a single empty row.
func Read(r io.Reader, rules *syntax.Rules, tab int) (*Buffer, error) {
	b := &Buffer{rules: rules, tab: tab}
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			line = bytes.TrimSuffix(line, []byte{'\n'})
			line = bytes.TrimSuffix(line, []byte{'\r'})
			b.rows = append(b.rows, NewRow(line))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	if len(b.rows) == 0 {
		b.rows = append(b.rows, NewRow(nil))
	}
	b.UpdateAll()
	return b, nil
}

// WriteTo writes every row followed by "\n". The count is what w
// accepted, so it stays accurate when a write fails part way.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	for _, r := range b.rows {
		if _, err := bw.Write(r.Chars); err != nil {
			return cw.n, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return cw.n, err
		}
	}
	err := bw.Flush()
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	m, err := c.w.Write(p)
	c.n += int64(m)
	return m, err
}
