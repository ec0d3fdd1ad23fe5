package search

import "bytes"

// Range represents a half-open interval [Start, End). Rows use it for the
// render-column span of the active find match.
type Range struct {
	Start int
	End   int
}

// Contains reports whether i lies inside the range.
func (r Range) Contains(i int) bool { return i >= r.Start && i < r.End }

// Lines is the read-only view of a buffer the search walks.
type Lines interface {
	Len() int
	Line(y int) []byte
}

// Next looks for query in the lines of src, checking line start first and
// then moving forward (or backward) one line at a time, wrapping around,
// until every line was checked once. It returns the line and byte offset of
// the first occurrence found. An empty query never matches.
func Next(src Lines, query []byte, start int, forward bool) (y, x int, ok bool) {
	n := src.Len()
	if n == 0 || len(query) == 0 {
		return -1, -1, false
	}
	y = ((start % n) + n) % n
	for i := 0; i < n; i++ {
		if x = bytes.Index(src.Line(y), query); x >= 0 {
			return y, x, true
		}
		if forward {
			y = (y + 1) % n
		} else {
			y = (y - 1 + n) % n
		}
	}
	return -1, -1, false
}
