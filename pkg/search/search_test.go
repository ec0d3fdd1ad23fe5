package search

import "testing"

type lines []string

func (l lines) Len() int          { return len(l) }
func (l lines) Line(y int) []byte { return []byte(l[y]) }

func TestNextForwardWraps(t *testing.T) {
	src := lines{"hello", "world", "hello again"}
	y, x, ok := Next(src, []byte("hello"), 1, true)
	if !ok || y != 2 || x != 0 {
		t.Fatalf("expected match at 2:0, got %d:%d ok=%v", y, x, ok)
	}
	y, x, ok = Next(src, []byte("hello"), 3, true)
	if !ok || y != 0 || x != 0 {
		t.Fatalf("expected wrap to 0:0, got %d:%d ok=%v", y, x, ok)
	}
}

func TestNextBackward(t *testing.T) {
	src := lines{"abc", "xx abc", "none"}
	y, x, ok := Next(src, []byte("abc"), 0, false)
	if !ok || y != 0 || x != 0 {
		t.Fatalf("expected start line to be checked first, got %d:%d", y, x)
	}
	y, x, ok = Next(src, []byte("abc"), -1, false)
	if !ok || y != 1 || x != 3 {
		t.Fatalf("expected backward wrap to 1:3, got %d:%d", y, x)
	}
}

func TestNextNoMatch(t *testing.T) {
	src := lines{"a", "b"}
	if _, _, ok := Next(src, []byte("zz"), 0, true); ok {
		t.Fatalf("expected no match")
	}
	if _, _, ok := Next(src, nil, 0, true); ok {
		t.Fatalf("empty query must not match")
	}
	if _, _, ok := Next(lines{}, []byte("a"), 0, true); ok {
		t.Fatalf("empty source must not match")
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{Start: 2, End: 4}
	if r.Contains(1) || !r.Contains(2) || !r.Contains(3) || r.Contains(4) {
		t.Fatalf("unexpected Contains results for %+v", r)
	}
}
