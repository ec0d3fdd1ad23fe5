package history

import "testing"

func TestKillRingKeepsMostRecent(t *testing.T) {
	var k KillRing
	if k.HasData() || k.Current() != nil {
		t.Fatalf("new ring must be empty")
	}
	k.Push([]byte("one"))
	k.Push([]byte("two"))
	if got := string(k.Current()); got != "two" {
		t.Fatalf("current %q, want two", got)
	}
	if k.Len() != 2 {
		t.Fatalf("len %d, want 2", k.Len())
	}
}

func TestKillRingCopiesRows(t *testing.T) {
	var k KillRing
	row := []byte("abc")
	k.Push(row)
	row[0] = 'x'
	got := k.Current()
	if string(got) != "abc" {
		t.Fatalf("ring aliased the pushed row: %q", got)
	}
	got[1] = 'y'
	if string(k.Current()) != "abc" {
		t.Fatalf("ring aliased the returned row")
	}
}

func TestKillRingBounded(t *testing.T) {
	var k KillRing
	for i := 0; i < killRingMax+5; i++ {
		k.Push([]byte{byte('a' + i)})
	}
	if k.Len() != killRingMax {
		t.Fatalf("len %d, want %d", k.Len(), killRingMax)
	}
	if got := k.Current(); got[0] != byte('a'+killRingMax+4) {
		t.Fatalf("current %q", got)
	}
}

func TestKillRingEmptyRow(t *testing.T) {
	var k KillRing
	k.Push(nil)
	if !k.HasData() || len(k.Current()) != 0 || k.Current() == nil {
		t.Fatalf("empty row must be stored as a non-nil empty entry")
	}
}
