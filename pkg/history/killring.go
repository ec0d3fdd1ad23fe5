// Package history keeps the rows copied or cut by the editor.
package history

// KillRing stores a small history of copied rows, most recent first.
type KillRing struct {
	entries [][]byte
}

const killRingMax = 10

// Push stores a copy of row as the current entry. An empty row is stored
// too: copying a blank line and pasting it is a valid edit.
func (k *KillRing) Push(row []byte) {
	row = append([]byte{}, row...)
	if len(k.entries) < killRingMax {
		k.entries = append(k.entries, nil)
	}
	copy(k.entries[1:], k.entries[:len(k.entries)-1])
	k.entries[0] = row
}

// Current returns a copy of the most recent entry, or nil when the ring
// is empty.
func (k *KillRing) Current() []byte {
	if len(k.entries) == 0 {
		return nil
	}
	return append([]byte{}, k.entries[0]...)
}

// Len returns the number of entries in the ring.
func (k *KillRing) Len() int { return len(k.entries) }

// HasData reports whether the ring contains a row.
func (k *KillRing) HasData() bool { return len(k.entries) > 0 }
