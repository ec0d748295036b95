// Package bitset provides the fixed-size flag set used to track which
// reactive slots of a component changed since its last render.
package bitset

import (
	"math/bits"
	"strconv"
	"strings"
)

const wordBits = 64

// Set is a fixed-size bitset. Its word count is decided at construction
// from the number of slots it must hold.
type Set struct {
	words []uint64
	size  int
}

// New returns an empty Set able to hold slots [0, size).
func New(size int) Set {
	if size < 0 {
		size = 0
	}
	return Set{
		words: make([]uint64, (size+wordBits-1)/wordBits),
		size:  size,
	}
}

// Of returns a Set of the given size with the listed slots set.
func Of(size int, slots ...int) Set {
	s := New(size)
	for _, slot := range slots {
		s.Set(slot)
	}
	return s
}

// Size returns the number of slots the Set holds.
func (s Set) Size() int {
	return s.size
}

// Words returns the number of backing words.
func (s Set) Words() int {
	return len(s.words)
}

// Set marks slot as changed. Out-of-range slots are ignored.
func (s Set) Set(slot int) {
	if slot < 0 || slot >= s.size {
		return
	}
	s.words[slot/wordBits] |= 1 << (uint(slot) % wordBits)
}

// Has reports whether slot is marked.
func (s Set) Has(slot int) bool {
	if slot < 0 || slot >= s.size {
		return false
	}
	return s.words[slot/wordBits]&(1<<(uint(slot)%wordBits)) != 0
}

// Any reports whether any of the given slots is marked. With no slots it
// reports whether the set is non-empty.
func (s Set) Any(slots ...int) bool {
	if len(slots) == 0 {
		for _, w := range s.words {
			if w != 0 {
				return true
			}
		}
		return false
	}
	for _, slot := range slots {
		if s.Has(slot) {
			return true
		}
	}
	return false
}

// Intersects reports whether s and mask share a marked slot.
func (s Set) Intersects(mask Set) bool {
	n := len(s.words)
	if len(mask.words) < n {
		n = len(mask.words)
	}
	for i := 0; i < n; i++ {
		if s.words[i]&mask.words[i] != 0 {
			return true
		}
	}
	return false
}

// Count returns the number of marked slots.
func (s Set) Count() int {
	c := 0
	for _, w := range s.words {
		c += bits.OnesCount64(w)
	}
	return c
}

// Clear unmarks every slot.
func (s Set) Clear() {
	for i := range s.words {
		s.words[i] = 0
	}
}

// Clone returns an independent copy.
func (s Set) Clone() Set {
	c := Set{words: make([]uint64, len(s.words)), size: s.size}
	copy(c.words, s.words)
	return c
}

// Slots returns the marked slots in ascending order.
func (s Set) Slots() []int {
	var out []int
	for i, w := range s.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			out = append(out, i*wordBits+b)
			w &= w - 1
		}
	}
	return out
}

// String renders the marked slots, e.g. "{0 3 65}".
func (s Set) String() string {
	slots := s.Slots()
	parts := make([]string, len(slots))
	for i, slot := range slots {
		parts[i] = strconv.Itoa(slot)
	}
	return "{" + strings.Join(parts, " ") + "}"
}
