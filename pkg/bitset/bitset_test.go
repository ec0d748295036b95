package bitset

import "testing"

func TestNewSizesWords(t *testing.T) {
	tests := []struct {
		size  int
		words int
	}{
		{0, 0},
		{1, 1},
		{64, 1},
		{65, 2},
		{200, 4},
		{-3, 0},
	}
	for _, tt := range tests {
		if got := New(tt.size).Words(); got != tt.words {
			t.Errorf("New(%d).Words() = %d, want %d", tt.size, got, tt.words)
		}
	}
}

func TestSetHas(t *testing.T) {
	s := New(130)
	for _, slot := range []int{0, 63, 64, 129} {
		s.Set(slot)
		if !s.Has(slot) {
			t.Errorf("Has(%d) = false after Set", slot)
		}
	}
	if s.Has(1) || s.Has(128) {
		t.Error("unset slots reported as set")
	}

	s.Set(130)
	s.Set(-1)
	if s.Has(130) || s.Has(-1) {
		t.Error("out-of-range slots should be ignored")
	}
	if s.Count() != 4 {
		t.Errorf("Count() = %d, want 4", s.Count())
	}
	if got := s.String(); got != "{0 63 64 129}" {
		t.Errorf("String() = %q", got)
	}
}

func TestAnyAndIntersects(t *testing.T) {
	s := Of(100, 70)
	if !s.Any() {
		t.Error("Any() = false on non-empty set")
	}
	if !s.Any(1, 70) || s.Any(1, 2) {
		t.Error("Any(slots...) wrong")
	}
	if !s.Intersects(Of(100, 70, 5)) {
		t.Error("Intersects should share slot 70")
	}
	if s.Intersects(Of(10, 5)) {
		t.Error("Intersects with smaller disjoint mask should be false")
	}
}

func TestClearAndClone(t *testing.T) {
	s := Of(10, 1, 2)
	c := s.Clone()
	s.Clear()

	if s.Any() {
		t.Error("Clear() left slots set")
	}
	if !c.Has(1) || !c.Has(2) {
		t.Error("Clone() should be independent of Clear()")
	}
	if c.Size() != 10 {
		t.Errorf("Clone().Size() = %d, want 10", c.Size())
	}
}
