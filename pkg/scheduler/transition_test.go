package scheduler

import "testing"

type fakeBlock struct {
	intros    int
	outros    int
	destroyed bool
	release   func()
	instant   bool
}

func (b *fakeBlock) Intro(local bool) { b.intros++ }

func (b *fakeBlock) Outro(local bool, g *Group) {
	b.outros++
	release := g.Hold()
	if b.instant {
		release()
		return
	}
	b.release = release
}

func (b *fakeBlock) Destroy(detach bool) { b.destroyed = true }

type plainBlock struct{}

func TestTransitionOutWaitsForGroup(t *testing.T) {
	s := New()
	a, b := &fakeBlock{}, &fakeBlock{}
	done := 0

	g := s.GroupOutros()
	s.TransitionOut(a, true, true, func() { done++ })
	s.TransitionOut(b, true, true, func() { done++ })
	s.CheckOutros()

	if g.Pending() != 2 {
		t.Errorf("Pending() = %d, want 2", g.Pending())
	}
	if done != 0 || a.destroyed {
		t.Fatal("callbacks ran before animations finished")
	}

	a.release()
	a.release()
	if done != 0 {
		t.Fatal("callbacks ran with one animation in flight")
	}
	b.release()

	if done != 2 {
		t.Errorf("done = %d, want 2", done)
	}
	if !a.destroyed || !b.destroyed {
		t.Error("detached blocks should be destroyed")
	}
	if s.Outroing(a) || s.Outroing(b) {
		t.Error("blocks still marked outroing")
	}
}

func TestCheckOutrosRunsWhenSettled(t *testing.T) {
	s := New()
	blk := &fakeBlock{instant: true}
	done := false

	s.GroupOutros()
	s.TransitionOut(blk, false, false, func() { done = true })
	if !done {
		// The instant release already ran the group.
		t.Error("instant outro should complete on release")
	}
	s.CheckOutros()
	if blk.destroyed {
		t.Error("block destroyed without detach")
	}
}

func TestTransitionOutImplicitGroup(t *testing.T) {
	s := New()
	blk := &fakeBlock{}
	done := false
	s.TransitionOut(blk, true, false, func() { done = true })

	if done {
		t.Fatal("done ran before release")
	}
	blk.release()
	if !done {
		t.Error("done should run after release")
	}
}

func TestTransitionOutIgnoresDuplicate(t *testing.T) {
	s := New()
	blk := &fakeBlock{}
	done := 0
	s.GroupOutros()
	s.TransitionOut(blk, true, false, func() { done++ })
	s.TransitionOut(blk, true, false, func() { done++ })
	s.CheckOutros()
	blk.release()

	if blk.outros != 1 || done != 1 {
		t.Errorf("outros=%d done=%d, want 1/1", blk.outros, done)
	}
}

func TestTransitionInCancelsTeardown(t *testing.T) {
	s := New()
	blk := &fakeBlock{}
	done := false

	s.GroupOutros()
	s.TransitionOut(blk, true, true, func() { done = true })
	s.CheckOutros()
	s.TransitionIn(blk, true)
	blk.release()

	if done || blk.destroyed {
		t.Error("reintroduced block should not be torn down")
	}
	if blk.intros != 1 {
		t.Errorf("intros = %d, want 1", blk.intros)
	}
}

func TestTransitionOutWithoutOutro(t *testing.T) {
	s := New()
	done := false
	s.TransitionOut(&plainBlock{}, true, true, func() { done = true })
	if !done {
		t.Error("block without outro should complete synchronously")
	}
	s.TransitionIn(&plainBlock{}, true)
}

func TestNestedGroups(t *testing.T) {
	s := New()
	inner, outer := &fakeBlock{}, &fakeBlock{}
	var order []string

	s.GroupOutros()
	s.TransitionOut(outer, true, false, func() { order = append(order, "outer") })
	s.GroupOutros()
	s.TransitionOut(inner, true, false, func() { order = append(order, "inner") })
	s.CheckOutros()
	s.CheckOutros()

	outer.release()
	inner.release()
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("order = %v", order)
	}
	s.CheckOutros()
}
