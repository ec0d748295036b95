package scheduler

// Introducer is a block with an enter transition.
type Introducer interface {
	Intro(local bool)
}

// Outroer is a block with an exit transition. Outro must Hold the group for
// as long as its animation runs and release it when the animation ends.
type Outroer interface {
	Outro(local bool, g *Group)
}

// Destroyer is a block that can be torn down once its outro completes.
type Destroyer interface {
	Destroy(detach bool)
}

// Group coordinates the exit transitions started between GroupOutros and
// CheckOutros. Its callbacks run once every held animation is released.
type Group struct {
	refs      int
	callbacks []func()
	parent    *Group
}

// Hold registers an in-flight animation and returns its release function.
// Releasing more than once has no effect.
func (g *Group) Hold() (release func()) {
	g.refs++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		g.refs--
		if g.refs == 0 {
			g.run()
		}
	}
}

// Pending returns the number of unreleased animations.
func (g *Group) Pending() int {
	return g.refs
}

func (g *Group) run() {
	callbacks := g.callbacks
	g.callbacks = nil
	for _, cb := range callbacks {
		cb()
	}
}

// GroupOutros opens a transition group; outros started until the matching
// CheckOutros belong to it.
func (s *Scheduler) GroupOutros() *Group {
	s.outros = &Group{parent: s.outros}
	return s.outros
}

// CheckOutros closes the current group. When none of its animations are in
// flight its callbacks run immediately; otherwise the last release runs them.
func (s *Scheduler) CheckOutros() {
	g := s.outros
	if g == nil {
		return
	}
	if g.refs == 0 {
		g.run()
	}
	s.outros = g.parent
}

// TransitionIn starts block's intro. A block that was outroing is taken out
// of the outroing set, cancelling its pending teardown callback.
func (s *Scheduler) TransitionIn(block any, local bool) {
	in, ok := block.(Introducer)
	if !ok {
		return
	}
	delete(s.outroing, block)
	in.Intro(local)
}

// TransitionOut starts block's outro inside the current group. When the group
// settles, the block is destroyed (if detach) and done is called. Blocks
// without an outro complete synchronously. A block already outroing is
// ignored. Blocks must be comparable (pointer) values.
func (s *Scheduler) TransitionOut(block any, local, detach bool, done func()) {
	out, ok := block.(Outroer)
	if !ok {
		if done != nil {
			done()
		}
		return
	}
	if _, busy := s.outroing[block]; busy {
		return
	}

	implicit := s.outros == nil
	if implicit {
		s.GroupOutros()
	}

	s.outroing[block] = struct{}{}
	s.outros.callbacks = append(s.outros.callbacks, func() {
		if _, still := s.outroing[block]; !still {
			return
		}
		delete(s.outroing, block)
		if done != nil {
			if detach {
				if d, ok := block.(Destroyer); ok {
					d.Destroy(true)
				}
			}
			done()
		}
	})
	out.Outro(local, s.outros)

	if implicit {
		s.CheckOutros()
	}
}

// Outroing reports whether block has an outro in progress.
func (s *Scheduler) Outroing(block any) bool {
	_, ok := s.outroing[block]
	return ok
}
