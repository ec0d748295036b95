package component

import (
	"log/slog"

	"github.com/vango-dev/hydrate/pkg/bitset"
	"github.com/vango-dev/hydrate/pkg/dom"
	"github.com/vango-dev/hydrate/pkg/hydrate"
	"github.com/vango-dev/hydrate/pkg/scheduler"
)

// Fragment is a component's render output.
type Fragment interface {
	// Create builds the DOM nodes.
	Create()
	// Mount inserts the nodes into target before anchor (nil appends).
	Mount(target, anchor *dom.Node)
	// Update patches the nodes whose slots are set in dirty.
	Update(ctx []any, dirty bitset.Set)
	// Destroy releases the nodes, removing them from the document if detach.
	Destroy(detach bool)
}

// Claimable is a Fragment that can adopt server-rendered nodes instead of
// creating them.
type Claimable interface {
	Claim(nodes *hydrate.NodeList)
}

// Transitionable is a Fragment with intro and outro transitions.
type Transitionable interface {
	scheduler.Introducer
	scheduler.Outroer
}

// Invalidate assigns value to a reactive slot and marks it dirty when it
// changed. It returns value.
type Invalidate func(slot int, value any) any

// Definition describes a component type.
type Definition struct {
	Name string

	// Slots is the number of reactive slots in ctx.
	Slots int

	// Props maps prop names to their slot. Set and Bind ignore names missing
	// from it.
	Props map[string]int

	// Instance builds the initial ctx from props. It may register hooks on c.
	Instance func(c *Instance, props map[string]any, invalidate Invalidate) []any

	// Fragment creates the render output for ctx.
	Fragment func(ctx []any) Fragment

	// NotEqual decides whether an assignment changes a slot. Defaults to
	// SafeNotEqual.
	NotEqual func(a, b any) bool
}

// Options are per-instance construction options.
type Options struct {
	// Target is the element to mount into. Without it the instance stays
	// Constructing until a parent mounts it.
	Target *dom.Node
	Anchor *dom.Node
	Props  map[string]any

	// Hydrate claims Target's existing children instead of creating nodes.
	Hydrate bool

	// Intro plays the fragment's intro transition on mount.
	Intro bool

	// Context replaces the context inherited from Parent.
	Context map[any]any
	Parent  *Instance
}

type handler struct {
	fn func(dom.Event)
}

// Instance is a live component. All methods must be called on the loop that
// owns the runtime's scheduler.
type Instance struct {
	rt     *Runtime
	def    *Definition
	logger *slog.Logger

	state      State
	dirtyState DirtyState
	ready      bool
	skipBound  bool

	ctx      []any
	dirty    bitset.Set
	fragment Fragment
	notEqual func(a, b any) bool
	reactive func(dirty bitset.Set)

	bound     map[int]func(any)
	context   map[any]any
	callbacks map[string][]*handler

	onMount      []func() func()
	onDestroy    []func()
	beforeUpdate []func()
	afterUpdate  []*scheduler.Callback
}

// Init constructs an instance of def. With a target it is created (or
// hydrated) and mounted, and the scheduler is flushed before Init returns.
func Init(rt *Runtime, def *Definition, opts Options) *Instance {
	c := &Instance{
		rt:        rt,
		def:       def,
		logger:    rt.logger.With("component", def.Name),
		dirty:     bitset.New(def.Slots),
		notEqual:  def.NotEqual,
		bound:     make(map[int]func(any)),
		callbacks: make(map[string][]*handler),
	}
	if c.notEqual == nil {
		c.notEqual = SafeNotEqual
	}

	inherited := opts.Context
	if inherited == nil && opts.Parent != nil {
		inherited = opts.Parent.context
	}
	c.context = make(map[any]any, len(inherited))
	for k, v := range inherited {
		c.context[k] = v
	}

	c.setState(Constructing)

	props := opts.Props
	if props == nil {
		props = map[string]any{}
	}
	if def.Instance != nil {
		c.ctx = def.Instance(c, props, c.Invalidate)
	}
	if c.ctx == nil {
		c.ctx = []any{}
	}

	c.runReactive()
	c.ready = true
	c.runBeforeUpdate()

	if def.Fragment != nil {
		c.fragment = def.Fragment(c.ctx)
	}

	if opts.Target == nil {
		return c
	}

	h := rt.hydrator
	if opts.Hydrate {
		h.Start()
		nodes := hydrate.Children(opts.Target)
		c.Claim(nodes)
		nodes.DetachRemaining()
	} else {
		c.Create()
	}
	if opts.Intro && c.fragment != nil {
		rt.scheduler.TransitionIn(c.fragment, false)
	}
	c.Mount(opts.Target, opts.Anchor)
	if opts.Hydrate {
		h.End()
	}
	rt.scheduler.Flush()
	return c
}

// Name returns the definition name.
func (c *Instance) Name() string { return c.def.Name }

// State returns the lifecycle state.
func (c *Instance) State() State { return c.state }

// DirtyState returns the scheduling state.
func (c *Instance) DirtyState() DirtyState { return c.dirtyState }

// Ctx returns the reactive slots. It is nil once destroyed.
func (c *Instance) Ctx() []any { return c.ctx }

// Fragment returns the render output, nil once destroyed.
func (c *Instance) Fragment() Fragment { return c.fragment }

// Runtime returns the runtime the instance belongs to.
func (c *Instance) Runtime() *Runtime { return c.rt }

// Create builds the fragment's nodes.
func (c *Instance) Create() {
	if c.fragment != nil {
		c.fragment.Create()
	}
}

// Claim adopts server-rendered nodes from nodes. A fragment that cannot claim
// is created fresh and the server nodes are left for the caller to discard.
func (c *Instance) Claim(nodes *hydrate.NodeList) {
	if c.fragment == nil {
		return
	}
	if cl, ok := c.fragment.(Claimable); ok {
		cl.Claim(nodes)
		return
	}
	c.fragment.Create()
}

// Reactive registers the reactive step. It runs before every patch with the
// pending dirty set; invalidations it makes are patched in the same update.
func (c *Instance) Reactive(fn func(dirty bitset.Set)) {
	c.reactive = fn
}

// Invalidate assigns value to slot. When the value changed, a bound setter
// is notified and the slot is marked dirty.
func (c *Instance) Invalidate(slot int, value any) any {
	if c.state != Constructing && c.state != Mounted {
		return value
	}
	if slot < 0 || slot >= len(c.ctx) {
		return value
	}
	if !c.notEqual(c.ctx[slot], value) {
		return value
	}
	c.ctx[slot] = value
	if !c.skipBound {
		if fn := c.bound[slot]; fn != nil {
			fn(value)
		}
	}
	if c.ready {
		c.MakeDirty(slot)
	}
	return value
}

// MakeDirty marks slot as changed. The first change since the last patch
// queues the instance with the scheduler.
func (c *Instance) MakeDirty(slot int) {
	if c.state != Constructing && c.state != Mounted {
		return
	}
	if c.dirtyState != Pending {
		c.rt.scheduler.Enqueue(c)
		c.dirtyState = Pending
		c.dirty.Clear()
	}
	c.dirty.Set(slot)
}

// BeforeUpdate implements scheduler.Component.
func (c *Instance) BeforeUpdate() {
	c.runBeforeUpdate()
}

// Update implements scheduler.Component. It runs the reactive step, hands
// the dirty set to the fragment and returns the after-update callbacks.
func (c *Instance) Update() []*scheduler.Callback {
	// During a flush the before-update hooks of the whole segment have
	// already run, so they see derived values from the previous patch. Init
	// runs the reactive step first. Running it here lets a child's reactive
	// step see bits its parent's patch set earlier in the segment.
	c.runReactive()

	c.dirtyState = Flushing
	dirty := c.dirty.Clone()
	c.dirty.Clear()
	if c.fragment != nil {
		c.fragment.Update(c.ctx, dirty)
	}
	if c.dirtyState == Flushing {
		c.dirtyState = Clean
	}
	return c.afterUpdate
}

// Alive implements scheduler.Component.
func (c *Instance) Alive() bool {
	return c.state == Constructing || c.state == Mounted
}

func (c *Instance) runReactive() {
	if c.reactive != nil {
		c.reactive(c.dirty)
	}
}

func (c *Instance) runBeforeUpdate() {
	for _, fn := range c.beforeUpdate {
		fn()
	}
}

func (c *Instance) setState(s State) {
	c.state = s
	c.rt.observer.ObserveState(s)
	c.logger.Debug("component state", "state", s.String())
}
