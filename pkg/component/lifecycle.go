package component

import (
	"github.com/vango-dev/hydrate/pkg/dom"
	"github.com/vango-dev/hydrate/pkg/scheduler"
)

// Mount inserts the fragment into target and queues the on-mount hooks and
// after-update callbacks for the next render pass. Only a Constructing
// instance can be mounted.
func (c *Instance) Mount(target, anchor *dom.Node) {
	if c.state != Constructing {
		return
	}
	if c.fragment != nil {
		c.fragment.Mount(target, anchor)
	}
	c.setState(Mounted)

	s := c.rt.scheduler
	s.AddRenderCallback(scheduler.NewCallback(c.runMount))
	for _, cb := range c.afterUpdate {
		s.AddRenderCallback(cb)
	}
}

func (c *Instance) runMount() {
	hooks := c.onMount
	c.onMount = nil

	var cleanups []func()
	for _, fn := range hooks {
		if cleanup := fn(); cleanup != nil {
			cleanups = append(cleanups, cleanup)
		}
	}
	if c.state == Destroying || c.state == Destroyed {
		for _, fn := range cleanups {
			fn()
		}
		return
	}
	c.onDestroy = append(c.onDestroy, cleanups...)
}

// Teardown destroys the instance: pending after-update callbacks run now,
// then the on-destroy hooks, then the fragment is destroyed. Repeated calls
// are no-ops.
func (c *Instance) Teardown(detach bool) {
	if c.state != Constructing && c.state != Mounted {
		return
	}
	c.setState(Destroying)

	c.rt.scheduler.FlushRenderCallbacks(c.afterUpdate)
	hooks := c.onDestroy
	c.onDestroy = nil
	for _, fn := range hooks {
		fn()
	}
	if c.fragment != nil {
		c.fragment.Destroy(detach)
	}

	c.fragment = nil
	c.ctx = nil
	c.dirty.Clear()
	c.dirtyState = Clean
	c.setState(Destroyed)
}

// Destroy removes the instance from the document and destroys it.
func (c *Instance) Destroy() {
	c.Teardown(true)
}

// OnMount registers fn to run after the first render pass following mount.
// A non-nil function returned by fn runs on destroy.
func (c *Instance) OnMount(fn func() func()) {
	if fn != nil && c.Alive() {
		c.onMount = append(c.onMount, fn)
	}
}

// OnDestroy registers fn to run when the instance is destroyed.
func (c *Instance) OnDestroy(fn func()) {
	if fn != nil && c.Alive() {
		c.onDestroy = append(c.onDestroy, fn)
	}
}

// OnBeforeUpdate registers fn to run before every patch, and once during
// construction.
func (c *Instance) OnBeforeUpdate(fn func()) {
	if fn != nil && c.Alive() {
		c.beforeUpdate = append(c.beforeUpdate, fn)
	}
}

// OnAfterUpdate registers fn to run after every patch, and once after mount.
func (c *Instance) OnAfterUpdate(fn func()) {
	if fn != nil && c.Alive() {
		c.afterUpdate = append(c.afterUpdate, scheduler.NewCallback(fn))
	}
}
