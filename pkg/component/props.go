package component

import "github.com/vango-dev/hydrate/pkg/dom"

// SetContext stores value under key for this instance and the children
// created after it. It returns value.
func (c *Instance) SetContext(key, value any) any {
	c.context[key] = value
	return value
}

// GetContext returns the value stored under key, or nil.
func (c *Instance) GetContext(key any) any {
	return c.context[key]
}

// HasContext reports whether key is set.
func (c *Instance) HasContext(key any) bool {
	_, ok := c.context[key]
	return ok
}

// Contexts returns a copy of the context map.
func (c *Instance) Contexts() map[any]any {
	out := make(map[any]any, len(c.context))
	for k, v := range c.context {
		out[k] = v
	}
	return out
}

// On subscribes fn to component events of the given type and returns the
// unsubscribe function. A nil fn subscribes nothing.
func (c *Instance) On(event string, fn func(dom.Event)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	h := &handler{fn: fn}
	c.callbacks[event] = append(c.callbacks[event], h)
	return func() {
		list := c.callbacks[event]
		for i, x := range list {
			if x == h {
				c.callbacks[event] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Dispatch calls the handlers subscribed to event with detail and returns
// how many ran. Handlers added or removed during dispatch do not affect it.
func (c *Instance) Dispatch(event string, detail any) int {
	list := c.callbacks[event]
	if len(list) == 0 {
		return 0
	}
	snapshot := make([]*handler, len(list))
	copy(snapshot, list)

	e := dom.Event{Type: event, Detail: detail}
	for _, h := range snapshot {
		h.fn(e)
	}
	return len(snapshot)
}

// Set assigns props by name. Bound setters are not notified, since the
// change came from outside. Unknown names are ignored.
func (c *Instance) Set(props map[string]any) {
	if len(props) == 0 || len(c.def.Props) == 0 {
		return
	}
	c.skipBound = true
	defer func() { c.skipBound = false }()
	for name, value := range props {
		if slot, ok := c.def.Props[name]; ok {
			c.Invalidate(slot, value)
		}
	}
}

// Bind links the named prop to fn: fn is called now with the current value
// and again whenever the component assigns the prop.
func (c *Instance) Bind(name string, fn func(any)) {
	slot, ok := c.def.Props[name]
	if !ok || fn == nil || !c.Alive() {
		return
	}
	c.bound[slot] = fn
	if slot < len(c.ctx) {
		fn(c.ctx[slot])
	}
}
