package dom

// Event is delivered to listeners by Dispatch.
type Event struct {
	Type   string
	Target *Node
	Detail any
}

// Listener handles a dispatched event.
type Listener func(Event)

type listener struct {
	fn Listener
}

// AddEventListener registers fn for the event type and returns a function
// that removes exactly this registration.
func (n *Node) AddEventListener(event string, fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	if n.listeners == nil {
		n.listeners = make(map[string][]*listener)
	}
	l := &listener{fn: fn}
	n.listeners[event] = append(n.listeners[event], l)

	return func() {
		list := n.listeners[event]
		for i, existing := range list {
			if existing == l {
				n.listeners[event] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of listeners registered for the event type.
func (n *Node) ListenerCount(event string) int {
	return len(n.listeners[event])
}

// Dispatch invokes the listeners for e.Type in registration order and
// returns how many ran. e.Target defaults to n.
func (n *Node) Dispatch(e Event) int {
	if e.Target == nil {
		e.Target = n
	}
	list := append([]*listener(nil), n.listeners[e.Type]...)
	for _, l := range list {
		l.fn(e)
	}
	return len(list)
}
