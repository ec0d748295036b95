// Package component implements the component lifecycle.
//
// A Definition describes a component: its instance function, which sets up
// state and returns the context slots, and its fragment factory. Init
// constructs an Instance, creates or hydrates its fragment into the target
// and schedules the mount.
//
//	c := component.Init(rt, def, component.Options{
//		Target:  body,
//		Props:   map[string]any{"name": "world"},
//		Hydrate: true,
//	})
//
// Instances move through Constructing, Mounted, Destroying and Destroyed.
// Invalidate marks a slot dirty when the new value differs from the old and
// queues the instance on the runtime's scheduler; the patch happens in the
// next flush.
package component
