package component

import (
	"math"
	"reflect"
)

// State is the lifecycle state of an Instance.
type State uint8

const (
	// Uninitialized is the zero value. Init moves an Instance straight to
	// Constructing, so observers never see it.
	Uninitialized State = iota
	Constructing
	Mounted
	Destroying
	Destroyed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Constructing:
		return "constructing"
	case Mounted:
		return "mounted"
	case Destroying:
		return "destroying"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// DirtyState tracks whether an Instance is queued for an update.
type DirtyState uint8

const (
	// Clean components have no pending changes.
	Clean DirtyState = iota
	// Pending components are in the scheduler queue.
	Pending
	// Flushing components are being patched; a change now queues them again.
	Flushing
)

func (d DirtyState) String() string {
	switch d {
	case Clean:
		return "clean"
	case Pending:
		return "pending"
	case Flushing:
		return "flushing"
	default:
		return "unknown"
	}
}

// SafeNotEqual is the default change test for reactive slots. Values of
// reference kinds (maps, slices, pointers, funcs, channels) always count as
// changed since they may have been mutated in place. NaN equals NaN.
func SafeNotEqual(a, b any) bool {
	if a == nil || b == nil {
		return a != b
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return true
	}
	switch ta.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	case reflect.Float32, reflect.Float64:
		fa, fb := reflect.ValueOf(a).Float(), reflect.ValueOf(b).Float()
		if math.IsNaN(fa) {
			return !math.IsNaN(fb)
		}
		return fa != fb
	}
	if !valuesComparable(a, b) {
		return true
	}
	return a != b
}

// NotEqual is the change test for components compiled as immutable: only
// identity matters.
func NotEqual(a, b any) bool {
	if a == nil || b == nil {
		return a != b
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return true
	}
	if !ta.Comparable() {
		switch ta.Kind() {
		case reflect.Map, reflect.Func:
			return reflect.ValueOf(a).Pointer() != reflect.ValueOf(b).Pointer()
		case reflect.Slice:
			va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
			return va.Pointer() != vb.Pointer() || va.Len() != vb.Len()
		}
		return true
	}
	if ta.Kind() == reflect.Float32 || ta.Kind() == reflect.Float64 {
		fa, fb := reflect.ValueOf(a).Float(), reflect.ValueOf(b).Float()
		if math.IsNaN(fa) {
			return !math.IsNaN(fb)
		}
	}
	if !valuesComparable(a, b) {
		return true
	}
	return a != b
}

// valuesComparable reports whether a != b is safe. A comparable static type
// can still hold a slice or map in an interface field, which == rejects at
// run time.
func valuesComparable(a, b any) bool {
	return reflect.ValueOf(a).Comparable() && reflect.ValueOf(b).Comparable()
}
