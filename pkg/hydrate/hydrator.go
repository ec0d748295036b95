package hydrate

import (
	"log/slog"

	"github.com/vango-dev/hydrate/pkg/dom"
)

// Observer receives hydration statistics. pkg/metrics provides a
// Prometheus-backed implementation.
type Observer interface {
	// ObserveReorder is called once per reordered parent with the number of
	// stamped children considered and the number of nodes moved.
	ObserveReorder(children, moves int)

	// ObserveClaim is called for every claim; reused is false when the
	// candidate list had no match and a node was created instead.
	ObserveClaim(reused bool)
}

type nopObserver struct{}

func (nopObserver) ObserveReorder(int, int) {}
func (nopObserver) ObserveClaim(bool)       {}

// parentState is the per-parent claim-order index entry.
type parentState struct {
	// reordered is set once the parent's children have been matched.
	reordered bool

	// endChild is the cursor for the next hydrating append. endSet
	// distinguishes "never positioned" from "positioned past the end".
	endChild *dom.Node
	endSet   bool
}

// Hydrator owns hydration mode and the per-parent claim bookkeeping.
// It is not safe for concurrent use; all calls happen on the UI loop.
type Hydrator struct {
	logger   *slog.Logger
	observer Observer

	depth   int
	parents map[*dom.Node]*parentState
}

// Option configures a Hydrator.
type Option func(*Hydrator)

// WithLogger sets the logger used for reorder diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Hydrator) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithObserver sets the statistics observer.
func WithObserver(o Observer) Option {
	return func(h *Hydrator) {
		if o != nil {
			h.observer = o
		}
	}
}

// New creates a Hydrator that is not hydrating.
func New(opts ...Option) *Hydrator {
	h := &Hydrator{
		logger:   slog.Default(),
		observer: nopObserver{},
		parents:  make(map[*dom.Node]*parentState),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Start enters hydration mode. Calls nest; hydration ends with the
// outermost End.
func (h *Hydrator) Start() {
	h.depth++
}

// End leaves hydration mode. When the outermost hydration ends the
// per-parent index is released.
func (h *Hydrator) End() {
	if h.depth == 0 {
		return
	}
	h.depth--
	if h.depth == 0 {
		h.parents = make(map[*dom.Node]*parentState)
	}
}

// Hydrating reports whether appends currently reuse server-rendered nodes.
func (h *Hydrator) Hydrating() bool {
	return h.depth > 0
}

func (h *Hydrator) state(parent *dom.Node) *parentState {
	st, ok := h.parents[parent]
	if !ok {
		st = &parentState{}
		h.parents[parent] = st
	}
	return st
}
