package component

import (
	"log/slog"

	"github.com/vango-dev/hydrate/internal/registry"
	"github.com/vango-dev/hydrate/pkg/hydrate"
	"github.com/vango-dev/hydrate/pkg/scheduler"
)

// Version is the runtime version tag recorded in the process registry.
const Version = "4"

func init() {
	registry.Register(Version)
}

// Observer receives lifecycle transitions. pkg/metrics provides a
// Prometheus-backed implementation.
type Observer interface {
	ObserveState(s State)
}

type nopObserver struct{}

func (nopObserver) ObserveState(State) {}

// Runtime holds the services shared by a component tree: one scheduler and
// one hydrator per UI loop.
type Runtime struct {
	scheduler *scheduler.Scheduler
	hydrator  *hydrate.Hydrator
	logger    *slog.Logger
	observer  Observer
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithScheduler sets the scheduler. The default is scheduler.New().
func WithScheduler(s *scheduler.Scheduler) Option {
	return func(rt *Runtime) {
		if s != nil {
			rt.scheduler = s
		}
	}
}

// WithHydrator sets the hydrator. The default is hydrate.New().
func WithHydrator(h *hydrate.Hydrator) Option {
	return func(rt *Runtime) {
		if h != nil {
			rt.hydrator = h
		}
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(rt *Runtime) {
		if logger != nil {
			rt.logger = logger
		}
	}
}

// WithObserver sets the lifecycle observer.
func WithObserver(o Observer) Option {
	return func(rt *Runtime) {
		if o != nil {
			rt.observer = o
		}
	}
}

// NewRuntime creates a Runtime.
func NewRuntime(opts ...Option) *Runtime {
	rt := &Runtime{
		logger:   slog.Default(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.scheduler == nil {
		rt.scheduler = scheduler.New(scheduler.WithLogger(rt.logger))
	}
	if rt.hydrator == nil {
		rt.hydrator = hydrate.New(hydrate.WithLogger(rt.logger))
	}
	return rt
}

// Scheduler returns the runtime's scheduler.
func (rt *Runtime) Scheduler() *scheduler.Scheduler {
	return rt.scheduler
}

// Hydrator returns the runtime's hydrator.
func (rt *Runtime) Hydrator() *hydrate.Hydrator {
	return rt.hydrator
}

// Tick schedules a flush and runs fn once it settles.
func (rt *Runtime) Tick(fn func()) {
	rt.scheduler.AddFlushCallback(scheduler.NewCallback(fn))
	rt.scheduler.ScheduleUpdate()
}
