package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/petermattis/goid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/vango-dev/hydrate/scheduler"

// Component is a unit of work the scheduler re-renders.
type Component interface {
	// BeforeUpdate runs the component's before-update callbacks.
	BeforeUpdate()

	// Update consumes the dirty set, runs the reactive step, patches the
	// rendered output and returns the after-update callbacks to run once the
	// pass settles.
	Update() []*Callback

	// Alive reports whether the component can still be updated. Destroyed
	// components left in the queue are skipped.
	Alive() bool
}

// Callback is a deferred function with identity: the same Callback queued
// twice runs once per flush.
type Callback struct {
	fn func()
}

// NewCallback wraps fn.
func NewCallback(fn func()) *Callback {
	return &Callback{fn: fn}
}

// Run invokes the callback.
func (c *Callback) Run() {
	if c != nil && c.fn != nil {
		c.fn()
	}
}

// Observer receives flush statistics. pkg/metrics provides a
// Prometheus-backed implementation.
type Observer interface {
	ObserveFlush(components, segments int, d time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveFlush(int, int, time.Duration) {}

// Scheduler batches component updates. Dirty components are queued, one
// flush is deferred per turn, and the flush re-renders every queued
// component, including ones dirtied while it runs.
//
// A Scheduler is owned by one UI loop and is not safe for concurrent use.
type Scheduler struct {
	deferrer Deferrer
	loop     *Loop
	logger   *slog.Logger
	observer Observer
	tracer   trace.Tracer
	ctx      context.Context

	dirty    []Component
	flushIdx int

	binding []*Callback
	render  []*Callback
	flushed []*Callback
	seen    map[*Callback]struct{}

	scheduled bool
	flushing  bool
	closed    bool

	drainWarn int

	// Transition groups.
	outros   *Group
	outroing map[any]struct{}

	debug bool
	owner int64
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithDeferrer sets where flushes are deferred to. Without it the scheduler
// creates its own Loop, available from Loop().
func WithDeferrer(d Deferrer) Option {
	return func(s *Scheduler) {
		if d != nil {
			s.deferrer = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver sets the flush statistics observer.
func WithObserver(o Observer) Option {
	return func(s *Scheduler) {
		if o != nil {
			s.observer = o
		}
	}
}

// WithTracer sets the tracer used for flush spans. The default resolves a
// tracer from the global OpenTelemetry provider.
func WithTracer(t trace.Tracer) Option {
	return func(s *Scheduler) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithContext sets the parent context for flush spans.
func WithContext(ctx context.Context) Option {
	return func(s *Scheduler) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// WithDrainWarning logs a warning when one flush needs more than n passes
// over newly dirtied components. It never stops the drain. Zero disables it.
func WithDrainWarning(n int) Option {
	return func(s *Scheduler) {
		s.drainWarn = n
	}
}

// WithDebug enables goroutine affinity checks: calls from a goroutine other
// than the first one to use the scheduler are logged.
func WithDebug(debug bool) Option {
	return func(s *Scheduler) {
		s.debug = debug
	}
}

// New creates a Scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		logger:   slog.Default(),
		observer: nopObserver{},
		ctx:      context.Background(),
		seen:     make(map[*Callback]struct{}),
		outroing: make(map[any]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.deferrer == nil {
		s.loop = NewLoop()
		s.deferrer = s.loop
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s
}

// Loop returns the scheduler's own Loop, or nil when a Deferrer was injected.
func (s *Scheduler) Loop() *Loop {
	return s.loop
}

// Close drops all pending work. Later enqueues and flush requests are ignored.
func (s *Scheduler) Close() {
	s.closed = true
	s.dirty = nil
	s.flushIdx = 0
	s.binding = nil
	s.render = nil
	s.flushed = nil
	s.outros = nil
	s.outroing = make(map[any]struct{})
}

// Pending returns the number of queued components.
func (s *Scheduler) Pending() int {
	return len(s.dirty) - s.flushIdx
}

// Scheduled reports whether a flush is deferred.
func (s *Scheduler) Scheduled() bool {
	return s.scheduled
}

// Enqueue adds c to the pending queue and schedules a flush. The component
// is responsible for enqueueing itself at most once per update cycle.
func (s *Scheduler) Enqueue(c Component) {
	if s.closed {
		return
	}
	s.checkAffinity("Enqueue")
	s.dirty = append(s.dirty, c)
	s.ScheduleUpdate()
}

// ScheduleUpdate defers a flush unless one is already pending.
func (s *Scheduler) ScheduleUpdate() {
	if s.closed || s.scheduled {
		return
	}
	s.scheduled = true
	s.deferrer.Defer(s.Flush)
}

// AddRenderCallback queues cb to run after the current pass.
func (s *Scheduler) AddRenderCallback(cb *Callback) {
	s.render = append(s.render, cb)
}

// AddBindingCallback queues cb to run after components are patched and
// before render callbacks. Binding callbacks run last-in first-out.
func (s *Scheduler) AddBindingCallback(cb *Callback) {
	s.binding = append(s.binding, cb)
}

// AddFlushCallback queues cb to run once the whole flush settles.
// Flush callbacks run last-in first-out.
func (s *Scheduler) AddFlushCallback(cb *Callback) {
	s.flushed = append(s.flushed, cb)
}

// FlushRenderCallbacks runs the pending render callbacks that belong to fns
// right away and removes them from the queue. Components call it on destroy
// so their queued after-update work completes before teardown.
func (s *Scheduler) FlushRenderCallbacks(fns []*Callback) {
	if len(fns) == 0 || len(s.render) == 0 {
		return
	}
	targets := make(map[*Callback]struct{}, len(fns))
	for _, cb := range fns {
		targets[cb] = struct{}{}
	}

	kept := make([]*Callback, 0, len(s.render))
	var due []*Callback
	for _, cb := range s.render {
		if _, ok := targets[cb]; ok {
			due = append(due, cb)
			continue
		}
		kept = append(kept, cb)
	}
	s.render = kept

	for _, cb := range due {
		cb.Run()
	}
}

// Flush re-renders every queued component. Within each pass all before-update
// steps run first (queue order), then every component is patched; components
// dirtied meanwhile are appended and handled in another pass of the same
// flush. Binding callbacks, then render callbacks, follow each round; flush
// callbacks run once at the end. Calling Flush while flushing is a no-op.
func (s *Scheduler) Flush() {
	if s.flushing {
		return
	}
	s.checkAffinity("Flush")
	s.flushing = true

	start := time.Now()
	_, span := s.tracer.Start(s.ctx, "hydrate.flush")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			s.dirty = s.dirty[:0]
			s.flushIdx = 0
			s.binding = s.binding[:0]
			s.render = s.render[:0]
			s.seen = make(map[*Callback]struct{})
			s.flushing = false
			s.scheduled = false
			panic(r)
		}
	}()

	updated, segments := 0, 0
	for {
		for s.flushIdx < len(s.dirty) {
			end := len(s.dirty)
			segments++
			if s.drainWarn > 0 && segments == s.drainWarn+1 {
				s.logger.Warn("flush still draining re-entrant updates",
					"passes", segments,
					"pending", end-s.flushIdx)
			}

			for i := s.flushIdx; i < end; i++ {
				if c := s.dirty[i]; c.Alive() {
					c.BeforeUpdate()
				}
			}
			for i := s.flushIdx; i < end; i++ {
				if c := s.dirty[i]; c.Alive() {
					s.render = append(s.render, c.Update()...)
					updated++
				}
			}
			s.flushIdx = end
		}
		s.dirty = s.dirty[:0]
		s.flushIdx = 0

		for len(s.binding) > 0 {
			cb := s.binding[len(s.binding)-1]
			s.binding = s.binding[:len(s.binding)-1]
			cb.Run()
		}

		for i := 0; i < len(s.render); i++ {
			cb := s.render[i]
			if _, ok := s.seen[cb]; ok {
				continue
			}
			s.seen[cb] = struct{}{}
			cb.Run()
		}
		s.render = s.render[:0]

		if len(s.dirty) == 0 {
			break
		}
	}

	for len(s.flushed) > 0 {
		cb := s.flushed[len(s.flushed)-1]
		s.flushed = s.flushed[:len(s.flushed)-1]
		cb.Run()
	}

	s.scheduled = false
	s.seen = make(map[*Callback]struct{})
	s.flushing = false

	d := time.Since(start)
	span.SetAttributes(
		attribute.Int("hydrate.components", updated),
		attribute.Int("hydrate.passes", segments),
	)
	s.observer.ObserveFlush(updated, segments, d)
	if updated > 0 {
		s.logger.Debug("flush",
			"components", updated,
			"passes", segments,
			"duration", d)
	}
}

// checkAffinity records the first goroutine to use the scheduler and, in
// debug mode, logs calls from any other goroutine.
func (s *Scheduler) checkAffinity(op string) {
	if !s.debug {
		return
	}
	gid := goid.Get()
	if s.owner == 0 {
		s.owner = gid
		return
	}
	if gid != s.owner {
		s.logger.Warn("scheduler used off its loop goroutine",
			"op", op,
			"owner", s.owner,
			"goroutine", gid)
	}
}
