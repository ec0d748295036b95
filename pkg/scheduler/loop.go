package scheduler

import (
	"context"
	"sync"

	"github.com/petermattis/goid"
)

// Deferrer runs a function on a later turn of the UI loop. It is the
// microtask equivalent: everything deferred during one turn runs before
// control returns to the outer event source.
type Deferrer interface {
	Defer(fn func())
}

// DeferFunc adapts a function to the Deferrer interface.
type DeferFunc func(fn func())

// Defer implements Deferrer.
func (f DeferFunc) Defer(fn func()) { f(fn) }

// Loop is a single-goroutine task queue. Defer may be called from any
// goroutine; tasks always run on the goroutine that calls Drain or Run, in
// FIFO order. Tasks deferred while draining run in the same drain.
type Loop struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}

	// runner is the goroutine id executing tasks, 0 when idle.
	runner int64
}

// NewLoop creates an empty Loop.
func NewLoop() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
	}
}

// Defer queues fn and wakes Run.
func (l *Loop) Defer(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
		// Already signalled
	}
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Drain runs queued tasks until the queue is empty and returns how many ran.
func (l *Loop) Drain() int {
	l.mu.Lock()
	l.runner = goid.Get()
	l.mu.Unlock()

	ran := 0
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.runner = 0
			l.mu.Unlock()
			return ran
		}
		fn := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		fn()
		ran++
	}
}

// Run drains the queue every time work is deferred, until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
			l.Drain()
		}
	}
}

// OnLoop reports whether the calling goroutine is currently draining l.
func (l *Loop) OnLoop() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.runner != 0 && l.runner == goid.Get()
}
