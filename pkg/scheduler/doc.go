// Package scheduler batches component updates into flushes.
//
// Invalidating a component enqueues it and schedules a single flush on the
// Deferrer (the microtask queue of the event loop). Any number of
// invalidations before the flush coalesce into one patch per component.
//
// A flush runs in segments. In each segment every queued component runs its
// before-update callbacks, then each is patched in queue order. Binding
// callbacks run next, newest first, then render callbacks, each function at
// most once per flush. Updates requested while flushing are drained in the
// same flush. Flush callbacks registered with AddFlushCallback run last.
//
// Outro groups coordinate exit transitions:
//
//	s.GroupOutros()
//	s.TransitionOut(block, true, func() { block.Destroy(true) })
//	s.CheckOutros()
//
// The callback runs once every outro started in the group has finished,
// unless TransitionIn revives the block first.
//
// A Scheduler is not safe for concurrent use. It belongs to the goroutine
// that runs its Loop; WithDebug logs any call made from another goroutine.
package scheduler
