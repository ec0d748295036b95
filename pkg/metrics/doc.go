// Package metrics exports runtime statistics to Prometheus.
//
// A Recorder observes the scheduler (flushes, passes, patches), the
// hydrator (claims, reorders, moves) and component lifecycles:
//
//	rec := metrics.New(metrics.WithRegistry(reg))
//	rt := component.NewRuntime(
//		component.WithObserver(rec),
//		component.WithScheduler(scheduler.New(scheduler.WithObserver(rec))),
//		component.WithHydrator(hydrate.New(hydrate.WithObserver(rec))),
//	)
package metrics
