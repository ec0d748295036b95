package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/hydrate/pkg/component"
)

// Config configures the Prometheus recorder.
type Config struct {
	// Namespace is the metrics namespace (default: "hydrate").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for flush duration.
	// Default: exponential from 50µs.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the recorder.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the flush duration buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "hydrate",
		Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8), // 50µs to ~0.8s
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Recorder exports runtime statistics to Prometheus. It implements
// hydrate.Observer, scheduler.Observer and component.Observer.
type Recorder struct {
	flushes        prometheus.Counter
	flushDuration  prometheus.Histogram
	flushPasses    prometheus.Histogram
	componentsSeen prometheus.Counter
	claims         *prometheus.CounterVec
	reorders       prometheus.Counter
	moves          prometheus.Counter
	lifecycle      *prometheus.CounterVec
	live           prometheus.Gauge
}

// New registers the collectors and returns a Recorder.
//
// Metrics collected:
//   - hydrate_flushes_total: Counter of scheduler flushes
//   - hydrate_flush_duration_seconds: Histogram of flush duration
//   - hydrate_flush_passes: Histogram of re-entrant passes per flush
//   - hydrate_component_updates_total: Counter of component patches
//   - hydrate_claims_total: Counter of claims by result (reused, created)
//   - hydrate_reorders_total: Counter of reordered parents
//   - hydrate_moves_total: Counter of DOM moves made by reordering
//   - hydrate_component_transitions_total: Counter of lifecycle transitions by state
//   - hydrate_components_live: Gauge of mounted or constructing components
func New(opts ...Option) *Recorder {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Recorder{
		flushes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flushes_total",
			Help:        "Total number of scheduler flushes",
			ConstLabels: config.ConstLabels,
		}),

		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_duration_seconds",
			Help:        "Scheduler flush duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		flushPasses: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "flush_passes",
			Help:        "Passes over newly dirtied components per flush",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{1, 2, 4, 8, 16, 64},
		}),

		componentsSeen: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "component_updates_total",
			Help:        "Total number of component patches",
			ConstLabels: config.ConstLabels,
		}),

		claims: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "claims_total",
			Help:        "Hydration claims by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		reorders: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "reorders_total",
			Help:        "Total number of parents reordered during hydration",
			ConstLabels: config.ConstLabels,
		}),

		moves: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "moves_total",
			Help:        "Total number of DOM moves made by hydration reordering",
			ConstLabels: config.ConstLabels,
		}),

		lifecycle: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "component_transitions_total",
			Help:        "Component lifecycle transitions by state entered",
			ConstLabels: config.ConstLabels,
		}, []string{"state"}),

		live: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "components_live",
			Help:        "Number of components not yet destroyed",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// ObserveFlush implements scheduler.Observer.
func (r *Recorder) ObserveFlush(components, segments int, d time.Duration) {
	r.flushes.Inc()
	r.flushDuration.Observe(d.Seconds())
	r.flushPasses.Observe(float64(segments))
	r.componentsSeen.Add(float64(components))
}

// ObserveReorder implements hydrate.Observer.
func (r *Recorder) ObserveReorder(children, moves int) {
	r.reorders.Inc()
	r.moves.Add(float64(moves))
}

// ObserveClaim implements hydrate.Observer.
func (r *Recorder) ObserveClaim(reused bool) {
	if reused {
		r.claims.WithLabelValues("reused").Inc()
		return
	}
	r.claims.WithLabelValues("created").Inc()
}

// ObserveState implements component.Observer.
func (r *Recorder) ObserveState(s component.State) {
	r.lifecycle.WithLabelValues(s.String()).Inc()
	switch s {
	case component.Constructing:
		r.live.Inc()
	case component.Destroyed:
		r.live.Dec()
	}
}
