// Package bench measures hydration and update throughput of the component
// runtime.
//
// A run renders server markup for a list of rows, hydrates one Row
// component per row, then runs update rounds in which every row's counter is
// invalidated inside a single loop turn. Statistics come from the same
// Prometheus collectors the server exports.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/vango-dev/hydrate/internal/errors"
	"github.com/vango-dev/hydrate/pkg/component"
	"github.com/vango-dev/hydrate/pkg/dom"
	"github.com/vango-dev/hydrate/pkg/hydrate"
	"github.com/vango-dev/hydrate/pkg/metrics"
	"github.com/vango-dev/hydrate/pkg/scheduler"
)

// Profile sizes a run.
type Profile struct {
	Name       string
	Components int
	Rounds     int
}

// Profiles are the predefined run sizes.
var Profiles = map[string]Profile{
	"fast": {
		Name:       "fast",
		Components: 50,
		Rounds:     20,
	},
	"standard": {
		Name:       "standard",
		Components: 500,
		Rounds:     100,
	},
	"stress": {
		Name:       "stress",
		Components: 5000,
		Rounds:     200,
	},
}

// LookupProfile returns the named profile.
func LookupProfile(name string) (Profile, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "standard"
	}
	p, ok := Profiles[name]
	if !ok {
		return Profile{}, errors.New("H300").
			WithDetail(fmt.Sprintf("unknown profile %q", name)).
			WithSuggestion("Use fast, standard or stress")
	}
	return p, nil
}

// Config configures a run.
type Config struct {
	Profile

	// Swap renders each row's children in reverse claim order so hydration
	// has to move one node per row.
	Swap bool

	// DrainWarn and Debug are passed to the scheduler.
	DrainWarn int
	Debug     bool

	// Namespace prefixes the collector names.
	Namespace string

	Logger *slog.Logger
}

// Report is the outcome of a run.
type Report struct {
	Profile    string `json:"profile"`
	Components int    `json:"components"`
	Rounds     int    `json:"rounds"`

	Hydrate    time.Duration `json:"hydrate_ns"`
	RoundP50   time.Duration `json:"round_p50_ns"`
	RoundP99   time.Duration `json:"round_p99_ns"`
	RoundMax   time.Duration `json:"round_max_ns"`
	Reused     float64       `json:"claims_reused"`
	Created    float64       `json:"claims_created"`
	Moves      float64       `json:"moves"`
	Flushes    float64       `json:"round_flushes"`
	Patches    float64       `json:"round_patches"`
	Live       float64       `json:"live_after_teardown"`
	Consistent bool          `json:"consistent"`
}

// Run executes one benchmark run. It stops early with ctx's error when ctx
// is cancelled between rounds.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if cfg.Components < 1 || cfg.Rounds < 0 {
		return nil, errors.New("H300").
			WithDetail(fmt.Sprintf("need at least one component and no negative rounds, got %d and %d", cfg.Components, cfg.Rounds))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "hydrate"
	}

	reg := prometheus.NewRegistry()
	rec := metrics.New(metrics.WithRegistry(reg), metrics.WithNamespace(namespace))

	loop := scheduler.NewLoop()
	sched := scheduler.New(
		scheduler.WithDeferrer(loop),
		scheduler.WithContext(ctx),
		scheduler.WithLogger(logger),
		scheduler.WithObserver(rec),
		scheduler.WithDrainWarning(cfg.DrainWarn),
		scheduler.WithDebug(cfg.Debug),
	)
	hyd := hydrate.New(hydrate.WithLogger(logger), hydrate.WithObserver(rec))
	rt := component.NewRuntime(
		component.WithScheduler(sched),
		component.WithHydrator(hyd),
		component.WithLogger(logger),
		component.WithObserver(rec),
	)
	defer sched.Close()

	body, err := dom.ParseFragment(strings.NewReader(serverMarkup(cfg.Components, cfg.Swap)), "body")
	if err != nil {
		return nil, err
	}

	def := rowDefinition(hyd)
	rows := make([]*component.Instance, 0, cfg.Components)
	start := time.Now()
	i := 0
	for target := body.FirstChild(); target != nil; target = target.NextSibling() {
		rows = append(rows, component.Init(rt, def, component.Options{
			Target:  target,
			Hydrate: true,
			Props:   map[string]any{"label": label(i)},
		}))
		i++
	}
	loop.Drain()
	report := &Report{
		Profile:    cfg.Name,
		Components: len(rows),
		Rounds:     cfg.Rounds,
		Hydrate:    time.Since(start),
	}

	before, err := reg.Gather()
	if err != nil {
		return nil, err
	}

	samples := make([]time.Duration, 0, cfg.Rounds)
	for r := 0; r < cfg.Rounds; r++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		loop.Defer(func() {
			for _, c := range rows {
				c.Invalidate(slotCount, c.Ctx()[slotCount].(int)+1)
			}
		})
		loop.Drain()
		samples = append(samples, time.Since(start))
	}

	report.Consistent = consistent(body, cfg.Components, cfg.Rounds)

	after, err := reg.Gather()
	if err != nil {
		return nil, err
	}
	report.Reused = value(after, namespace+"_claims_total", "reused")
	report.Created = value(after, namespace+"_claims_total", "created")
	report.Moves = value(after, namespace+"_moves_total", "")
	report.Flushes = value(after, namespace+"_flushes_total", "") - value(before, namespace+"_flushes_total", "")
	report.Patches = value(after, namespace+"_component_updates_total", "") - value(before, namespace+"_component_updates_total", "")

	for _, c := range rows {
		c.Destroy()
	}
	loop.Drain()
	final, err := reg.Gather()
	if err != nil {
		return nil, err
	}
	report.Live = value(final, namespace+"_components_live", "")

	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	report.RoundP50 = percentile(samples, 0.50)
	report.RoundP99 = percentile(samples, 0.99)
	report.RoundMax = percentile(samples, 1)

	logger.Debug("bench finished",
		"profile", cfg.Name,
		"components", report.Components,
		"rounds", report.Rounds,
		"moves", report.Moves)
	return report, nil
}

func label(i int) string {
	return "row " + strconv.Itoa(i)
}

// serverMarkup renders n rows with count 0, as the server would.
func serverMarkup(n int, swap bool) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if swap {
			fmt.Fprintf(&b, "<div><span>0</span><b>%s</b></div>", label(i))
		} else {
			fmt.Fprintf(&b, "<div><b>%s</b><span>0</span></div>", label(i))
		}
	}
	return b.String()
}

// consistent checks that every row shows its label and the final count.
func consistent(body *dom.Node, n, rounds int) bool {
	want := strconv.Itoa(rounds)
	i := 0
	for div := body.FirstChild(); div != nil; div = div.NextSibling() {
		b := div.FirstChild()
		if b == nil || b.Tag != "b" || b.TextContent() != label(i) {
			return false
		}
		span := b.NextSibling()
		if span == nil || span.Tag != "span" || span.TextContent() != want {
			return false
		}
		i++
	}
	return i == n
}

// value sums the samples of the named family, restricted to the result or
// state label value when one is given.
func value(families []*dto.MetricFamily, name, labelValue string) float64 {
	total := 0.0
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			if labelValue != "" && !hasLabelValue(m, labelValue) {
				continue
			}
			switch {
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				total += m.GetGauge().GetValue()
			}
		}
	}
	return total
}

func hasLabelValue(m *dto.Metric, v string) bool {
	for _, lp := range m.GetLabel() {
		if lp.GetValue() == v {
			return true
		}
	}
	return false
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	idx := int(math.Ceil(float64(len(sorted))*p)) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
