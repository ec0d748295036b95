// Package service exposes hydration reordering over HTTP.
//
// The server renders markup whose elements carry claim stamps in an
// attribute (data-claim by default). POST /reorder parses it, stamps the
// elements, reorders every parent with the minimum number of moves and
// returns the result. GET /plan computes a move plan for a list of claim
// orders, and GET /metrics exposes the Prometheus collectors.
package service

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/hydrate/internal/errors"
	"github.com/vango-dev/hydrate/pkg/dom"
	"github.com/vango-dev/hydrate/pkg/hydrate"
)

const tracerName = "github.com/vango-dev/hydrate/service"

// Reorderer stamps and reorders server-rendered markup.
type Reorderer struct {
	logger   *slog.Logger
	observer hydrate.Observer
	tracer   trace.Tracer
}

// Option configures a Reorderer.
type Option func(*Reorderer)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reorderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithObserver sets the hydration observer, usually a metrics.Recorder.
func WithObserver(o hydrate.Observer) Option {
	return func(r *Reorderer) {
		r.observer = o
	}
}

// WithTracer sets the tracer for reorder spans.
func WithTracer(t trace.Tracer) Option {
	return func(r *Reorderer) {
		if t != nil {
			r.tracer = t
		}
	}
}

// NewReorderer creates a Reorderer.
func NewReorderer(opts ...Option) *Reorderer {
	r := &Reorderer{
		logger: slog.Default(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Request describes one reorder job.
type Request struct {
	// Attr is the attribute holding claim stamps.
	Attr string

	// Selector is the tag of the element whose subtree is reordered. Empty
	// means the whole input.
	Selector string

	// Document parses the input as a full document instead of a body
	// fragment.
	Document bool
}

// Result is the outcome of a reorder job.
type Result struct {
	HTML    string `json:"html"`
	Stamped int    `json:"stamped"`
	Moves   int    `json:"moves"`
}

// Reorder parses markup from src, stamps elements carrying req.Attr and
// reorders the selected subtree.
func (r *Reorderer) Reorder(ctx context.Context, src io.Reader, req Request) (*Result, error) {
	_, span := r.tracer.Start(ctx, "hydrate.reorder")
	defer span.End()

	var root *dom.Node
	var err error
	if req.Document {
		root, err = dom.Parse(src)
	} else {
		root, err = dom.ParseFragment(src, "body")
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	target := root
	if req.Selector != "" {
		target = dom.Find(root, strings.ToLower(req.Selector))
		if target == nil {
			return nil, errors.New("H301").
				WithDetail("No <" + req.Selector + "> element in the input")
		}
	}

	stamped, err := dom.ApplyClaimAttr(target, req.Attr)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	opts := []hydrate.Option{hydrate.WithLogger(r.logger)}
	if r.observer != nil {
		opts = append(opts, hydrate.WithObserver(r.observer))
	}
	h := hydrate.New(opts...)
	h.Start()
	moves := h.ReorderTree(target)
	h.End()

	span.SetAttributes(
		attribute.Int("hydrate.stamped", stamped),
		attribute.Int("hydrate.moves", moves),
	)
	r.logger.Debug("reordered markup",
		"selector", req.Selector,
		"stamped", stamped,
		"moves", moves)

	out := dom.InnerHTML(root)
	if req.Document {
		out = dom.RenderString(root)
	}
	return &Result{HTML: out, Stamped: stamped, Moves: moves}, nil
}

// Plan is a move plan for a list of claim orders.
type Plan struct {
	Orders []int          `json:"orders"`
	Kept   int            `json:"kept"`
	Moves  []hydrate.Move `json:"moves"`
}

// NewPlan computes the plan for orders.
func NewPlan(orders []int) Plan {
	moves := hydrate.Plan(orders)
	return Plan{
		Orders: orders,
		Kept:   len(orders) - len(moves),
		Moves:  moves,
	}
}

// ParseOrders parses a comma- or space-separated list of non-negative
// integers.
func ParseOrders(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return nil, errors.New("H300").WithDetail("empty claim order list")
	}
	orders := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return nil, errors.New("H300").
				WithDetail(strconv.Quote(f) + " is not a non-negative integer")
		}
		orders = append(orders, n)
	}
	return orders, nil
}
