package service

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/hydrate/internal/config"
	"github.com/vango-dev/hydrate/internal/errors"
	"github.com/vango-dev/hydrate/internal/registry"
)

// maxBody bounds the markup accepted by POST /reorder.
const maxBody = 8 << 20

// Handler serves the reorder API.
type Handler struct {
	cfg       *config.Config
	logger    *slog.Logger
	reorderer *Reorderer
	registry  *prometheus.Registry
	metrics   func(http.Handler) http.Handler
}

// NewHandler creates a Handler. Request metrics are registered with reg and
// served on /metrics when metrics are enabled in cfg; a nil reg disables
// both.
func NewHandler(cfg *config.Config, logger *slog.Logger, r *Reorderer, reg *prometheus.Registry) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		cfg:       cfg,
		logger:    logger,
		reorderer: r,
	}
	if reg != nil && cfg.Metrics.Enabled {
		h.registry = reg
		h.metrics = Metrics(reg, cfg.Metrics.Namespace)
	}
	return h
}

// Router returns the chi router with all routes mounted.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(Tracing(""))
	if h.metrics != nil {
		r.Use(h.metrics)
	}
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/versions", h.versions)
	r.Get("/plan", h.plan)
	r.Post("/reorder", h.reorder)

	if h.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))
	}
	return r
}

func (h *Handler) versions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"versions": registry.Versions(),
		"multiple": registry.Multiple(),
	})
}

func (h *Handler) plan(w http.ResponseWriter, r *http.Request) {
	orders, err := ParseOrders(r.URL.Query().Get("orders"))
	if err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, NewPlan(orders))
}

// reorder accepts markup in the body. Query parameters: attr (default from
// config), selector, document=1 for full documents, format=json for a JSON
// result instead of HTML.
func (h *Handler) reorder(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := Request{
		Attr:     q.Get("attr"),
		Selector: q.Get("selector"),
		Document: q.Get("document") == "1" || q.Get("document") == "true",
	}
	if req.Attr == "" {
		req.Attr = h.cfg.Hydrate.ClaimAttr
	}

	res, err := h.reorderer.Reorder(r.Context(), http.MaxBytesReader(w, r.Body, maxBody), req)
	if err != nil {
		status := http.StatusBadRequest
		if errors.HasCode(err, "H301") {
			status = http.StatusNotFound
		}
		h.fail(w, status, err)
		return
	}

	if q.Get("format") == "json" {
		writeJSON(w, http.StatusOK, res)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Hydrate-Moves", strconv.Itoa(res.Moves))
	w.Header().Set("X-Hydrate-Stamped", strconv.Itoa(res.Stamped))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(res.HTML))
}

func (h *Handler) fail(w http.ResponseWriter, status int, err error) {
	e := errors.FromError(err, "H200")
	h.logger.Warn("request failed", "code", e.Code, "error", e.FormatCompact())
	writeJSON(w, status, map[string]string{
		"code":    e.Code,
		"message": e.Message,
		"detail":  e.Detail,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
