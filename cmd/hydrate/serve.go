package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/hydrate/internal/errors"
	"github.com/vango-dev/hydrate/internal/service"
	"github.com/vango-dev/hydrate/pkg/metrics"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the reorder API over HTTP",
		Long: `Start an HTTP server exposing hydration reordering.

Routes:
  GET  /healthz   liveness probe
  GET  /plan      reorder plan for ?orders=2,0,1
  POST /reorder   reorder the markup in the request body
  GET  /versions  runtime versions linked into the server
  GET  /metrics   Prometheus metrics (when metrics.enabled)

Examples:
  hydrate serve
  hydrate serve --addr :8080
  HYDRATE_METRICS_NAMESPACE=edge hydrate serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default from hydrate.json)")

	return cmd
}

func runServe(addr string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Serve.Addr = addr
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	opts := []service.Option{service.WithLogger(logger)}
	if cfg.Metrics.Enabled {
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		rec := metrics.New(
			metrics.WithRegistry(reg),
			metrics.WithNamespace(cfg.Metrics.Namespace),
		)
		opts = append(opts, service.WithObserver(rec))
	} else {
		warn("Metrics disabled")
	}

	handler := service.NewHandler(cfg, logger, service.NewReorderer(opts...), reg)
	srv := &http.Server{
		Addr:              cfg.Serve.Addr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	ln, err := net.Listen("tcp", cfg.Serve.Addr)
	if err != nil {
		return errors.New("H302").Wrap(err)
	}
	success("Listening on http://%s", ln.Addr())
	if cfg.Path() != "" {
		info("Config: %s", cfg.Path())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.New("H302").Wrap(err)
		}
		return nil
	case <-ctx.Done():
	}

	info("Shutting down...")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.New("H302").Wrap(err)
	}
	logger.Info("server stopped", "addr", cfg.Serve.Addr)
	return nil
}
