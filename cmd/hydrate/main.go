package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hydrate/internal/config"
	"github.com/vango-dev/hydrate/internal/errors"
	"github.com/vango-dev/hydrate/internal/logging"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// configPath is the --config flag shared by all commands.
var configPath string

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hydrate",
		Short: "Hydration reordering and claim-order tooling",
		Long: `hydrate works with server-rendered markup that carries claim stamps.

It computes minimum-move reorder plans for claim orders, reorders
stamped markup the way client hydration would, and serves both over
HTTP with Prometheus metrics. bench drives the component runtime
over generated markup to measure hydration and update throughput.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to "+config.ConfigFileName+" (default: nearest one above the working directory)")

	rootCmd.AddCommand(
		planCmd(),
		benchCmd(),
		reorderCmd(),
		serveCmd(),
		versionCmd(),
	)
	return rootCmd
}

// loadConfig loads the --config file, or discovers one from the working
// directory.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.Discover(wd)
}

// newLogger builds the stderr logger described by cfg.
func newLogger(cfg *config.Config) (*slog.Logger, error) {
	level := cfg.Log.Level
	if cfg.Debug {
		level = "debug"
	}
	return logging.New(os.Stderr, level, cfg.Log.Format)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
