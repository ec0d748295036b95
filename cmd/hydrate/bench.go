package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hydrate/internal/bench"
)

func benchCmd() *cobra.Command {
	var (
		profile    string
		components int
		rounds     int
		swap       bool
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure hydration and update throughput",
		Long: `Hydrate a list of components over generated server markup, then run
update rounds that invalidate every component within one loop turn.

Each round should coalesce into a single flush. The report shows claim
reuse, hydration moves and round latency percentiles.

Profiles:
  fast       50 components, 20 rounds
  standard   500 components, 100 rounds
  stress     5000 components, 200 rounds

Examples:
  hydrate bench
  hydrate bench --profile fast --swap
  hydrate bench --components 2000 --rounds 50 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := bench.LookupProfile(profile)
			if err != nil {
				return err
			}
			if components > 0 {
				p.Components = components
			}
			if rounds >= 0 {
				p.Rounds = rounds
			}
			return runBench(p, swap, asJSON)
		},
	}

	cmd.Flags().StringVarP(&profile, "profile", "p", "standard", "Profile: fast|standard|stress")
	cmd.Flags().IntVar(&components, "components", 0, "Number of components (overrides the profile)")
	cmd.Flags().IntVar(&rounds, "rounds", -1, "Number of update rounds (overrides the profile)")
	cmd.Flags().BoolVar(&swap, "swap", false, "Render server markup out of claim order")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")

	return cmd
}

func runBench(p bench.Profile, swap, asJSON bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	// Handle signals
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	report, err := bench.Run(ctx, bench.Config{
		Profile:   p,
		Swap:      swap,
		DrainWarn: cfg.Scheduler.DrainWarnSegments,
		Debug:     cfg.Debug,
		Namespace: cfg.Metrics.Namespace,
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if report.Consistent {
		success("%d components, %d rounds", report.Components, report.Rounds)
	} else {
		warn("%d components, %d rounds: final DOM does not match state", report.Components, report.Rounds)
	}
	info("Hydrate:        %s", report.Hydrate)
	info("Claims:         %.0f reused, %.0f created", report.Reused, report.Created)
	info("Moves:          %.0f", report.Moves)
	info("Flushes:        %.0f (%.0f patches)", report.Flushes, report.Patches)
	info("Round p50/p99:  %s / %s", report.RoundP50, report.RoundP99)
	info("Round max:      %s", report.RoundMax)
	return nil
}
