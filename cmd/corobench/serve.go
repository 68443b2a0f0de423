package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"corobench/internal/config"
	"corobench/internal/harness"
	"corobench/internal/metrics"
	"corobench/internal/telemetry"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Benchmark periodically and expose the results as Prometheus metrics",
		Long: `Runs a benchmark pass every --interval and serves the latest results on
/metrics at --addr until interrupted.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	addBatchFlags(cmd.Flags())
	cmd.Flags().String("addr", ":2112", "Listen address of the metrics endpoint")
	cmd.Flags().Duration("interval", time.Minute, "Time between benchmark passes")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	s, err := config.Current()
	if err != nil {
		return err
	}

	h, err := harness.New(harnessConfig(s))
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	sigCtx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	m := metrics.NewMetrics()
	srvErr := make(chan error, 1)
	go func() {
		err := telemetry.StartMetricsServer(ctx, s.Serve.Addr, m.Handler())
		if err != nil {
			cancel()
		}
		srvErr <- err
	}()

	loopErr := serveLoop(ctx, h, m, s.Serve.Interval)
	cancel()
	if err := <-srvErr; err != nil {
		return fmt.Errorf("metrics server: %w", err)
	}
	return loopErr
}

// serveLoop runs a pass immediately and then once per interval, feeding
// each run to m. It returns nil once ctx is cancelled.
func serveLoop(ctx context.Context, h *harness.Harness, m *metrics.Metrics, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		reports, err := h.RunAll(ctx)
		switch {
		case ctx.Err() != nil:
			return nil
		case err != nil:
			return err
		}

		run := newRun(h.Config(), reports)
		m.Observe(run)
		for _, r := range run.Results {
			telemetry.LogInfo("benchmark pass", "model", r.Name, "avg_ns_per_task", r.AvgNsPerTask, "throughput", r.Throughput)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
