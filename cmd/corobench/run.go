package main

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"text/tabwriter"
	"time"

	"corobench/internal/benchmark"
	"corobench/internal/config"
	"corobench/internal/cycleclock"
	"corobench/internal/db"
	"corobench/internal/harness"
	"corobench/internal/metrics"
	"corobench/internal/notify"
	"corobench/internal/telemetry"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// benchExecCommand allows mocking in tests.
var benchExecCommand = exec.Command

// newStoreFunc opens the history backend. Tests replace it.
var newStoreFunc = func(cfg db.StoreConfig) (benchmark.Store, error) {
	return db.NewStore(cfg)
}

// newNotifierFunc builds the regression notifier. Tests replace it.
var newNotifierFunc = func(webhookURL string) notify.Notifier {
	if webhookURL == "" {
		return notify.Nop{}
	}
	return notify.NewSlackNotifier(webhookURL)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one benchmark pass over all execution models",
		Long: `Runs the sequential, thread, task and generator drivers in that order over
the same batch of Fibonacci tasks and prints a cycle breakdown of each.
Results can be saved to a history backend, compared with the previous saved
run, written as Prometheus metrics and pushed to a Pushgateway.`,
		Args: cobra.NoArgs,
		RunE: runBench,
	}
	addRunFlags(cmd.Flags())
	return cmd
}

// addRunFlags registers the benchmark flags on fs. Flags that mirror a
// configuration key are bound to it by initConfig.
func addRunFlags(fs *pflag.FlagSet) {
	addBatchFlags(fs)
	fs.Bool("save", false, "Save results to history")
	fs.Bool("compare", false, "Compare with the latest saved run")
	fs.Float64("threshold", 10.0, "Percentage threshold for regression warning")
	fs.String("history-backend", "json", "History backend (json, sqlite, postgres)")
	fs.String("history-path", "", "History file for the json and sqlite backends")
	fs.String("history-dsn", "", "Connection string for the postgres backend")
	fs.String("metrics-textfile", "", "Write Prometheus metrics to this file")
	fs.String("pushgateway", "", "Push metrics to this Prometheus Pushgateway URL")
}

// addBatchFlags registers the flags describing one benchmark batch.
func addBatchFlags(fs *pflag.FlagSet) {
	fs.Int("fib-n", harness.DefaultFibN, "Fibonacci input computed by every task")
	fs.Int("tasks", harness.DefaultTasks, "Number of tasks in the batch")
	fs.Float64("cpu-ghz", float64(cycleclock.DefaultFrequency), "Nominal CPU frequency used to convert cycles to time")
	fs.Duration("settle", harness.DefaultSettleDelay, "Wait after spawning threads before releasing them")
}

// harnessConfig converts settings into a harness configuration.
func harnessConfig(s config.Settings) harness.Config {
	return harness.Config{
		FibN:        s.FibN,
		Tasks:       s.Tasks,
		SettleDelay: s.SettleDelay,
		Frequency:   cycleclock.Frequency(s.CPUGHz),
	}
}

// storeConfig picks the connection string matching the configured backend.
func storeConfig(s config.Settings) db.StoreConfig {
	cfg := db.StoreConfig{Type: s.History.Backend, ConnectionString: s.History.Path}
	switch strings.ToLower(s.History.Backend) {
	case "postgres", "postgresql":
		cfg.ConnectionString = s.History.DSN
	}
	return cfg
}

func runBench(cmd *cobra.Command, _ []string) error {
	s, err := config.Current()
	if err != nil {
		return err
	}

	h, err := harness.New(harnessConfig(s))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	reports, err := h.RunAll(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := harness.NewPrinter(out, s.Color).All(h.Config(), reports); err != nil {
		return err
	}

	run := newRun(h.Config(), reports)
	if commit, err := getGitCommit(); err == nil {
		run.Commit = commit
	} else {
		telemetry.LogDebug("no git commit for run", "error", err)
	}

	save, _ := cmd.Flags().GetBool("save")
	compare, _ := cmd.Flags().GetBool("compare")
	if save || compare {
		if err := record(ctx, out, s, run, save, compare); err != nil {
			return err
		}
	}

	return exportMetrics(ctx, s, run)
}

// newRun collects the reports of one pass into a history record.
func newRun(cfg harness.Config, reports []*harness.Report) benchmark.Run {
	run := benchmark.Run{
		Timestamp:    time.Now(),
		FibN:         cfg.FibN,
		Tasks:        cfg.Tasks,
		FrequencyGHz: float64(cfg.Frequency),
		Results:      make([]benchmark.Result, 0, len(reports)),
	}
	for _, r := range reports {
		run.Results = append(run.Results, r.Result())
	}
	return run
}

// record compares run with the latest saved run and then saves it.
func record(ctx context.Context, out io.Writer, s config.Settings, run benchmark.Run, save, compare bool) error {
	store, err := newStoreFunc(storeConfig(s))
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	if compare {
		prev, err := store.LoadLatest()
		if err != nil {
			telemetry.LogError("failed to load history", err)
		} else if prev != nil {
			comps := benchmark.Compare(*prev, run)
			fmt.Fprintf(out, "\nComparison with %s", prev.Timestamp.Format(time.RFC3339))
			if prev.Commit != "" {
				fmt.Fprintf(out, " (%s)", prev.Commit)
			}
			fmt.Fprintln(out)
			printComparison(out, comps, s.RegressionThreshold)
			notifyRegressions(ctx, s, run, comps)
		}
	}

	if save {
		if err := store.Save(run); err != nil {
			return fmt.Errorf("failed to save history: %w", err)
		}
		fmt.Fprintln(out, "\nResults saved to history")
		telemetry.LogInfof("saved run with %d model results to %s history", len(run.Results), s.History.Backend)
	}
	return nil
}

// notifyRegressions posts regressions to Slack. Without a webhook the
// message is dropped. Delivery failures are logged, never fatal.
func notifyRegressions(ctx context.Context, s config.Settings, run benchmark.Run, comps []benchmark.Comparison) {
	msg := notify.FormatRegressions(run, comps, s.RegressionThreshold)
	if msg == "" {
		return
	}
	if err := newNotifierFunc(s.Notify.SlackWebhook).Notify(ctx, msg); err != nil {
		telemetry.LogError("failed to send regression notification", err)
	}
}

// exportMetrics writes and pushes run metrics when either target is set.
func exportMetrics(ctx context.Context, s config.Settings, run benchmark.Run) error {
	if s.Metrics.Textfile == "" && s.Metrics.Pushgateway == "" {
		return nil
	}

	m := metrics.NewMetrics()
	m.Observe(run)

	if s.Metrics.Textfile != "" {
		if err := m.WriteTextfile(s.Metrics.Textfile); err != nil {
			return err
		}
		telemetry.LogInfo("metrics written", "path", s.Metrics.Textfile)
	}
	if s.Metrics.Pushgateway != "" {
		if err := m.Push(ctx, s.Metrics.Pushgateway, s.Metrics.Job); err != nil {
			return err
		}
		telemetry.LogInfo("metrics pushed", "url", s.Metrics.Pushgateway, "job", s.Metrics.Job)
	}
	return nil
}

func getGitCommit() (string, error) {
	cmd := benchExecCommand("git", "rev-parse", "--short", "HEAD")
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func printComparison(w io.Writer, comps []benchmark.Comparison, threshold float64) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tNS/TASK\tDIFF %\tSWITCH DIFF %\tSTATUS")
	for _, c := range comps {
		status := "PASS"
		if c.Regressed(threshold) {
			status = "FAIL"
		} else if c.Improved(threshold) {
			status = "IMPR"
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%+.2f%%\t%+.2f%%\t%s\n",
			c.Name, c.Curr.AvgNsPerTask, c.AvgNsDiff, c.SwitchDiff, status)
	}
	tw.Flush()
}
