package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"corobench/internal/benchmark"
	"corobench/internal/config"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved runs and compare the latest two",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}
	cmd.Flags().Int("limit", 10, "Number of most recent runs to list (0 lists all)")
	cmd.Flags().String("history-backend", "json", "History backend (json, sqlite, postgres)")
	cmd.Flags().String("history-path", "", "History file for the json and sqlite backends")
	cmd.Flags().String("history-dsn", "", "Connection string for the postgres backend")
	cmd.Flags().Float64("threshold", 10.0, "Percentage threshold for regression warning")
	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	s, err := config.Current()
	if err != nil {
		return err
	}

	store, err := newStoreFunc(storeConfig(s))
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	runs, err := store.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No saved runs.")
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	shown := runs
	if limit > 0 && len(shown) > limit {
		shown = shown[len(shown)-limit:]
	}
	printRuns(out, shown)

	prev, latest, err := benchmark.LoadPair(store)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if prev != nil {
		fmt.Fprintf(out, "\nLatest vs previous (%s)\n", prev.Timestamp.Format(time.RFC3339))
		printComparison(out, benchmark.Compare(*prev, *latest), s.RegressionThreshold)
	}
	return nil
}

func printRuns(w io.Writer, runs []benchmark.Run) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "TIMESTAMP\tCOMMIT\tFIB_N\tTASKS\tMODEL\tNS/TASK\tTASKS/S")
	for _, run := range runs {
		commit := run.Commit
		if commit == "" {
			commit = "-"
		}
		for _, r := range run.Results {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%.2f\t%.0f\n",
				run.Timestamp.Format(time.RFC3339), commit, run.FibN, run.Tasks,
				r.Name, r.AvgNsPerTask, r.Throughput)
		}
	}
	tw.Flush()
}
