package main

import (
	"errors"
	"fmt"
	"io"
	"math"

	"corobench/internal/coro"

	"github.com/spf13/cobra"
)

func newIotaCmd() *cobra.Command {
	var start, step, limit uint32

	cmd := &cobra.Command{
		Use:   "iota",
		Short: "Print an unbounded arithmetic sequence from a generator",
		Long: `Drives the unbounded iota generator and prints each value, stopping after
the first value above --limit. With the defaults it prints 1234, 2468,
3702, 4936 and 6170.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := printIota(cmd.OutOrStdout(), start, step, limit)
			return err
		},
	}

	cmd.Flags().Uint32Var(&start, "start", 0, "Initial counter value, never yielded itself")
	cmd.Flags().Uint32Var(&step, "step", 1234, "Increment per value")
	cmd.Flags().Uint32Var(&limit, "limit", 5000, "Stop after the first value above this")
	return cmd
}

// checkIota rejects sequences that would never produce a value above limit.
// Once a value is at most limit, the next one is at most limit+step, so the
// sequence crosses limit without wrapping as long as that sum fits.
func checkIota(step, limit uint32) error {
	if step == 0 {
		return errors.New("step must be positive")
	}
	if limit > math.MaxUint32-step {
		return fmt.Errorf("no value above limit %d is reachable with step %d", limit, step)
	}
	return nil
}

// printIota writes the sequence to w and returns the printed values.
func printIota(w io.Writer, start, step, limit uint32) ([]uint32, error) {
	if err := checkIota(step, limit); err != nil {
		return nil, err
	}

	gen := coro.Iota(coro.NewAccumulators(nil), start, step)
	defer gen.Close()

	var printed []uint32
	for v := range coro.Until(gen, func(v uint32) bool { return v > limit }) {
		fmt.Fprintln(w, v)
		printed = append(printed, v)
	}
	return printed, nil
}
