// Package harness drives the four execution models over a batch of
// Fibonacci tasks and decomposes the elapsed cycles of each.
//
// Drivers run one at a time. The coroutine drivers share the harness's
// Accumulators and reset them at the start of every run, so a Harness must
// not be used from several goroutines at once; build one per batch instead.
package harness

import (
	"context"
	"fmt"
	"log/slog"

	"corobench/internal/coro"
	"corobench/internal/cycleclock"
)

// Harness runs benchmark drivers for one configuration.
type Harness struct {
	cfg    Config
	clock  cycleclock.Clock
	acc    *coro.Accumulators
	logger *slog.Logger
}

// New validates cfg and returns a Harness.
func New(cfg Config) (*Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	return &Harness{
		cfg:    cfg,
		clock:  cfg.Clock,
		acc:    coro.NewAccumulators(cfg.Clock),
		logger: slog.Default().With("component", "harness"),
	}, nil
}

// Config returns the effective configuration.
func (h *Harness) Config() Config {
	return h.cfg
}

// Accumulators exposes the counters written by the coroutine drivers. They
// hold the values of the most recent coroutine run.
func (h *Harness) Accumulators() *coro.Accumulators {
	return h.acc
}

// Driver is a named benchmark run.
type Driver struct {
	Model Model
	Run   func(ctx context.Context) (*Report, error)
}

// Drivers returns the drivers in their fixed run order.
func (h *Harness) Drivers() []Driver {
	return []Driver{
		{Model: ModelSequential, Run: h.Sequential},
		{Model: ModelThreads, Run: h.Threads},
		{Model: ModelTask, Run: h.SingleShot},
		{Model: ModelGenerator, Run: h.Sequence},
	}
}

// RunAll runs every driver in order. It stops at the first failure and
// returns no partial reports.
func (h *Harness) RunAll(ctx context.Context) ([]*Report, error) {
	reports := make([]*Report, 0, 4)
	for _, d := range h.Drivers() {
		h.logger.Debug("starting driver", "model", d.Model, "tasks", h.cfg.Tasks, "fib_n", h.cfg.FibN)
		r, err := d.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s driver: %w", d.Model, err)
		}
		h.logger.Debug("driver finished",
			"model", d.Model,
			"total_ticks", uint64(r.Total),
			"throughput", r.Throughput(),
		)
		reports = append(reports, r)
	}
	return reports, nil
}

func (h *Harness) newReport(model Model, title string, total cycleclock.Ticks) *Report {
	return &Report{
		Model:     model,
		Title:     title,
		Tasks:     h.cfg.Tasks,
		Frequency: h.cfg.Frequency,
		Total:     total,
	}
}

// perTask divides ticks by the batch size with integer truncation.
func (h *Harness) perTask(ticks int64) int64 {
	return ticks / int64(h.cfg.Tasks)
}
