package harness

import (
	"context"
	"fmt"

	"corobench/internal/coro"
	"corobench/internal/cycleclock"
	"corobench/internal/workload"
)

// SingleShot creates one Task per batch entry, times a single Resume around
// it and reads the result. Resume time minus the compute time the body
// reports is the switch overhead.
func (h *Harness) SingleShot(ctx context.Context) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := float64(h.cfg.FibN)
	acc := h.acc
	acc.Reset()

	var (
		resume     cycleclock.Ticks
		violations int
	)

	totalStart := h.clock.Now()
	for i := 0; i < h.cfg.Tasks; i++ {
		task := coro.FibTask(acc, n)

		rs := h.clock.Now()
		task.Resume()
		re := h.clock.Now()
		resume += re - rs

		if !(coro.Window{Start: rs, End: re}).Contains(acc.Task.LastWindow) {
			violations++
		}

		v, err := task.Result()
		task.Close()
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		workload.Sink = v
	}
	total := h.clock.Now() - totalStart

	if violations > 0 {
		h.logger.Warn("compute window escaped resume window", "violations", violations)
	}

	switchOverhead := int64(resume) - int64(acc.Task.Compute)

	r := h.newReport(ModelTask, "Task-based (one coroutine per task)", total)
	r.Violations = violations
	r.Components = []Component{
		{Name: Creation, Label: "Creation overhead", Ticks: int64(acc.Task.Creation)},
		{Name: Destruction, Label: "Destruction overhead", Ticks: int64(acc.Task.Destruction)},
		{Name: Resume, Label: "Resume time", Ticks: int64(resume), Note: "Includes switch + compute"},
		{Name: Compute, Label: "Compute time", Ticks: int64(acc.Task.Compute), Note: "Measured inside coroutine"},
		{Name: Switch, Label: "Switch overhead", Ticks: switchOverhead, Note: "Resume time - Compute time"},
	}
	r.Averages = []Average{
		{Label: "Avg per task", Ticks: h.perTask(int64(total))},
		{Label: "Avg creation", Ticks: h.perTask(int64(acc.Task.Creation))},
		{Label: "Avg destruction", Ticks: h.perTask(int64(acc.Task.Destruction))},
		{Label: "Avg switch overhead", Ticks: h.perTask(switchOverhead)},
	}
	return r, nil
}
