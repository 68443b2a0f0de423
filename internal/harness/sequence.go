package harness

import (
	"context"
	"fmt"

	"corobench/internal/coro"
	"corobench/internal/workload"
)

// Sequence builds a single Generator yielding Tasks values and resumes it
// once per value. Creation and destruction are paid once for the whole batch.
// The generator is closed inside the timed section so its destruction cost is
// part of the total.
func (h *Harness) Sequence(ctx context.Context) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := float64(h.cfg.FibN)
	acc := h.acc
	acc.Reset()

	totalStart := h.clock.Now()
	gen := coro.FibSequence(acc, n, h.cfg.Tasks)
	for i := 0; i < h.cfg.Tasks; i++ {
		if !gen.Resume() {
			gen.Close()
			return nil, fmt.Errorf("sequence exhausted after %d of %d values", i, h.cfg.Tasks)
		}
		v, err := gen.Value()
		if err != nil {
			gen.Close()
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		workload.Sink = v
	}
	gen.Close()
	total := h.clock.Now() - totalStart

	g := acc.Generator
	switchOverhead := int64(g.Resume) - int64(g.Compute)
	perResume := func(ticks int64) int64 {
		return ticks / int64(g.Resumes)
	}

	r := h.newReport(ModelGenerator, "Generator-based (one sequence per batch)", total)
	r.Resumes = g.Resumes
	r.Yields = g.Yields
	r.Components = []Component{
		{Name: Creation, Label: "Creation overhead", Ticks: int64(g.Creation)},
		{Name: Destruction, Label: "Destruction overhead", Ticks: int64(g.Destruction)},
		{Name: Resume, Label: "Resume time", Ticks: int64(g.Resume), Note: "Includes switch + compute"},
		{Name: Compute, Label: "Compute time", Ticks: int64(g.Compute), Note: "Measured inside coroutine"},
		{Name: Switch, Label: "Switch overhead", Ticks: switchOverhead, Note: "Resume time - Compute time"},
	}
	r.Averages = []Average{
		{Label: "Avg per task", Ticks: h.perTask(int64(total))},
		{Label: "Avg resume time", Ticks: perResume(int64(g.Resume))},
		{Label: "Avg pure compute", Ticks: perResume(int64(g.Compute))},
		{Label: "Avg switch overhead", Ticks: perResume(switchOverhead)},
	}
	return r, nil
}
