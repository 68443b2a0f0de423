package harness

import (
	"context"

	"corobench/internal/workload"
)

// Sequential runs the workload Tasks times in a plain loop. There is no
// abstraction boundary to instrument, so only the total is recorded.
func (h *Harness) Sequential(ctx context.Context) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := float64(h.cfg.FibN)

	start := h.clock.Now()
	for i := 0; i < h.cfg.Tasks; i++ {
		workload.Sink = workload.Fib(n)
	}
	total := h.clock.Now() - start

	r := h.newReport(ModelSequential, "Sequential (No Context Switch)", total)
	r.Averages = []Average{
		{Label: "Avg per task", Ticks: h.perTask(int64(total))},
	}
	return r, nil
}
