package harness

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"corobench/internal/workload"
)

// Threads runs every task on its own OS thread. Each goroutine locks itself
// to a thread, reports in and spins on a shared flag. Creation time runs
// until all of them have reported; the harness then waits SettleDelay, flips
// the flag and joins them all.
//
// A locked goroutine that returns without unlocking takes its thread down
// with it, so thread teardown lands inside the compute-and-join section.
//
// Every spawned goroutine is always joined. Cancelling ctx only cuts the
// settle wait short; the batch is still released and joined before the error
// is returned.
func (h *Harness) Threads(ctx context.Context) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		n       = float64(h.cfg.FibN)
		count   = h.cfg.Tasks
		release atomic.Bool
		spawned atomic.Int64
		joined  atomic.Int64
		wg      sync.WaitGroup
		tids    = make([]int, count)
		sinks   = make([]float64, count)
	)

	totalStart := h.clock.Now()

	createStart := h.clock.Now()
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer joined.Add(1)
			runtime.LockOSThread()
			tids[i] = threadID()
			spawned.Add(1)
			for !release.Load() {
				runtime.Gosched()
			}
			sinks[i] = workload.Fib(n)
		}(i)
	}
	// Creation ends once every goroutine runs locked on its own thread.
	for spawned.Load() < int64(count) {
		runtime.Gosched()
	}
	creation := h.clock.Now() - createStart
	osThreads := distinct(tids)

	settleErr := sleepContext(ctx, h.cfg.SettleDelay)

	computeStart := h.clock.Now()
	release.Store(true)
	wg.Wait()
	computeAndJoin := h.clock.Now() - computeStart

	total := h.clock.Now() - totalStart

	if settleErr != nil {
		return nil, settleErr
	}
	if s, j := spawned.Load(), joined.Load(); s != int64(count) || j != int64(count) {
		return nil, fmt.Errorf("thread count mismatch: spawned %d, joined %d, want %d", s, j, count)
	}
	workload.Sink = sinks[count-1]

	r := h.newReport(ModelThreads, fmt.Sprintf("Thread-based (%d threads, one per task)", count), total)
	r.Spawned = spawned.Load()
	r.Joined = joined.Load()
	r.OSThreads = osThreads
	r.Components = []Component{
		{Name: Creation, Label: "Creation time", Ticks: int64(creation)},
		{Name: Compute, Label: "Compute time", Ticks: int64(computeAndJoin), Note: "Parallel execution"},
	}
	r.Averages = []Average{
		{Label: "Avg per task", Ticks: h.perTask(int64(total))},
		{Label: "Avg creation", Ticks: h.perTask(int64(creation))},
	}
	return r, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// distinct counts distinct non-zero thread ids.
func distinct(tids []int) int {
	seen := make(map[int]struct{}, len(tids))
	for _, id := range tids {
		if id != 0 {
			seen[id] = struct{}{}
		}
	}
	return len(seen)
}
