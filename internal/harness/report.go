package harness

import (
	"corobench/internal/benchmark"
	"corobench/internal/cycleclock"
)

// Model names an execution model under comparison.
type Model string

const (
	ModelSequential Model = "sequential"
	ModelThreads    Model = "threads"
	ModelTask       Model = "task"
	ModelGenerator  Model = "generator"
)

// Component names.
const (
	Creation    = "creation"
	Destruction = "destruction"
	Resume      = "resume"
	Compute     = "compute"
	Switch      = "switch"
)

// Component is one slice of a driver's total time. Ticks is signed because
// switch overhead is a difference of two measurements and may dip below zero
// on small batches.
type Component struct {
	Name  string
	Label string
	Ticks int64
	Note  string
}

// Average is a per-task or per-resume mean shown below the components.
type Average struct {
	Label string
	Ticks int64
}

// Report is the outcome of one driver run.
type Report struct {
	Model     Model
	Title     string
	Tasks     int
	Frequency cycleclock.Frequency

	Total      cycleclock.Ticks
	Components []Component
	Averages   []Average

	// Thread driver only. Spawned counts goroutines that locked a thread and
	// reported in; OSThreads is the number of distinct thread ids seen when
	// the creation window closed (zero where ids are unavailable).
	Spawned   int64
	Joined    int64
	OSThreads int

	// Generator driver only.
	Resumes uint64
	Yields  uint64

	// Task driver only: resumes whose compute window was not nested inside
	// the resume window.
	Violations int
}

// Component returns the named component.
func (r *Report) Component(name string) (Component, bool) {
	for _, c := range r.Components {
		if c.Name == name {
			return c, true
		}
	}
	return Component{}, false
}

// Percent returns ticks as a percentage of the report total.
func (r *Report) Percent(ticks int64) float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(ticks) * 100.0 / float64(r.Total)
}

// Nanos converts ticks with the report's frequency.
func (r *Report) Nanos(ticks int64) float64 {
	return float64(ticks) / float64(r.Frequency)
}

// TotalNanos is the total time in nanoseconds.
func (r *Report) TotalNanos() float64 {
	return r.Frequency.ToNanos(r.Total)
}

// AvgNanosPerTask is the total time divided by the batch size.
func (r *Report) AvgNanosPerTask() float64 {
	return r.TotalNanos() / float64(r.Tasks)
}

// Throughput is tasks per second over the total time.
// It is zero when no time was recorded.
func (r *Report) Throughput() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Tasks) * 1e9 / r.TotalNanos()
}

// Result converts the report into a persisted benchmark result.
func (r *Report) Result() benchmark.Result {
	res := benchmark.Result{
		Name:         string(r.Model),
		Tasks:        r.Tasks,
		TotalTicks:   uint64(r.Total),
		TotalNs:      r.TotalNanos(),
		AvgNsPerTask: r.AvgNanosPerTask(),
		Throughput:   r.Throughput(),
	}
	for _, c := range r.Components {
		res.Components = append(res.Components, benchmark.Component{
			Name:    c.Name,
			Ticks:   c.Ticks,
			Nanos:   r.Nanos(c.Ticks),
			Percent: r.Percent(c.Ticks),
		})
	}
	return res
}
