package coro

import "corobench/internal/cycleclock"

// Window is a closed interval of cycle samples.
type Window struct {
	Start cycleclock.Ticks
	End   cycleclock.Ticks
}

// Len returns the number of ticks covered by w.
func (w Window) Len() cycleclock.Ticks {
	return w.End - w.Start
}

// Contains reports whether inner lies entirely within w.
func (w Window) Contains(inner Window) bool {
	return w.Start <= inner.Start && inner.End <= w.End
}

// TaskCounters aggregates Task overhead for one run.
type TaskCounters struct {
	Creation    cycleclock.Ticks
	Destruction cycleclock.Ticks
	// Compute is the pure computation time reported by task bodies.
	Compute cycleclock.Ticks

	// LastWindow is the compute window of the most recently completed body.
	LastWindow Window

	Created   uint64
	Destroyed uint64
}

// GeneratorCounters aggregates Generator overhead for one run.
type GeneratorCounters struct {
	Creation    cycleclock.Ticks
	Destruction cycleclock.Ticks
	// Resume is the wall time of every Resume call, switch and compute included.
	Resume  cycleclock.Ticks
	Compute cycleclock.Ticks

	Resumes   uint64
	Yields    uint64
	Created   uint64
	Destroyed uint64
}

// Accumulators is the per-run bookkeeping shared by every Task and Generator
// created against it. Reset it at the start of a run and read it once at the
// end; values in between are partial.
type Accumulators struct {
	Clock cycleclock.Clock

	Task      TaskCounters
	Generator GeneratorCounters
}

// NewAccumulators returns zeroed accumulators sampling clock. A nil clock
// selects the hardware counter.
func NewAccumulators(clock cycleclock.Clock) *Accumulators {
	if clock == nil {
		clock = cycleclock.Hardware{}
	}
	return &Accumulators{Clock: clock}
}

// Reset zeroes every counter and keeps the clock.
func (a *Accumulators) Reset() {
	a.Task = TaskCounters{}
	a.Generator = GeneratorCounters{}
}

func (a *Accumulators) now() cycleclock.Ticks {
	return a.Clock.Now()
}
