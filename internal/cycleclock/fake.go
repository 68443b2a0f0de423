package cycleclock

import "sync/atomic"

// Step is a deterministic Clock that advances by Delta on every call to Now.
// The first sample is Start+Delta.
type Step struct {
	Start Ticks
	Delta Ticks

	n atomic.Uint64
}

// NewStep returns a Step clock starting at zero.
func NewStep(delta Ticks) *Step {
	return &Step{Delta: delta}
}

func (s *Step) Now() Ticks {
	k := s.n.Add(1)
	return s.Start + Ticks(k)*s.Delta
}

// Calls reports how many samples have been taken.
func (s *Step) Calls() uint64 {
	return s.n.Load()
}
