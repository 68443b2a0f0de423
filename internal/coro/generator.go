package coro

import (
	"iter"

	"corobench/internal/workload"
)

// StepFunc advances a sequence by one value. It returns false once the
// sequence has no more values. Locals that must survive between steps live in
// the closure.
type StepFunc[T any] func() (T, bool)

type genFrame[T any] struct {
	state   State
	step    StepFunc[T]
	current T
}

// Generator is a lazy sequence. It starts suspended and each Resume produces
// the next value or moves it to the exhausted state.
//
// A Generator owns its frame exclusively. Use Move to transfer it.
type Generator[T any] struct {
	noCopy noCopy

	acc    *Accumulators
	frame  *genFrame[T]
	closed bool
}

// NewGenerator creates a suspended generator driven by step. The setup cost is
// added to acc.Generator.Creation.
func NewGenerator[T any](acc *Accumulators, step StepFunc[T]) *Generator[T] {
	start := acc.now()
	g := &Generator[T]{
		acc:   acc,
		frame: &genFrame[T]{state: Suspended, step: step},
	}
	acc.Generator.Creation += acc.now() - start
	acc.Generator.Created++
	return g
}

// Resume advances the sequence by exactly one value and reports whether the
// generator is still active. The full wall time of the call is added to
// acc.Generator.Resume. Resuming an exhausted, closed or empty generator
// returns false and records nothing.
func (g *Generator[T]) Resume() bool {
	f := g.frame
	if f == nil || f.state == Exhausted {
		return false
	}
	start := g.acc.now()
	v, ok := f.step()
	if ok {
		f.current = v
		f.state = Active
		g.acc.Generator.Yields++
	} else {
		var zero T
		f.current = zero
		f.step = nil
		f.state = Exhausted
	}
	g.acc.Generator.Resume += g.acc.now() - start
	g.acc.Generator.Resumes++
	return ok
}

// Value returns the most recently produced value. It is only valid between a
// Resume that returned true and the next Resume.
func (g *Generator[T]) Value() (T, error) {
	var zero T
	switch g.State() {
	case Active:
		return g.frame.current, nil
	case Closed:
		return zero, ErrClosed
	case Empty:
		return zero, ErrEmpty
	default:
		return zero, ErrNotActive
	}
}

// Done reports whether the generator can produce no more values.
func (g *Generator[T]) Done() bool {
	return g.frame == nil || g.frame.state == Exhausted
}

// State returns the current lifecycle state.
func (g *Generator[T]) State() State {
	switch {
	case g.frame != nil:
		return g.frame.state
	case g.closed:
		return Closed
	default:
		return Empty
	}
}

// Close destroys the frame and records the cost in acc.Generator.Destruction.
// Values not yet produced are discarded. Close is idempotent.
func (g *Generator[T]) Close() {
	f := g.frame
	if f == nil {
		return
	}
	start := g.acc.now()
	var zero T
	f.step = nil
	f.current = zero
	f.state = Closed
	g.frame = nil
	g.closed = true
	g.acc.Generator.Destruction += g.acc.now() - start
	g.acc.Generator.Destroyed++
}

// Move transfers the frame to a new handle and leaves g empty.
func (g *Generator[T]) Move() *Generator[T] {
	n := &Generator[T]{acc: g.acc, frame: g.frame}
	g.frame = nil
	return n
}

// All returns an iterator that resumes g before each value, so ranging over
// a fresh generator starts with its first value. Breaking out of the loop
// leaves g active at the last value seen.
func (g *Generator[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for g.Resume() {
			if !yield(g.frame.current) {
				return
			}
		}
	}
}

// FibSequence returns a generator that yields workload.Fib(n) count times.
// Each step adds its pure computation time to acc.Generator.Compute.
func FibSequence(acc *Accumulators, n float64, count int) *Generator[float64] {
	i := 0
	return NewGenerator(acc, func() (float64, bool) {
		if i >= count {
			return 0, false
		}
		start := acc.now()
		r := workload.Fib(n)
		acc.Generator.Compute += acc.now() - start
		i++
		return r, true
	})
}

// Iota returns an unbounded generator yielding start+step, start+2*step, ...
// with unsigned 32-bit wrap-around. It never exhausts; the consumer decides
// when to stop.
func Iota(acc *Accumulators, start, step uint32) *Generator[uint32] {
	n := start
	return NewGenerator(acc, func() (uint32, bool) {
		n += step
		return n, true
	})
}

// Until ranges over g like All but stops after yielding the first value for
// which stop returns true. The stopping value is yielded.
func Until[T any](g *Generator[T], stop func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range g.All() {
			if !yield(v) || stop(v) {
				return
			}
		}
	}
}
