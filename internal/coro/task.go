package coro

import "corobench/internal/workload"

type taskFrame[T any] struct {
	state  State
	body   func() T
	result T
}

// Task is a deferred computation. It starts suspended, runs its body to
// completion on the first Resume and exposes the result afterwards.
//
// A Task owns its frame exclusively. Use Move to transfer it; copying a Task
// value is reported by go vet.
type Task[T any] struct {
	noCopy noCopy

	acc    *Accumulators
	frame  *taskFrame[T]
	closed bool
}

// NewTask creates a suspended task. None of body runs until Resume. The time
// spent setting up the frame is added to acc.Task.Creation.
func NewTask[T any](acc *Accumulators, body func() T) *Task[T] {
	start := acc.now()
	t := &Task[T]{
		acc:   acc,
		frame: &taskFrame[T]{state: Suspended, body: body},
	}
	acc.Task.Creation += acc.now() - start
	acc.Task.Created++
	return t
}

// Resume runs the body to completion. It is a no-op on a completed, closed or
// empty task.
func (t *Task[T]) Resume() {
	f := t.frame
	if f == nil || f.state != Suspended {
		return
	}
	f.state = Running
	f.result = f.body()
	f.body = nil
	f.state = Completed
}

// Done reports whether the body has completed.
func (t *Task[T]) Done() bool {
	return t.frame != nil && t.frame.state == Completed
}

// State returns the current lifecycle state.
func (t *Task[T]) State() State {
	switch {
	case t.frame != nil:
		return t.frame.state
	case t.closed:
		return Closed
	default:
		return Empty
	}
}

// Result returns the value produced by the body. Reading before completion
// fails with ErrNotCompleted instead of yielding a zero value.
func (t *Task[T]) Result() (T, error) {
	var zero T
	switch t.State() {
	case Completed:
		return t.frame.result, nil
	case Closed:
		return zero, ErrClosed
	case Empty:
		return zero, ErrEmpty
	default:
		return zero, ErrNotCompleted
	}
}

// MustResult is like Result but panics if the result is not available.
func (t *Task[T]) MustResult() T {
	v, err := t.Result()
	if err != nil {
		panic(err)
	}
	return v
}

// Close destroys the frame and records the cost in acc.Task.Destruction. A
// task closed before completion is abandoned: its body never runs and no
// result is ever observed. Close is idempotent and a no-op on an empty task.
func (t *Task[T]) Close() {
	f := t.frame
	if f == nil {
		return
	}
	start := t.acc.now()
	var zero T
	f.body = nil
	f.result = zero
	f.state = Closed
	t.frame = nil
	t.closed = true
	t.acc.Task.Destruction += t.acc.now() - start
	t.acc.Task.Destroyed++
}

// Move transfers the frame to a new handle and leaves t empty.
func (t *Task[T]) Move() *Task[T] {
	n := &Task[T]{acc: t.acc, frame: t.frame}
	t.frame = nil
	return n
}

// FibTask returns a task computing workload.Fib(n). The body samples the clock
// around the computation and reports the window through acc.Task, so the
// compute window nests strictly inside any window the caller takes around
// Resume.
func FibTask(acc *Accumulators, n float64) *Task[float64] {
	return NewTask(acc, func() float64 {
		start := acc.now()
		r := workload.Fib(n)
		end := acc.now()

		acc.Task.LastWindow = Window{Start: start, End: end}
		acc.Task.Compute += end - start
		return r
	})
}
