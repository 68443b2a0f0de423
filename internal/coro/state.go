package coro

import "errors"

var (
	// ErrNotCompleted is returned when a Task result is read before Resume
	// has driven it to completion.
	ErrNotCompleted = errors.New("coro: task has not completed")
	// ErrNotActive is returned when a Generator value is read while the
	// generator is suspended before its first resume or exhausted.
	ErrNotActive = errors.New("coro: generator is not active")
	// ErrClosed is returned after the instance was destroyed.
	ErrClosed = errors.New("coro: instance is closed")
	// ErrEmpty is returned by an instance whose frame was moved away.
	ErrEmpty = errors.New("coro: instance holds no frame")
)

// State is the lifecycle position of a suspendable computation.
type State int

const (
	// Suspended: created, body not started.
	Suspended State = iota
	// Running: a Task body is executing.
	Running
	// Completed: a Task body returned and its result is available.
	Completed
	// Active: a Generator holds a freshly produced value.
	Active
	// Exhausted: a Generator has no more values.
	Exhausted
	// Closed: the frame was destroyed.
	Closed
	// Empty: the frame was moved to another handle.
	Empty
)

func (s State) String() string {
	switch s {
	case Suspended:
		return "suspended"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Active:
		return "active"
	case Exhausted:
		return "exhausted"
	case Closed:
		return "closed"
	case Empty:
		return "empty"
	default:
		return "unknown"
	}
}

// noCopy may be embedded into structs which must not be copied after first
// use. go vet's copylocks check reports violations.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
