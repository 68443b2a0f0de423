package harness

import (
	"errors"
	"fmt"
	"time"

	"corobench/internal/cycleclock"
)

// Defaults match the reference configuration of the comparison.
const (
	DefaultFibN        = 25
	DefaultTasks       = 1000
	DefaultSettleDelay = 10 * time.Millisecond
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid harness config")

// Config describes one benchmark batch.
type Config struct {
	// FibN is the workload input size.
	FibN int
	// Tasks is the batch size N. It must be positive.
	Tasks int
	// SettleDelay is how long the thread driver waits after spawning before
	// releasing the start flag.
	SettleDelay time.Duration
	// Frequency converts ticks to nanoseconds. Zero selects the default.
	Frequency cycleclock.Frequency
	// Clock samples cycles. Nil selects the hardware counter.
	Clock cycleclock.Clock
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		FibN:        DefaultFibN,
		Tasks:       DefaultTasks,
		SettleDelay: DefaultSettleDelay,
		Frequency:   cycleclock.DefaultFrequency,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Tasks < 1 {
		return fmt.Errorf("%w: tasks must be positive, got %d", ErrInvalidConfig, c.Tasks)
	}
	if c.FibN < 0 {
		return fmt.Errorf("%w: fib_n must not be negative, got %d", ErrInvalidConfig, c.FibN)
	}
	if c.SettleDelay < 0 {
		return fmt.Errorf("%w: settle delay must not be negative, got %v", ErrInvalidConfig, c.SettleDelay)
	}
	if c.Frequency < 0 {
		return fmt.Errorf("%w: frequency must be positive, got %v", ErrInvalidConfig, c.Frequency)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Frequency == 0 {
		c.Frequency = cycleclock.DefaultFrequency
	}
	if c.Clock == nil {
		c.Clock = cycleclock.Hardware{}
	}
	return c
}
