// Package cycleclock reads a fenced, monotonic hardware cycle counter and
// converts tick differences to wall time with a fixed frequency estimate.
//
// Absolute values carry no unit. Only the difference between two samples taken
// on the same timeline is meaningful, and converted durations are indicative:
// the frequency is a hard-coded estimate, not a runtime calibration.
package cycleclock

import "time"

// DefaultFrequency is the assumed core frequency used to convert ticks.
const DefaultFrequency Frequency = 2.8

// Ticks is a raw cycle counter sample or a difference of two samples.
type Ticks uint64

// Since returns the ticks elapsed between start and t.
func (t Ticks) Since(start Ticks) Ticks {
	return t - start
}

// Clock is a source of cycle samples.
type Clock interface {
	Now() Ticks
}

// Frequency is a core frequency in GHz, i.e. ticks per nanosecond.
type Frequency float64

// ToNanos converts a tick count to nanoseconds.
func (f Frequency) ToNanos(t Ticks) float64 {
	return float64(t) / float64(f)
}

// ToDuration converts a tick count to a time.Duration, truncating sub-nanosecond parts.
func (f Frequency) ToDuration(t Ticks) time.Duration {
	return time.Duration(f.ToNanos(t))
}

// Hardware is the process-wide cycle counter.
type Hardware struct{}

// Now inserts a memory fence and reads the cycle counter.
func (Hardware) Now() Ticks {
	return now()
}

// Now reads the hardware counter.
func Now() Ticks {
	return now()
}
