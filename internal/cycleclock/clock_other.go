//go:build !amd64

package cycleclock

import "time"

var epoch = time.Now()

// now synthesizes ticks from the monotonic clock at DefaultFrequency so that
// ToNanos with the default frequency yields wall nanoseconds.
func now() Ticks {
	return Ticks(float64(time.Since(epoch).Nanoseconds()) * float64(DefaultFrequency))
}
