//go:build amd64

package cycleclock

// rdtsc executes MFENCE followed by RDTSC.
//
//go:noescape
func rdtsc() uint64

func now() Ticks {
	return Ticks(rdtsc())
}
