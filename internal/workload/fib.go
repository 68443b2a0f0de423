// Package workload holds the deterministic computation the benchmarks time.
package workload

// Fib computes the n-th Fibonacci number by naive double recursion over
// floating point values. Cost grows exponentially with n and is stable
// across calls with the same input.
func Fib(n float64) float64 {
	if n <= 1.0 {
		return n
	}
	return Fib(n-1.0) + Fib(n-2.0)
}

// Sink keeps results observable so the compiler cannot discard a call whose
// value is otherwise unused.
var Sink float64
