// Command iota prints the values of an unbounded arithmetic generator,
// stopping after the first one above 5000.
package main

import (
	"fmt"

	"corobench/internal/coro"
)

func main() {
	gen := coro.Iota(coro.NewAccumulators(nil), 0, 1234)
	defer gen.Close()

	for v := range coro.Until(gen, func(v uint32) bool { return v > 5000 }) {
		fmt.Println(v)
	}
}
