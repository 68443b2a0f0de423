// Command corobench measures how much of a task's cost goes to the execution
// model rather than the work: a plain loop, one OS thread per task, one
// single-shot task coroutine per task, or one generator for the whole batch.
package main

import (
	"fmt"
	"os"
	"runtime/debug"
)

func main() {
	// A panic inside a task or generator body is fatal. Report it and exit
	// non-zero without printing a partial report.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "corobench: benchmark aborted: %v\n", r)
			fmt.Fprintf(os.Stderr, "%s", debug.Stack())
			os.Exit(1)
		}
	}()

	Execute()
}
