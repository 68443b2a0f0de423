package notify

import (
	"fmt"
	"strings"

	"corobench/internal/benchmark"
)

// FormatRegressions renders the regressed models of a run comparison. It
// returns "" when nothing regressed.
func FormatRegressions(curr benchmark.Run, comps []benchmark.Comparison, threshold float64) string {
	regressed := benchmark.Regressions(comps, threshold)
	if len(regressed) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "corobench regression (threshold %.1f%%, fib(%d) x %d tasks", threshold, curr.FibN, curr.Tasks)
	if curr.Commit != "" {
		fmt.Fprintf(&b, ", commit %s", curr.Commit)
	}
	b.WriteString("):\n")
	for _, c := range regressed {
		fmt.Fprintf(&b, "• %s: %.1f → %.1f ns/task (%+.2f%%)\n", c.Name, c.Prev.AvgNsPerTask, c.Curr.AvgNsPerTask, c.AvgNsDiff)
	}
	return b.String()
}
