package benchmark

import "fmt"

type Comparison struct {
	Name           string
	AvgNsDiff      float64 // Percentage change
	ThroughputDiff float64 // Percentage change
	// SwitchDiff is the percentage change of switch overhead, zero when either
	// side has none.
	SwitchDiff float64
	Prev       Result
	Curr       Result
}

// Compare runs comparison between two runs.
// It returns a list of comparisons for models present in both runs.
func Compare(prev, curr Run) []Comparison {
	prevMap := make(map[string]Result)
	for _, r := range prev.Results {
		prevMap[r.Name] = r
	}

	var comparisons []Comparison
	for _, c := range curr.Results {
		p, ok := prevMap[c.Name]
		if !ok {
			continue
		}
		comp := Comparison{
			Name: c.Name,
			Prev: p,
			Curr: c,
		}

		if p.AvgNsPerTask > 0 {
			comp.AvgNsDiff = (c.AvgNsPerTask - p.AvgNsPerTask) / p.AvgNsPerTask * 100
		}
		if p.Throughput > 0 {
			comp.ThroughputDiff = (c.Throughput - p.Throughput) / p.Throughput * 100
		}
		ps, pok := p.Component("switch")
		cs, cok := c.Component("switch")
		if pok && cok && ps.Ticks > 0 {
			comp.SwitchDiff = float64(cs.Ticks-ps.Ticks) / float64(ps.Ticks) * 100
		}

		comparisons = append(comparisons, comp)
	}
	return comparisons
}

// Regressed reports whether the average time per task grew by more than
// threshold percent.
func (c Comparison) Regressed(threshold float64) bool {
	return c.AvgNsDiff > threshold
}

// Improved reports whether the average time per task shrank by more than
// threshold percent.
func (c Comparison) Improved(threshold float64) bool {
	return c.AvgNsDiff < -threshold
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s: %+.2f%% ns/task", c.Name, c.AvgNsDiff)
}

// Regressions filters comparisons down to those above threshold.
func Regressions(comps []Comparison, threshold float64) []Comparison {
	var out []Comparison
	for _, c := range comps {
		if c.Regressed(threshold) {
			out = append(out, c)
		}
	}
	return out
}
