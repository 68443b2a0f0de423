package benchmark

import "time"

// Component is one slice of a model's total time.
type Component struct {
	Name    string  `json:"name"`
	Ticks   int64   `json:"ticks"`
	Nanos   float64 `json:"ns"`
	Percent float64 `json:"percent"`
}

// Result represents the outcome of one execution model in a run.
type Result struct {
	Name         string      `json:"name"`
	Tasks        int         `json:"tasks"`
	TotalTicks   uint64      `json:"total_ticks"`
	TotalNs      float64     `json:"total_ns"`
	AvgNsPerTask float64     `json:"avg_ns_per_task"`
	Throughput   float64     `json:"throughput"`
	Components   []Component `json:"components,omitempty"`
}

// Component returns the named component.
func (r Result) Component(name string) (Component, bool) {
	for _, c := range r.Components {
		if c.Name == name {
			return c, true
		}
	}
	return Component{}, false
}

// Run represents the results of every model from a single execution.
type Run struct {
	Timestamp    time.Time `json:"timestamp"`
	Commit       string    `json:"commit,omitempty"` // Git commit hash
	FibN         int       `json:"fib_n"`
	Tasks        int       `json:"tasks"`
	FrequencyGHz float64   `json:"cpu_ghz"`
	Results      []Result  `json:"results"`
}
