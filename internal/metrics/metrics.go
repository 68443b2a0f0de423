package metrics

import (
	"context"
	"fmt"
	"net/http"

	"corobench/internal/benchmark"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "corobench"

// Metrics represents the collection of benchmark result metrics
type Metrics struct {
	registry *prometheus.Registry

	ComponentTicks *prometheus.GaugeVec
	TotalTicks     *prometheus.GaugeVec
	AvgNsPerTask   *prometheus.GaugeVec
	Throughput     *prometheus.GaugeVec
	RunsTotal      prometheus.Counter
	LastRun        prometheus.Gauge
}

// NewMetrics creates the metrics on a private registry. The registry also
// carries the Go runtime collector.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.ComponentTicks = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "component_ticks",
			Help:      "Cycles attributed to a component of a model's total time in the last run",
		},
		[]string{"model", "component"},
	)

	m.TotalTicks = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_ticks",
			Help:      "Total cycles of a model's batch in the last run",
		},
		[]string{"model"},
	)

	m.AvgNsPerTask = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "avg_ns_per_task",
			Help:      "Average nanoseconds per task in the last run",
		},
		[]string{"model"},
	)

	m.Throughput = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "throughput_tasks_per_second",
			Help:      "Tasks per second in the last run",
		},
		[]string{"model"},
	)

	m.RunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Total number of benchmark runs observed",
		},
	)

	m.LastRun = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last observed run",
		},
	)

	m.registry.MustRegister(
		m.ComponentTicks,
		m.TotalTicks,
		m.AvgNsPerTask,
		m.Throughput,
		m.RunsTotal,
		m.LastRun,
		collectors.NewGoCollector(),
	)

	return m
}

// Observe records a run, replacing the values of the previous one.
func (m *Metrics) Observe(run benchmark.Run) {
	m.ComponentTicks.Reset()
	for _, r := range run.Results {
		m.TotalTicks.WithLabelValues(r.Name).Set(float64(r.TotalTicks))
		m.AvgNsPerTask.WithLabelValues(r.Name).Set(r.AvgNsPerTask)
		m.Throughput.WithLabelValues(r.Name).Set(r.Throughput)
		for _, c := range r.Components {
			m.ComponentTicks.WithLabelValues(r.Name, c.Name).Set(float64(c.Ticks))
		}
	}
	m.RunsTotal.Inc()
	if !run.Timestamp.IsZero() {
		m.LastRun.Set(float64(run.Timestamp.UnixNano()) / 1e9)
	}
}

// Handler returns the Prometheus HTTP handler for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// WriteTextfile writes the metrics in text exposition format for the node
// exporter textfile collector. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}

// Push sends the metrics to a Pushgateway under the given job, replacing the
// job's previous group.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics: %w", err)
	}
	return nil
}
