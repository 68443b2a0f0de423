package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"corobench/internal/benchmark"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRun() benchmark.Run {
	return benchmark.Run{
		Timestamp: time.Unix(1700000000, 0),
		Results: []benchmark.Result{
			{Name: "sequential", TotalTicks: 1000, AvgNsPerTask: 12.5, Throughput: 8e7},
			{
				Name: "task", TotalTicks: 5000, AvgNsPerTask: 50, Throughput: 2e7,
				Components: []benchmark.Component{
					{Name: "creation", Ticks: 300},
					{Name: "switch", Ticks: 120},
				},
			},
		},
	}
}

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()

	// Verify all metrics are initialized
	assert.NotNil(t, m.ComponentTicks)
	assert.NotNil(t, m.TotalTicks)
	assert.NotNil(t, m.AvgNsPerTask)
	assert.NotNil(t, m.Throughput)
	assert.NotNil(t, m.RunsTotal)
	assert.NotNil(t, m.LastRun)

	// Independent registries do not collide.
	assert.NotPanics(t, func() { NewMetrics() })
}

func TestObserve(t *testing.T) {
	m := NewMetrics()
	m.Observe(sampleRun())

	assert.Equal(t, 1000.0, testutil.ToFloat64(m.TotalTicks.WithLabelValues("sequential")))
	assert.Equal(t, 2e7, testutil.ToFloat64(m.Throughput.WithLabelValues("task")))
	assert.Equal(t, 50.0, testutil.ToFloat64(m.AvgNsPerTask.WithLabelValues("task")))
	assert.Equal(t, 120.0, testutil.ToFloat64(m.ComponentTicks.WithLabelValues("task", "switch")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal))
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(m.LastRun))
	assert.Equal(t, 2, testutil.CollectAndCount(m.ComponentTicks))

	// A second run with fewer components drops the stale series.
	m.Observe(benchmark.Run{Results: []benchmark.Result{{Name: "task", Components: []benchmark.Component{{Name: "creation", Ticks: 1}}}}})
	assert.Equal(t, 1, testutil.CollectAndCount(m.ComponentTicks))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RunsTotal))
}

func TestHandler(t *testing.T) {
	m := NewMetrics()
	m.Observe(sampleRun())

	ts := httptest.NewServer(m.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `corobench_total_ticks{model="task"} 5000`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestWriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.Observe(sampleRun())

	path := filepath.Join(t.TempDir(), "corobench.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `corobench_component_ticks{component="creation",model="task"} 300`)
}

func TestPush(t *testing.T) {
	var (
		method string
		path   string
		body   string
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	m := NewMetrics()
	m.Observe(sampleRun())
	require.NoError(t, m.Push(context.Background(), ts.URL, "corobench"))

	assert.Equal(t, http.MethodPut, method)
	assert.True(t, strings.HasSuffix(path, "/metrics/job/corobench"), path)
	assert.NotEmpty(t, body)
}

func TestPush_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	m := NewMetrics()
	err := m.Push(context.Background(), ts.URL, "corobench")
	assert.ErrorContains(t, err, "failed to push metrics")
}
