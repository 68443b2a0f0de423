package db

import (
	"path/filepath"
	"testing"
	"time"

	"corobench/internal/benchmark"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(commit string, ts time.Time, avg float64) benchmark.Run {
	return benchmark.Run{
		Timestamp:    ts,
		Commit:       commit,
		FibN:         25,
		Tasks:        1000,
		FrequencyGHz: 2.8,
		Results: []benchmark.Result{
			{Name: "sequential", Tasks: 1000, TotalTicks: 1 << 40, TotalNs: 1e9, AvgNsPerTask: avg, Throughput: 1000},
			{
				Name: "task", Tasks: 1000, TotalTicks: 42, TotalNs: 15, AvgNsPerTask: avg * 2, Throughput: 500,
				Components: []benchmark.Component{
					{Name: "creation", Ticks: 10, Nanos: 3.5, Percent: 1.25},
					{Name: "switch", Ticks: -2, Nanos: -0.7, Percent: -0.1},
				},
			},
		},
	}
}

func TestSQLiteStore_Empty(t *testing.T) {
	store := newTestSQLite(t)

	runs, err := store.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, runs)

	latest, err := store.LoadLatest()
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestSQLiteStore_SaveAndLoad(t *testing.T) {
	store := newTestSQLite(t)
	now := time.Now()

	// Saved out of order; loads come back by timestamp.
	require.NoError(t, store.Save(sampleRun("def", now, 110)))
	require.NoError(t, store.Save(sampleRun("abc", now.Add(-time.Hour), 100)))

	runs, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "abc", runs[0].Commit)
	assert.Equal(t, "def", runs[1].Commit)
	assert.Equal(t, now.UnixNano(), runs[1].Timestamp.UnixNano())

	got := runs[0]
	assert.Equal(t, 25, got.FibN)
	assert.Equal(t, 1000, got.Tasks)
	assert.Equal(t, 2.8, got.FrequencyGHz)
	require.Len(t, got.Results, 2)
	assert.Equal(t, "sequential", got.Results[0].Name)
	assert.Equal(t, uint64(1<<40), got.Results[0].TotalTicks)
	assert.Empty(t, got.Results[0].Components)

	task := got.Results[1]
	assert.Equal(t, "task", task.Name)
	require.Len(t, task.Components, 2)
	sw, ok := task.Component("switch")
	require.True(t, ok)
	assert.Equal(t, int64(-2), sw.Ticks)

	latest, err := store.LoadLatest()
	require.NoError(t, err)
	assert.Equal(t, "def", latest.Commit)

	comps := benchmark.Compare(runs[0], runs[1])
	require.Len(t, comps, 2)
	assert.InDelta(t, 10.0, comps[0].AvgNsDiff, 0.01)
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(sampleRun("persisted", time.Now(), 1)))
	require.NoError(t, store.Close())

	store, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "persisted", runs[0].Commit)
}
