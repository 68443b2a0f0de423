package main

import (
	"strings"
	"testing"
	"time"

	"corobench/internal/benchmark"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyRun(day int, avg float64) benchmark.Run {
	return benchmark.Run{
		Timestamp: time.Date(2026, 3, day, 12, 0, 0, 0, time.UTC),
		FibN:      25,
		Tasks:     1000,
		Results: []benchmark.Result{
			{Name: "task", AvgNsPerTask: avg, Throughput: 1e9 / avg},
		},
	}
}

func TestHistoryCmd_Empty(t *testing.T) {
	useStore(t, &mockStore{})

	out, err := executeCommand(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved runs.")
}

func TestHistoryCmd_ListsAndCompares(t *testing.T) {
	store := &mockStore{all: []benchmark.Run{
		historyRun(1, 100),
		historyRun(2, 100),
		historyRun(3, 150),
	}}
	useStore(t, store)

	out, err := executeCommand(t, "history", "--limit", "2")
	require.NoError(t, err)

	assert.NotContains(t, out, "2026-03-01T12:00:00Z")
	assert.Contains(t, out, "2026-03-03T12:00:00Z")
	assert.Contains(t, out, "Latest vs previous (2026-03-02T12:00:00Z)")
	assert.Contains(t, out, "+50.00%")
	assert.Contains(t, out, "FAIL")
	assert.True(t, store.closed)
}

func TestPrintRuns(t *testing.T) {
	var b strings.Builder
	run := historyRun(5, 250)
	run.Commit = "deadbee"
	printRuns(&b, []benchmark.Run{run})

	out := b.String()
	assert.Contains(t, out, "deadbee")
	assert.Contains(t, out, "250.00")
	assert.Contains(t, out, "4000000")
}
