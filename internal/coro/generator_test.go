package coro

import (
	"testing"

	"corobench/internal/cycleclock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_ProducesExactlyCount(t *testing.T) {
	acc, _ := newTestAccumulators()
	const count = 5
	gen := FibSequence(acc, 10, count)

	assert.Equal(t, Suspended, gen.State())
	_, err := gen.Value()
	assert.ErrorIs(t, err, ErrNotActive)

	for i := 0; i < count; i++ {
		require.True(t, gen.Resume(), "resume %d", i+1)
		assert.False(t, gen.Done())
		v, err := gen.Value()
		require.NoError(t, err)
		assert.Equal(t, 55.0, v)
	}

	assert.False(t, gen.Resume())
	assert.True(t, gen.Done())
	assert.Equal(t, Exhausted, gen.State())
	_, err = gen.Value()
	assert.ErrorIs(t, err, ErrNotActive)

	assert.Equal(t, uint64(count+1), acc.Generator.Resumes)
	assert.Equal(t, uint64(count), acc.Generator.Yields)

	// Resuming past exhaustion is not counted.
	assert.False(t, gen.Resume())
	assert.Equal(t, uint64(count+1), acc.Generator.Resumes)
}

func TestGenerator_ResumeTimeCoversCompute(t *testing.T) {
	acc, _ := newTestAccumulators()
	gen := FibSequence(acc, 8, 3)
	for gen.Resume() {
	}

	// Each producing resume samples: start, compute start, compute end, end.
	assert.Equal(t, cycleclock.Ticks(3), acc.Generator.Compute)
	assert.Equal(t, cycleclock.Ticks(3*3+1), acc.Generator.Resume)
	assert.GreaterOrEqual(t, uint64(acc.Generator.Resume), uint64(acc.Generator.Compute))
}

func TestGenerator_CloseAndMove(t *testing.T) {
	acc, _ := newTestAccumulators()
	gen := FibSequence(acc, 5, 10)
	require.True(t, gen.Resume())

	moved := gen.Move()
	assert.Equal(t, Empty, gen.State())
	assert.True(t, gen.Done())
	assert.False(t, gen.Resume())
	_, err := gen.Value()
	assert.ErrorIs(t, err, ErrEmpty)

	v, err := moved.Value()
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)

	moved.Close()
	moved.Close()
	assert.Equal(t, Closed, moved.State())
	assert.False(t, moved.Resume())
	_, err = moved.Value()
	assert.ErrorIs(t, err, ErrClosed)
	assert.Equal(t, uint64(1), acc.Generator.Destroyed)
	assert.Equal(t, uint64(1), acc.Generator.Created)
}

func TestGenerator_All(t *testing.T) {
	acc, _ := newTestAccumulators()
	var got []float64
	for v := range FibSequence(acc, 6, 4).All() {
		got = append(got, v)
	}
	assert.Equal(t, []float64{8, 8, 8, 8}, got)
}

func TestIota(t *testing.T) {
	acc, _ := newTestAccumulators()
	gen := Iota(acc, 0, 1234)

	var prev uint32
	for k := 1; k <= 10; k++ {
		require.True(t, gen.Resume())
		v, err := gen.Value()
		require.NoError(t, err)
		assert.Equal(t, uint32(k*1234), v)
		if k > 1 {
			assert.Equal(t, prev+1234, v)
		}
		prev = v
	}
	assert.False(t, gen.Done())
}

func TestIota_BreakLeavesActive(t *testing.T) {
	acc, _ := newTestAccumulators()
	gen := Iota(acc, 0, 1234)

	var got []uint32
	for v := range gen.All() {
		got = append(got, v)
		if v > 5000 {
			break
		}
	}

	assert.Equal(t, []uint32{1234, 2468, 3702, 4936, 6170}, got)
	assert.Equal(t, Active, gen.State())
	v, err := gen.Value()
	require.NoError(t, err)
	assert.Equal(t, uint32(6170), v)
}

func TestIota_Wraps(t *testing.T) {
	acc, _ := newTestAccumulators()
	gen := Iota(acc, ^uint32(0)-1, 3)
	require.True(t, gen.Resume())
	v, _ := gen.Value()
	assert.Equal(t, uint32(1), v)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "suspended", Suspended.String())
	assert.Equal(t, "exhausted", Exhausted.String())
	assert.Equal(t, "unknown", State(99).String())
}

func TestUntil_IotaThreshold(t *testing.T) {
	acc, _ := newTestAccumulators()
	gen := Iota(acc, 0, 1234)
	defer gen.Close()

	var got []uint32
	for v := range Until(gen, func(v uint32) bool { return v > 5000 }) {
		got = append(got, v)
	}

	assert.Equal(t, []uint32{1234, 2468, 3702, 4936, 6170}, got)
	assert.Equal(t, uint64(5), acc.Generator.Yields)
}

func TestUntil_ConsumerBreak(t *testing.T) {
	acc, _ := newTestAccumulators()
	gen := Iota(acc, 0, 1)

	var got []uint32
	for v := range Until(gen, func(v uint32) bool { return v > 100 }) {
		got = append(got, v)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []uint32{1, 2, 3}, got)
}
