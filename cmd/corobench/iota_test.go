package main

import (
	"bytes"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintIota(t *testing.T) {
	var b bytes.Buffer
	got, err := printIota(&b, 0, 1234, 5000)
	require.NoError(t, err)

	assert.Equal(t, []uint32{1234, 2468, 3702, 4936, 6170}, got)
	assert.Equal(t, "1234\n2468\n3702\n4936\n6170\n", b.String())
}

func TestPrintIota_FirstValueAboveLimit(t *testing.T) {
	var b bytes.Buffer
	got, err := printIota(&b, 10, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, []uint32{15}, got)
}

func TestPrintIota_WrapsBeforeCrossingLimit(t *testing.T) {
	got, err := printIota(io.Discard, math.MaxUint32-1, 5, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint32{3, 8, 13}, got)
}

func TestPrintIota_UnreachableLimit(t *testing.T) {
	tests := []struct {
		name        string
		step, limit uint32
		errMsg      string
	}{
		{"zero step", 0, 5000, "step must be positive"},
		{"max limit", 1234, math.MaxUint32, "no value above limit"},
		{"limit within one step of max", 10, math.MaxUint32 - 9, "no value above limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b bytes.Buffer
			got, err := printIota(&b, 0, tt.step, tt.limit)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Nil(t, got)
			assert.Empty(t, b.String())
		})
	}
}

func TestPrintIota_HighestReachableLimit(t *testing.T) {
	got, err := printIota(io.Discard, math.MaxUint32-12, 10, math.MaxUint32-10)
	require.NoError(t, err)
	assert.Equal(t, []uint32{math.MaxUint32 - 2}, got)
}

func TestIotaCmd(t *testing.T) {
	out, err := executeCommand(t, "iota", "--step", "100", "--limit", "250")
	require.NoError(t, err)
	assert.Equal(t, "100\n200\n300\n", out)
}

func TestIotaCmd_ZeroStep(t *testing.T) {
	_, err := executeCommand(t, "iota", "--step", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step must be positive")
}
