package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	defer viper.Reset()

	t.Run("Defaults", func(t *testing.T) {
		viper.Reset()
		t.Chdir(t.TempDir())

		require.NoError(t, Load(""))

		s, err := Current()
		require.NoError(t, err)
		assert.Equal(t, 25, s.FibN)
		assert.Equal(t, 1000, s.Tasks)
		assert.Equal(t, 2.8, s.CPUGHz)
		assert.Equal(t, 10*time.Millisecond, s.SettleDelay)
		assert.Equal(t, "json", s.History.Backend)
		assert.Equal(t, "corobench", s.Metrics.Job)
		assert.Equal(t, time.Minute, s.Serve.Interval)
		assert.Equal(t, 10.0, s.RegressionThreshold)
	})

	t.Run("Load From Env", func(t *testing.T) {
		viper.Reset()
		t.Chdir(t.TempDir())
		t.Setenv("COROBENCH_TASKS", "64")
		t.Setenv("COROBENCH_HISTORY_BACKEND", "sqlite")

		require.NoError(t, Load(""))

		s, err := Current()
		require.NoError(t, err)
		assert.Equal(t, 64, s.Tasks)
		assert.Equal(t, "sqlite", s.History.Backend)
	})

	t.Run("Slack fallback env", func(t *testing.T) {
		viper.Reset()
		t.Chdir(t.TempDir())
		t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.test/x")

		require.NoError(t, Load(""))
		assert.Equal(t, "https://hooks.slack.test/x", viper.GetString("notify.slack_webhook"))
	})

	t.Run("Config file", func(t *testing.T) {
		viper.Reset()
		path := filepath.Join(t.TempDir(), "bench.yaml")
		require.NoError(t, os.WriteFile(path, []byte("fib_n: 20\nsettle_delay: 5ms\nhistory:\n  backend: sqlite\n  path: h.db\n"), 0644))

		require.NoError(t, Load(path))

		s, err := Current()
		require.NoError(t, err)
		assert.Equal(t, 20, s.FibN)
		assert.Equal(t, 5*time.Millisecond, s.SettleDelay)
		assert.Equal(t, "h.db", s.History.Path)
		assert.Equal(t, 1000, s.Tasks)
	})

	t.Run("Missing explicit file", func(t *testing.T) {
		viper.Reset()
		err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
