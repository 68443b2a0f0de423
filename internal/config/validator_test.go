package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		setup     func()
		wantError bool
		errMsg    string
	}{
		{
			name: "Valid Configuration",
			setup: func() {
				viper.Set("tasks", 1000)
				viper.Set("fib_n", 25)
				viper.Set("cpu_ghz", 2.8)
				viper.Set("settle_delay", "10ms")
				viper.Set("history.backend", "sqlite")
				viper.Set("metrics.pushgateway", "http://localhost:9091")
			},
			wantError: false,
		},
		{
			name:      "Defaults Are Valid",
			setup:     SetDefaults,
			wantError: false,
		},
		{
			name: "Invalid Tasks",
			setup: func() {
				viper.Set("tasks", 0)
			},
			wantError: true,
			errMsg:    "tasks must be positive",
		},
		{
			name: "Invalid Fib N",
			setup: func() {
				viper.Set("fib_n", 90)
			},
			wantError: true,
			errMsg:    "fib_n must be between 0 and 40",
		},
		{
			name: "Invalid Frequency",
			setup: func() {
				viper.Set("cpu_ghz", 0)
			},
			wantError: true,
			errMsg:    "cpu_ghz must be positive",
		},
		{
			name: "Negative Settle Delay",
			setup: func() {
				viper.Set("settle_delay", "-5ms")
			},
			wantError: true,
			errMsg:    "settle_delay must not be negative",
		},
		{
			name: "Unknown Backend",
			setup: func() {
				viper.Set("history.backend", "mongodb")
			},
			wantError: true,
			errMsg:    "history.backend must be one of",
		},
		{
			name: "Postgres Without DSN",
			setup: func() {
				viper.Set("history.backend", "postgres")
			},
			wantError: true,
			errMsg:    "history.dsn is required",
		},
		{
			name: "Relative Pushgateway",
			setup: func() {
				viper.Set("metrics.pushgateway", "localhost")
			},
			wantError: true,
			errMsg:    "metrics.pushgateway must be an absolute URL",
		},
		{
			name: "Invalid Serve Interval",
			setup: func() {
				viper.Set("serve.interval", "0s")
			},
			wantError: true,
			errMsg:    "serve.interval must be positive",
		},
		{
			name: "Multiple Errors",
			setup: func() {
				viper.Set("tasks", -5)
				viper.Set("regression_threshold", -1)
			},
			wantError: true,
			errMsg:    "configuration validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Reset viper for each test
			viper.Reset()
			defer viper.Reset()

			if tt.setup != nil {
				tt.setup()
			}

			err := ValidateConfig()
			if tt.wantError {
				if err == nil {
					t.Errorf("ValidateConfig() expected error, got nil")
				} else if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ValidateConfig() error = %v, want error containing %v", err, tt.errMsg)
				}
			} else {
				if err != nil {
					t.Errorf("ValidateConfig() unexpected error: %v", err)
				}
			}
		})
	}
}
