package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// MaxFibN bounds the workload size; the naive recursion takes minutes beyond it.
const MaxFibN = 40

var historyBackends = []string{"json", "sqlite", "sqlite3", "postgres", "postgresql"}

// ValidateConfig validates configuration values and returns an error if any are invalid.
// This function should be called after viper has loaded the configuration.
func ValidateConfig() error {
	var errors []string

	if viper.IsSet("tasks") {
		if tasks := viper.GetInt("tasks"); tasks <= 0 {
			errors = append(errors, fmt.Sprintf("tasks must be positive, got: %d", tasks))
		}
	}

	if viper.IsSet("fib_n") {
		if n := viper.GetInt("fib_n"); n < 0 || n > MaxFibN {
			errors = append(errors, fmt.Sprintf("fib_n must be between 0 and %d, got: %d", MaxFibN, n))
		}
	}

	if viper.IsSet("cpu_ghz") {
		if ghz := viper.GetFloat64("cpu_ghz"); ghz <= 0 {
			errors = append(errors, fmt.Sprintf("cpu_ghz must be positive, got: %v", ghz))
		}
	}

	if viper.IsSet("settle_delay") {
		if d := viper.GetDuration("settle_delay"); d < 0 {
			errors = append(errors, fmt.Sprintf("settle_delay must not be negative, got: %v", d))
		}
	}

	if viper.IsSet("regression_threshold") {
		if th := viper.GetFloat64("regression_threshold"); th < 0 {
			errors = append(errors, fmt.Sprintf("regression_threshold must not be negative, got: %v", th))
		}
	}

	if viper.IsSet("serve.interval") {
		if d := viper.GetDuration("serve.interval"); d <= 0 {
			errors = append(errors, fmt.Sprintf("serve.interval must be positive, got: %v", d))
		}
	}

	if viper.IsSet("history.backend") {
		backend := strings.ToLower(viper.GetString("history.backend"))
		valid := false
		for _, b := range historyBackends {
			if backend == b {
				valid = true
				break
			}
		}
		if !valid {
			errors = append(errors, fmt.Sprintf("history.backend must be one of json, sqlite, postgres, got: %q", backend))
		}
		if strings.HasPrefix(backend, "postgres") && viper.GetString("history.dsn") == "" {
			errors = append(errors, "history.dsn is required for the postgres backend")
		}
	}

	for _, key := range []string{"metrics.pushgateway", "notify.slack_webhook"} {
		raw := viper.GetString(key)
		if raw == "" {
			continue
		}
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			errors = append(errors, fmt.Sprintf("%s must be an absolute URL, got: %q", key, raw))
		}
	}

	// If there are any errors, return them
	if len(errors) > 0 {
		errorMsg := errors[0]
		for i := 1; i < len(errors); i++ {
			errorMsg += "\n  " + errors[i]
		}
		return fmt.Errorf("configuration validation failed:\n  %s", errorMsg)
	}

	return nil
}
