package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. COROBENCH_TASKS.
const EnvPrefix = "COROBENCH"

// Settings is the typed view of the loaded configuration.
type Settings struct {
	FibN                int           `mapstructure:"fib_n"`
	Tasks               int           `mapstructure:"tasks"`
	CPUGHz              float64       `mapstructure:"cpu_ghz"`
	SettleDelay         time.Duration `mapstructure:"settle_delay"`
	Verbose             bool          `mapstructure:"verbose"`
	LogFile             string        `mapstructure:"log_file"`
	Color               bool          `mapstructure:"color"`
	RegressionThreshold float64       `mapstructure:"regression_threshold"`

	History HistorySettings `mapstructure:"history"`
	Metrics MetricsSettings `mapstructure:"metrics"`
	Notify  NotifySettings  `mapstructure:"notify"`
	Serve   ServeSettings   `mapstructure:"serve"`
}

type HistorySettings struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
	DSN     string `mapstructure:"dsn"`
}

type MetricsSettings struct {
	Textfile    string `mapstructure:"textfile"`
	Pushgateway string `mapstructure:"pushgateway"`
	Job         string `mapstructure:"job"`
}

type NotifySettings struct {
	SlackWebhook string `mapstructure:"slack_webhook"`
}

type ServeSettings struct {
	Addr     string        `mapstructure:"addr"`
	Interval time.Duration `mapstructure:"interval"`
}

// SetDefaults registers the default of every key. The benchmark defaults
// reproduce the reference comparison: fib(25) over 1000 tasks at 2.8 GHz.
func SetDefaults() {
	viper.SetDefault("fib_n", 25)
	viper.SetDefault("tasks", 1000)
	viper.SetDefault("cpu_ghz", 2.8)
	viper.SetDefault("settle_delay", "10ms")
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")
	viper.SetDefault("color", true)
	viper.SetDefault("regression_threshold", 10.0)

	viper.SetDefault("history.backend", "json")
	viper.SetDefault("history.path", "")
	viper.SetDefault("history.dsn", "")

	viper.SetDefault("metrics.textfile", "")
	viper.SetDefault("metrics.pushgateway", "")
	viper.SetDefault("metrics.job", "corobench")

	viper.SetDefault("notify.slack_webhook", "")

	viper.SetDefault("serve.addr", ":2112")
	viper.SetDefault("serve.interval", "1m")
}

// Load initializes the configuration from file and environment variables.
// A missing config file is not an error; an unreadable one is.
func Load(cfgFile string) error {
	// explicit .env loading, a missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("corobench")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	SetDefaults()

	// The standard Slack variable is honoured when ours is unset.
	if os.Getenv(EnvPrefix+"_NOTIFY_SLACK_WEBHOOK") == "" && os.Getenv("SLACK_WEBHOOK_URL") != "" {
		viper.SetDefault("notify.slack_webhook", os.Getenv("SLACK_WEBHOOK_URL"))
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	return nil
}

// Current decodes the loaded configuration.
func Current() (Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return s, nil
}
