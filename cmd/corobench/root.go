package main

import (
	"fmt"
	"os"

	"corobench/internal/config"
	"corobench/internal/telemetry"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var exit = os.Exit

// closeLogger flushes the log file opened by the last initConfig.
var closeLogger = func() error { return nil }

// newRootCmd builds the command tree. Run with no subcommand it performs
// a single benchmark pass over all four execution models.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "corobench",
		Short: "Compare the per-task overhead of four execution models",
		Long: `corobench runs the same batch of Fibonacci tasks under four execution
models (a sequential loop, one OS thread per task, one single-shot task
coroutine per task, and one generator for the whole batch) and decomposes
the elapsed CPU cycles of each into creation, destruction, resume, compute
and switch overhead.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
		RunE:              runBench,
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default is ./corobench.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable styled report output")
	addRunFlags(rootCmd.Flags())

	rootCmd.AddCommand(
		newRunCmd(),
		newIotaCmd(),
		newHistoryCmd(),
		newServeCmd(),
		NewVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command tree and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "corobench: command panicked: %v\n", r)
			exit(1)
		}
	}()

	err := newRootCmd().Execute()
	_ = closeLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'corobench --help' for usage.")
		exit(1)
	}
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"verbose":          "verbose",
	"log-file":         "log_file",
	"fib-n":            "fib_n",
	"tasks":            "tasks",
	"cpu-ghz":          "cpu_ghz",
	"settle":           "settle_delay",
	"threshold":        "regression_threshold",
	"history-backend":  "history.backend",
	"history-path":     "history.path",
	"history-dsn":      "history.dsn",
	"metrics-textfile": "metrics.textfile",
	"pushgateway":      "metrics.pushgateway",
	"addr":             "serve.addr",
	"interval":         "serve.interval",
}

// bindFlags binds every known flag present in fs to its configuration key.
func bindFlags(fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		err = viper.BindPFlag(key, f)
	})
	return err
}

// initConfig reads in config file and ENV variables, applies flag
// overrides, validates the result and sets up logging.
func initConfig(cmd *cobra.Command, _ []string) error {
	if err := bindFlags(cmd.Flags()); err != nil {
		return err
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	if err := config.Load(cfgFile); err != nil {
		return err
	}
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		viper.Set("color", false)
	}

	if err := config.ValidateConfig(); err != nil {
		return err
	}

	closeLogger = telemetry.InitLogger(viper.GetBool("verbose"), viper.GetString("log_file"))
	return nil
}
