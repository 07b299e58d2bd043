package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bjorndarri/jasperreports/pkg/catalog"
	"github.com/bjorndarri/jasperreports/pkg/cli"
	"github.com/bjorndarri/jasperreports/pkg/config"
	"github.com/bjorndarri/jasperreports/pkg/telemetry/logging"
	"github.com/bjorndarri/jasperreports/pkg/telemetry/metrics"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "jrcomp",
	Short: "jrcomp - JRXML component model builder",
	Long: `jrcomp parses the list, table and barcode components of JasperReports
JRXML templates into a typed component model.

It validates enumerated attributes, identities and the nesting of table
columns, rows and cells, and reports every problem with its file, line
and element path.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var exit *cli.ExitError
		if errors.As(err, &exit) {
			os.Exit(exit.Code)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults apply when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the configuration file named by --config, applies
// JRCOMP_* overrides and publishes it as the process configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("config", err.Error())
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	config.SetConfig(cfg)
	return cfg, nil
}

// newLogger builds the command logger. Logs go to stderr so command output
// on stdout stays machine readable.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, os.Stderr))
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger.Slog())
	return logger, nil
}

// openRecorder opens the catalog when it is enabled. The returned close
// function is never nil.
func openRecorder(cfg *config.Config, logger *slog.Logger, collector *metrics.Collector) (*catalog.Recorder, func(), error) {
	if !cfg.Catalog.Enabled {
		return nil, func() {}, nil
	}
	store, err := catalog.Open(&cfg.Catalog, logger)
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to open catalog: %w", err)
	}
	return catalog.NewRecorder(store, collector, logger), func() { store.Close() }, nil
}
