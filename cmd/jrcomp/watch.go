package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bjorndarri/jasperreports/pkg/catalog"
	"github.com/bjorndarri/jasperreports/pkg/cli"
	"github.com/bjorndarri/jasperreports/pkg/config"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/parser"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/validator"
	"github.com/bjorndarri/jasperreports/pkg/telemetry"
	"github.com/bjorndarri/jasperreports/pkg/telemetry/health"
	"github.com/bjorndarri/jasperreports/pkg/telemetry/tracing"
	"github.com/bjorndarri/jasperreports/pkg/watcher"
)

const shutdownTimeout = 10 * time.Second

var watchFlags struct {
	dirs        []string
	recursive   bool
	metricsAddr string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-parse templates as they change",
	Long: `Watch template directories and re-parse every template that changes.

Each re-parse is linted, logged and, when the catalog is enabled, recorded.
With --metrics-addr (or telemetry.metrics.enabled) an HTTP server exposes:
  /metrics   Prometheus metrics
  /health    liveness
  /ready     readiness of the watcher and the catalog
  /version   build information

Examples:
  jrcomp watch --dir reports/
  jrcomp watch --dir reports/ --recursive --metrics-addr 127.0.0.1:9464`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringSliceVarP(&watchFlags.dirs, "dir", "d", nil, "directory to watch (repeatable, overrides watch.paths)")
	watchCmd.Flags().BoolVarP(&watchFlags.recursive, "recursive", "r", false, "watch subdirectories")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics-addr", "", "serve metrics and health on this address")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(watchFlags.dirs) > 0 {
		cfg.Watch.Paths = watchFlags.dirs
	}
	if watchFlags.recursive {
		cfg.Watch.Recursive = true
	}
	if watchFlags.metricsAddr != "" {
		cfg.Telemetry.Metrics.Enabled = true
		cfg.Telemetry.Metrics.ListenAddress = watchFlags.metricsAddr
	}
	if len(cfg.Watch.Paths) == 0 {
		return cli.NewConfigError("watch.paths", "no directory to watch (use --dir)")
	}

	tel, err := telemetry.New(&cfg.Telemetry, Version, os.Stderr)
	if err != nil {
		return cli.NewConfigError("telemetry", err.Error())
	}
	logger := tel.Logger().Slog()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tel.Shutdown(ctx); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()

	recorder, closeCatalog, err := openRecorder(cfg, logger, tel.Metrics())
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	defer closeCatalog()

	if recorder != nil {
		pruner := catalog.NewPruner(recorder.Store(), cfg.Catalog.Retention, tel.Metrics(), logger)
		scheduler := catalog.NewScheduler(pruner)
		if err := scheduler.Start(ctx); err != nil {
			logger.Warn("failed to start retention scheduler", "error", err)
		} else {
			defer scheduler.Stop()
			if next := scheduler.NextRun(); next != nil {
				logger.Debug("catalog retention scheduled", "next_run", next)
			}
		}
	}

	p := parser.FromConfig(&cfg.Parser).
		WithLogger(logger).
		WithMetrics(tel.Metrics()).
		WithTracer(tel.Tracer())

	w, err := watcher.New(watcher.FromConfig(&cfg.Watch), p,
		watcher.WithValidator(validator.NewValidator().WithStrictMode(cfg.Parser.Strict)),
		watcher.WithRecorder(recorder),
		watcher.WithMetrics(tel.Metrics()),
		watcher.WithLogger(logger),
	)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}

	events, err := w.Scan(ctx)
	if err != nil {
		return cli.NewCommandError("watch", err)
	}
	failed := 0
	for _, ev := range events {
		if ev.Err != nil {
			failed++
		}
	}
	fmt.Fprintf(output(cmd), "✓ Scanned %d template(s), %d failed\n", len(events), failed)

	var srv *http.Server
	errChan := make(chan error, 2)
	if cfg.Telemetry.Metrics.Enabled {
		srv = newMetricsServer(cfg, tel, w, recorder)
		go func() {
			logger.Info("starting metrics server", "address", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errChan <- fmt.Errorf("metrics server: %w", err)
			}
		}()
		fmt.Fprintf(output(cmd), "✓ Metrics endpoint: http://%s%s\n", srv.Addr, cfg.Telemetry.Metrics.Path)
	}

	go func() {
		if err := w.Watch(ctx); err != nil {
			errChan <- err
		}
	}()
	fmt.Fprintln(output(cmd), "Watching for changes. Press Ctrl+C to stop")

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-errChan:
		runErr = cli.NewCommandError("watch", err)
	}
	w.Stop()

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown failed", "error", err)
		}
	}
	return runErr
}

// newMetricsServer serves metrics and the health endpoints.
func newMetricsServer(cfg *config.Config, tel *telemetry.Telemetry, w *watcher.Watcher, recorder *catalog.Recorder) *http.Server {
	checker := health.New(health.DefaultCheckTimeout)
	checker.RegisterCheck("watcher", w.Check)
	if recorder != nil {
		checker.RegisterCheck("catalog", recorder.Store().Ping)
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Telemetry.Metrics.Path, tel.Metrics().Handler())
	health.Mount(mux, checker, Version, GitCommit)

	return &http.Server{
		Addr:              cfg.Telemetry.Metrics.ListenAddress,
		Handler:           tracing.HTTPMiddleware(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
