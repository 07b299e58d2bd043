// Package telemetry bundles the observability stack of the jrcomp tooling.
//
// # Components
//
//   - logging: Structured slog logging
//   - metrics: Prometheus metrics for parses, the catalog and the watcher
//   - tracing: OpenTelemetry spans around each parse
//   - health: Liveness and readiness endpoints for the watch server
//
// # Usage
//
//	tel, err := telemetry.New(&cfg.Telemetry, version, os.Stderr)
//	if err != nil {
//	    return err
//	}
//	defer tel.Shutdown(context.Background())
//
//	tel.Logger().Info("watching", "paths", cfg.Watch.Paths)
//	tel.Metrics().RecordParse("success", "", elapsed)
package telemetry
