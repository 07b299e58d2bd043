// Package metrics provides Prometheus metrics for the jrcomp tooling.
//
// # Metrics Categories
//
//   - Parse Metrics: parse count, errors, duration, template size, components
//   - Catalog Metrics: stored records, writes, retention pruning
//   - Watch Metrics: filesystem events and debounced re-parses
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordParse("success", "", elapsed)
//	collector.RecordComponent("table")
//
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// Every Record method is a no-op on a nil Collector or when metrics are
// disabled, so callers never need to guard.
package metrics
