// Package catalog records the outcome of every template parse.
//
// A Record holds the template path, a content hash, the parse duration,
// the error type on failure and the component kinds found on success.
// Records live in a Store: MemoryStore for tests and one-shot runs, or
// SQLiteStore backed by either the pure Go driver (modernc.org/sqlite,
// driver name "sqlite") or the cgo driver (github.com/mattn/go-sqlite3,
// driver name "sqlite3").
//
// Retention is enforced by a Pruner, which a Scheduler runs on a cron
// schedule:
//
//	store, _ := catalog.Open(&cfg.Catalog, logger)
//	pruner := catalog.NewPruner(store, cfg.Catalog.Retention, collector, logger)
//	_ = catalog.NewScheduler(pruner).Start(ctx)
package catalog
