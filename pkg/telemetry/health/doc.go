// Package health provides liveness and readiness endpoints for the
// long-running watch command.
//
// Readiness aggregates named checks (the template catalog, the file watcher)
// that run concurrently with a per-check timeout:
//
//	checker := health.New(2 * time.Second)
//	checker.RegisterCheck("catalog", store.Ping)
//	health.Mount(mux, checker, version, commit)
//
// Endpoints:
//
//   - /health: always 200 while the process runs
//   - /ready: 200 when every check passes, 503 otherwise
//   - /version: build information
package health
