// Package logging provides structured logging for the jrcomp tooling.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON and text formats
//   - Context-aware logging carrying template and parse identifiers
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	if err != nil {
//	    return err
//	}
//
//	ctx = logging.WithTemplate(ctx, "reports/orders.jrxml")
//	logger.InfoContext(ctx, "template parsed", "components", 3)
//
// The underlying *slog.Logger is available through Slog for packages such as
// the digester that accept a plain slog logger.
package logging
