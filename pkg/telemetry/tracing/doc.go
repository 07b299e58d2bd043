// Package tracing provides OpenTelemetry tracing for template parsing.
//
// Each parse runs inside a span carrying the template source, its size, the
// kinds of components built and, on failure, the error category. Spans are
// exported over OTLP gRPC when tracing is enabled; otherwise a noop tracer is
// used and span creation costs next to nothing.
//
// # Sampling Strategies
//
//   - always: Sample all traces
//   - never: Sample no traces
//   - ratio: Sample a fraction of traces by trace ID
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, "jrxml.parse")
//	defer span.End()
package tracing
