package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// ParseIDKey is the context key for parse identifiers.
	ParseIDKey contextKey = "parse_id"

	// TemplateKey is the context key for template paths.
	TemplateKey contextKey = "template"

	// TraceIDKey is the context key for trace IDs.
	TraceIDKey contextKey = "trace_id"
)

// WithParseID adds a parse identifier to the context.
func WithParseID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ParseIDKey, id)
}

// GetParseID retrieves the parse identifier from the context.
func GetParseID(ctx context.Context) string {
	if id, ok := ctx.Value(ParseIDKey).(string); ok {
		return id
	}
	return ""
}

// WithTemplate adds a template path to the context.
func WithTemplate(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, TemplateKey, path)
}

// GetTemplate retrieves the template path from the context.
func GetTemplate(ctx context.Context) string {
	if path, ok := ctx.Value(TemplateKey).(string); ok {
		return path
	}
	return ""
}

// WithTraceID adds a trace ID to the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
func GetTraceID(ctx context.Context) string {
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// extractContextFields returns key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if id := GetParseID(ctx); id != "" {
		fields = append(fields, "parse_id", id)
	}
	if path := GetTemplate(ctx); path != "" {
		fields = append(fields, "template", path)
	}
	if traceID := GetTraceID(ctx); traceID != "" {
		fields = append(fields, "trace_id", traceID)
	}

	return fields
}
