package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys recorded on parse spans.
const (
	AttrTemplate       = "jrcomp.template"
	AttrTemplateBytes  = "jrcomp.template.bytes"
	AttrComponentCount = "jrcomp.components"
	AttrComponentKind  = "jrcomp.component.kind"

	AttrErrorType    = "jrcomp.error.type"
	AttrErrorMessage = "error.message"
)

// SetTemplateAttributes records the template source and size.
func SetTemplateAttributes(span trace.Span, source string, size int64) {
	span.SetAttributes(
		attribute.String(AttrTemplate, source),
		attribute.Int64(AttrTemplateBytes, size),
	)
}

// SetComponentAttributes records how many components a parse built and of
// which kinds.
func SetComponentAttributes(span trace.Span, kinds []string) {
	span.SetAttributes(
		attribute.Int(AttrComponentCount, len(kinds)),
		attribute.StringSlice(AttrComponentKind, kinds),
	)
}

// SetErrorType records the category of a failed parse.
func SetErrorType(span trace.Span, errorType string) {
	if errorType == "" {
		return
	}
	span.SetAttributes(attribute.String(AttrErrorType, errorType))
}
