package jrxml

import (
	"context"

	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/parser"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/validator"
)

// defaultParser is shared by the package-level helpers. Its registry is
// built on first use and then only read.
var defaultParser = parser.NewParser()

// Parse parses a template file without validation.
func Parse(ctx context.Context, path string) (*component.Document, error) {
	return defaultParser.Parse(ctx, path)
}

// ParseBytes parses a template held in memory without validation.
func ParseBytes(ctx context.Context, data []byte, source string) (*component.Document, error) {
	return defaultParser.ParseBytes(ctx, data, source)
}

// Validate lints a parsed document.
func Validate(doc *component.Document, strict bool) *validator.Report {
	return validator.NewValidator().WithStrictMode(strict).Validate(doc)
}

// ParseAndValidate parses and lints a template file. The report is returned
// whenever parsing succeeded; the error is non-nil when parsing failed or
// the report holds error-severity findings.
func ParseAndValidate(ctx context.Context, path string, strict bool) (*component.Document, *validator.Report, error) {
	doc, err := Parse(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	report := Validate(doc, strict)
	return doc, report, report.Err()
}

// ParseAndValidateBytes is ParseAndValidate for in-memory templates.
func ParseAndValidateBytes(ctx context.Context, data []byte, source string, strict bool) (*component.Document, *validator.Report, error) {
	doc, err := ParseBytes(ctx, data, source)
	if err != nil {
		return nil, nil, err
	}

	report := Validate(doc, strict)
	return doc, report, report.Err()
}
