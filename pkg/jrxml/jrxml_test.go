package jrxml

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/bjorndarri/jasperreports/pkg/jrxml/errors"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/validator"
)

func TestParse(t *testing.T) {
	doc, err := Parse(context.Background(), "testdata/valid/table.jrxml")
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if doc.ComponentCount() != 1 {
		t.Errorf("ComponentCount() = %d, want 1", doc.ComponentCount())
	}
	if got := doc.Components()[0].Key(); got != "ordersTable" {
		t.Errorf("Key() = %q, want %q", got, "ordersTable")
	}
}

func TestParseAndValidate_ParseFailure(t *testing.T) {
	doc, report, err := ParseAndValidate(context.Background(), "testdata/invalid/bad-uuid.jrxml", false)
	if doc != nil || report != nil {
		t.Error("a failed parse must not return a document or report")
	}
	if !stderrors.Is(err, errors.ErrMalformedIdentity) {
		t.Errorf("error = %v, want malformed identity", err)
	}
}

func TestParseAndValidateBytes(t *testing.T) {
	src := []byte(`<jasperReport xmlns="http://jasperreports.sourceforge.net/jasperreports"
	xmlns:c="http://jasperreports.sourceforge.net/jasperreports/components">
<componentElement><c:table/></componentElement></jasperReport>`)

	doc, report, err := ParseAndValidateBytes(context.Background(), src, "memory://empty", false)
	if err != nil {
		t.Fatalf("non-strict ParseAndValidateBytes() failed: %v", err)
	}
	if doc == nil || report.Count(validator.SeverityWarning) == 0 {
		t.Errorf("expected document and warnings, got %v", report)
	}

	_, report, err = ParseAndValidateBytes(context.Background(), src, "memory://empty", true)
	if err == nil {
		t.Fatal("strict ParseAndValidateBytes() should fail on warnings")
	}
	if !report.HasErrors() {
		t.Error("strict report should hold errors")
	}
}
