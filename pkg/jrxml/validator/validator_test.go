package validator

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/errors"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/parser"
)

var testParser = parser.NewParser()

func parse(t *testing.T, body string) *component.Document {
	t.Helper()
	src := `<jasperReport xmlns="http://jasperreports.sourceforge.net/jasperreports"
	xmlns:c="http://jasperreports.sourceforge.net/jasperreports/components">` + body + `</jasperReport>`
	doc, err := testParser.ParseBytes(context.Background(), []byte(src), "inline.jrxml")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	return doc
}

func rules(r *Report) map[string]Severity {
	out := make(map[string]Severity)
	for _, i := range r.Issues {
		out[i.Rule] = i.Severity
	}
	return out
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		rule     string
		severity Severity
	}{
		{
			name:     "empty table",
			body:     `<componentElement><c:table><datasetRun subDataset="d"/></c:table></componentElement>`,
			rule:     RuleEmptyTable,
			severity: SeverityWarning,
		},
		{
			name: "empty column group",
			body: `<componentElement><c:table><datasetRun subDataset="d"/>
<c:columnGroup width="10" uuid="7a8b9c0d-1e2f-4a3b-8c4d-5e6f7a8b9c0d"/></c:table></componentElement>`,
			rule:     RuleEmptyColumnGroup,
			severity: SeverityWarning,
		},
		{
			name: "duplicate uuid",
			body: `<componentElement><c:table><datasetRun subDataset="d"/>
<c:column width="10" uuid="7a8b9c0d-1e2f-4a3b-8c4d-5e6f7a8b9c0d"/>
<c:column width="10" uuid="7a8b9c0d-1e2f-4a3b-8c4d-5e6f7a8b9c0d"/></c:table></componentElement>`,
			rule:     RuleDuplicateUUID,
			severity: SeverityWarning,
		},
		{
			name: "missing uuid",
			body: `<componentElement><c:table><datasetRun subDataset="d"/>
<c:column width="10"/></c:table></componentElement>`,
			rule:     RuleMissingUUID,
			severity: SeverityInfo,
		},
		{
			name: "group mismatch",
			body: `<componentElement><c:table><datasetRun subDataset="d"/>
<c:groupHeader groupName="region"><c:row/></c:groupHeader>
<c:column width="10" uuid="7a8b9c0d-1e2f-4a3b-8c4d-5e6f7a8b9c0d">
<c:groupHeader groupName="country"><c:cell height="5"/></c:groupHeader></c:column></c:table></componentElement>`,
			rule:     RuleGroupMismatch,
			severity: SeverityWarning,
		},
		{
			name: "zero width",
			body: `<componentElement><c:table><datasetRun subDataset="d"/>
<c:column uuid="7a8b9c0d-1e2f-4a3b-8c4d-5e6f7a8b9c0d"/></c:table></componentElement>`,
			rule:     RuleZeroWidth,
			severity: SeverityWarning,
		},
		{
			name:     "list without dataset run",
			body:     `<componentElement><c:list><c:listContents height="10"/></c:list></componentElement>`,
			rule:     RuleMissingDatasetRun,
			severity: SeverityWarning,
		},
		{
			name:     "barcode without code",
			body:     `<componentElement><c:Code128/></componentElement>`,
			rule:     RuleMissingCode,
			severity: SeverityWarning,
		},
		{
			name: "group evaluation without group",
			body: `<componentElement><c:QRCode evaluationTime="Group">
<c:codeExpression>$F{id}</c:codeExpression></c:QRCode></componentElement>`,
			rule:     RuleMissingEvaluationGroup,
			severity: SeverityWarning,
		},
		{
			name: "empty expression",
			body: `<componentElement><reportElement x="0" y="0" width="1" height="1">
<printWhenExpression>   </printWhenExpression></reportElement><c:Code39>
<c:codeExpression>"A"</c:codeExpression></c:Code39></componentElement>`,
			rule:     RuleEmptyExpression,
			severity: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := NewValidator().Validate(parse(t, tt.body))
			got, ok := rules(report)[tt.rule]
			if !ok {
				t.Fatalf("rule %s not reported; issues = %v", tt.rule, report.Issues)
			}
			if got != tt.severity {
				t.Errorf("severity = %s, want %s", got, tt.severity)
			}
			if report.HasErrors() {
				t.Errorf("non-strict validation produced errors: %v", report.Issues)
			}
		})
	}
}

func TestValidate_CleanDocument(t *testing.T) {
	doc := parse(t, `<componentElement><reportElement key="codes" x="0" y="0" width="1" height="1"/>
<c:list><datasetRun subDataset="d"/><c:listContents height="10"/></c:list></componentElement>`)

	report := NewValidator().Validate(doc)
	if len(report.Issues) != 0 {
		t.Errorf("expected no issues, got %v", report.Issues)
	}
	if report.Err() != nil {
		t.Errorf("Err() = %v, want nil", report.Err())
	}
	if report.Source != "inline.jrxml" {
		t.Errorf("Source = %q", report.Source)
	}
}

func TestValidate_StrictMode(t *testing.T) {
	doc := parse(t, `<componentElement><reportElement key="codes" x="0" y="0" width="1" height="1"/>
<c:table><datasetRun subDataset="d"/><c:column width="10"/></c:table></componentElement>`)

	report := NewValidator().WithStrictMode(true).Validate(doc)
	if report.Count(SeverityError) != 0 {
		t.Errorf("info findings must not be promoted: %v", report.Issues)
	}

	doc = parse(t, `<componentElement><c:table/></componentElement>`)
	report = NewValidator().WithStrictMode(true).Validate(doc)
	if !report.HasErrors() {
		t.Fatal("strict mode should promote warnings")
	}

	err := report.Err()
	if !stderrors.Is(err, &errors.Error{Type: errors.ErrorTypeValidation}) {
		t.Errorf("Err() = %v, want validation errors", err)
	}
	if !strings.Contains(err.Error(), "["+RuleEmptyTable+"]") {
		t.Errorf("error text lacks rule name: %v", err)
	}
}

func TestValidate_Disable(t *testing.T) {
	doc := parse(t, `<componentElement><c:table/></componentElement>`)

	report := NewValidator().Disable(RuleEmptyTable, RuleMissingDatasetRun).Validate(doc)
	if len(report.Issues) != 0 {
		t.Errorf("disabled rules still reported: %v", report.Issues)
	}
}

func TestValidate_LocationAndKey(t *testing.T) {
	doc := parse(t, `
<componentElement><reportElement key="orders" x="0" y="0" width="1" height="1"/><c:table/></componentElement>`)

	report := NewValidator().Validate(doc)
	if len(report.Issues) == 0 {
		t.Fatal("expected issues")
	}
	issue := report.Issues[0]
	if issue.Location.Line != 3 {
		t.Errorf("Location.Line = %d, want 3", issue.Location.Line)
	}
	if !strings.Contains(issue.Message, `"orders"`) {
		t.Errorf("message does not name the key: %q", issue.Message)
	}
	if !strings.HasPrefix(issue.String(), "inline.jrxml:3:") {
		t.Errorf("String() = %q", issue.String())
	}
}

func TestValidate_NilDocument(t *testing.T) {
	if got := NewValidator().Validate(nil); len(got.Issues) != 0 {
		t.Errorf("expected empty report, got %v", got.Issues)
	}
}
