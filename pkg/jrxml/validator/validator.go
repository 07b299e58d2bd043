package validator

import (
	"fmt"

	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/errors"
)

// Severity grades a finding.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Issue is one validator finding.
type Issue struct {
	Severity Severity           `json:"severity" yaml:"severity"`
	Rule     string             `json:"rule" yaml:"rule"`
	Message  string             `json:"message" yaml:"message"`
	Location component.Location `json:"location" yaml:"location"`
}

// String formats the issue as "location: severity: message [rule]".
func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s [%s]", i.Location.String(), i.Severity, i.Message, i.Rule)
}

// Report holds the findings for one document.
type Report struct {
	Source string  `json:"source" yaml:"source"`
	Issues []Issue `json:"issues" yaml:"issues"`
}

// Count returns the number of issues with the given severity.
func (r *Report) Count(severity Severity) int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == severity {
			n++
		}
	}
	return n
}

// HasErrors reports whether any issue has error severity.
func (r *Report) HasErrors() bool {
	return r.Count(SeverityError) > 0
}

// Err returns the error-severity issues as an *errors.ErrorList, or nil.
func (r *Report) Err() error {
	list := errors.NewErrorList()
	for _, i := range r.Issues {
		if i.Severity != SeverityError {
			continue
		}
		list.Add(&errors.Error{
			Type:     errors.ErrorTypeValidation,
			Message:  fmt.Sprintf("%s [%s]", i.Message, i.Rule),
			Location: i.Location,
		})
	}
	return list.ToError()
}

// Validator runs every lint check over a document.
type Validator struct {
	strictMode bool // Warnings become errors
	disabled   map[string]bool
}

// NewValidator creates a validator with every check enabled.
func NewValidator() *Validator {
	return &Validator{disabled: make(map[string]bool)}
}

// WithStrictMode promotes warnings to errors.
func (v *Validator) WithStrictMode(strict bool) *Validator {
	v.strictMode = strict
	return v
}

// Disable turns off the named rules.
func (v *Validator) Disable(rules ...string) *Validator {
	for _, r := range rules {
		v.disabled[r] = true
	}
	return v
}

// Validate lints doc. A nil document yields an empty report.
func (v *Validator) Validate(doc *component.Document) *Report {
	report := &Report{}
	if doc == nil {
		return report
	}
	report.Source = doc.Source

	c := newChecker()
	// checker visits never fail
	_ = component.Walk(doc, c)

	for _, issue := range c.issues {
		if v.disabled[issue.Rule] {
			continue
		}
		if v.strictMode && issue.Severity == SeverityWarning {
			issue.Severity = SeverityError
		}
		report.Issues = append(report.Issues, issue)
	}
	return report
}
