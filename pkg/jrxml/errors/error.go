package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
)

// ErrorType categorizes the errors produced while building a component model.
type ErrorType string

const (
	ErrorTypeUnrecognizedConstant ErrorType = "unrecognized_constant" // Enumerated attribute outside its domain
	ErrorTypeMalformedIdentity    ErrorType = "malformed_identity"    // uuid attribute is not a UUID
	ErrorTypeComposition          ErrorType = "composition"           // Child cannot be attached to its parent
	ErrorTypeBinding              ErrorType = "binding"               // Attribute value cannot be converted
	ErrorTypeRegistration         ErrorType = "registration"          // Invalid rule registration
	ErrorTypeSyntax               ErrorType = "syntax"                // XML tokenizer error
	ErrorTypeIO                   ErrorType = "io"                    // File I/O error
	ErrorTypeValidation           ErrorType = "validation"            // Downstream lint finding
)

// Error represents a rich error with location, context, and suggestions.
type Error struct {
	Type       ErrorType          // Category of error
	Message    string             // Error message
	Location   component.Location // Source location (file, line, column, path)
	Attribute  string             // Offending attribute, if any
	Value      string             // Offending attribute value, if any
	Context    string             // Surrounding lines of the template
	Suggestion string             // Suggested fix (optional)
	Err        error              // Underlying cause (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s\n", e.Type, e.Message))

	if e.Location.IsValid() {
		if e.Location.Path != "" {
			sb.WriteString(fmt.Sprintf("  --> %s (%s)\n", e.Location.String(), e.Location.Path))
		} else {
			sb.WriteString(fmt.Sprintf("  --> %s\n", e.Location.String()))
		}
	} else if e.Location.Path != "" {
		sb.WriteString(fmt.Sprintf("  --> %s\n", e.Location.Path))
	}

	if e.Context != "" {
		sb.WriteString("  |\n")
		sb.WriteString(e.Context)
		sb.WriteString("  |\n")
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  = suggestion: %s\n", e.Suggestion))
	}

	return sb.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same type.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Type == e.Type && t.Message == ""
}

// Sentinels for use with errors.Is.
var (
	ErrUnrecognizedConstant = &Error{Type: ErrorTypeUnrecognizedConstant}
	ErrMalformedIdentity    = &Error{Type: ErrorTypeMalformedIdentity}
	ErrComposition          = &Error{Type: ErrorTypeComposition}
	ErrBinding              = &Error{Type: ErrorTypeBinding}
	ErrRegistration         = &Error{Type: ErrorTypeRegistration}
	ErrSyntax               = &Error{Type: ErrorTypeSyntax}
)

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// NewUnrecognizedConstant reports an enumerated attribute value that is not
// in the attribute's domain. valid lists the recognized labels.
func NewUnrecognizedConstant(attribute, value string, valid []string) *Error {
	return &Error{
		Type:       ErrorTypeUnrecognizedConstant,
		Message:    fmt.Sprintf("unrecognized value %q for attribute %s", value, attribute),
		Attribute:  attribute,
		Value:      value,
		Suggestion: SuggestConstant(value, valid),
	}
}

// NewMalformedIdentity reports a uuid attribute that does not parse.
func NewMalformedIdentity(attribute, value string, cause error) *Error {
	return &Error{
		Type:       ErrorTypeMalformedIdentity,
		Message:    fmt.Sprintf("malformed identity %q for attribute %s", value, attribute),
		Attribute:  attribute,
		Value:      value,
		Suggestion: "Use the canonical form xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx",
		Err:        cause,
	}
}

// NewComposition reports a child that cannot be attached to its parent.
func NewComposition(format string, args ...any) *Error {
	return &Error{
		Type:    ErrorTypeComposition,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewBinding reports an attribute set that cannot be bound to the object
// under construction.
func NewBinding(cause error) *Error {
	return &Error{
		Type:    ErrorTypeBinding,
		Message: fmt.Sprintf("cannot bind attributes: %v", cause),
		Err:     cause,
	}
}

// NewRegistration reports an invalid rule registration.
func NewRegistration(format string, args ...any) *Error {
	return &Error{
		Type:    ErrorTypeRegistration,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewSyntax wraps an XML tokenizer error.
func NewSyntax(cause error, location component.Location) *Error {
	return &Error{
		Type:     ErrorTypeSyntax,
		Message:  cause.Error(),
		Location: location,
		Err:      cause,
	}
}

// NewIO wraps a file I/O error.
func NewIO(path string, cause error) *Error {
	return &Error{
		Type:     ErrorTypeIO,
		Message:  fmt.Sprintf("cannot read template: %v", cause),
		Location: component.Location{File: path},
		Err:      cause,
	}
}

// ErrorList represents a collection of errors. It allows accumulating
// multiple errors instead of failing on the first one.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]*Error, 0),
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.Errors = append(el.Errors, err)
}

// AddError creates and adds a new error with the given parameters.
func (el *ErrorList) AddError(errType ErrorType, message string, location component.Location) {
	el.Add(&Error{
		Type:     errType,
		Message:  message,
		Location: location,
	})
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("Error %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToError returns nil if the error list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// Unwrap exposes the listed errors to errors.Is and errors.As.
func (el *ErrorList) Unwrap() []error {
	out := make([]error, len(el.Errors))
	for i, err := range el.Errors {
		out[i] = err
	}
	return out
}

// ByType returns all errors of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var result []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			result = append(result, err)
		}
	}
	return result
}

// HasErrorType returns true if the list contains at least one error of the
// given type.
func (el *ErrorList) HasErrorType(errType ErrorType) bool {
	for _, err := range el.Errors {
		if err.Type == errType {
			return true
		}
	}
	return false
}
