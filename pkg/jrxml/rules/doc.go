// Package rules provides the attribute translation rules and the expression
// binder used by the component schema.
//
// Each rule reads one attribute of the current element, converts it to a
// domain value and hands it to a typed setter on the object under
// construction. Conversion failures abort the parse with a structured error.
package rules
