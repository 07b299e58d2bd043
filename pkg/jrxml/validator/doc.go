// Package validator lints a parsed component document.
//
// Building a component model never rejects a structurally odd but
// well-formed template; this package reports such findings afterwards:
//
//   - empty-table: a table without columns
//   - empty-column-group: a column group without columns
//   - duplicate-uuid: two columns or report elements share an identity
//   - missing-uuid: a column has no identity (info)
//   - group-mismatch: a column group cell names a group the table has no
//     group row for
//   - zero-width: a leaf column without width
//   - missing-dataset-run: a list or table without a dataset run
//   - missing-code: a barcode without a code expression
//   - missing-evaluation-group: evaluationTime="Group" without a group
//   - empty-expression: an expression with no source text
//
// Findings are warnings (or infos) by default. In strict mode warnings are
// promoted to errors:
//
//	report := validator.NewValidator().WithStrictMode(true).Validate(doc)
//	if err := report.Err(); err != nil {
//	    return err
//	}
package validator
