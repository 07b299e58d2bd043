// Package jrxml builds a typed component model from JRXML report templates.
//
// It covers the list, table and barcode components of the JasperReports
// components namespace. Parsing is rule driven: a registry maps element
// paths to rules that create, configure and attach model objects while an
// XML token stream is read.
//
// # Architecture
//
// The package is organized into subpackages:
//
//   - component: the object graph (Document, Table, Column, List, Barcode, ...)
//   - digester: the pattern registry and the event-driven rule engine
//   - rules: attribute translators (constants, identities, styles, dataset
//     contexts) and the expression binder
//   - schema: the component rule set assembled into a sealed registry
//   - parser: the file and byte front end with limits and telemetry
//   - validator: optional lint checks over a built document
//   - errors: located errors with context lines and suggestions
//
// # Basic Usage
//
//	doc, err := jrxml.Parse(ctx, "reports/orders.jrxml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, ce := range doc.Components() {
//	    fmt.Println(ce.Key(), ce.Component.Kind())
//	}
//
// Parse and lint in one step:
//
//	doc, report, err := jrxml.ParseAndValidate(ctx, path, true)
package jrxml
