// jrcomp builds the component model of JasperReports JRXML templates.
//
// It parses the list, table and barcode components of a template and
// reports malformed attributes with their source location.
//
// Usage:
//
//	# Lint one template
//	jrcomp lint --file reports/orders.jrxml
//
//	# Lint a directory, treating warnings as errors
//	jrcomp lint --dir reports/ --strict
//
//	# Show the component tree of a template
//	jrcomp inspect --file reports/orders.jrxml --format yaml
//
//	# Re-parse templates as they change and serve metrics
//	jrcomp watch --dir reports/ --metrics-addr 127.0.0.1:9464
//
//	# Show recorded parses
//	jrcomp catalog list --failed
package main

func main() {
	Execute()
}
