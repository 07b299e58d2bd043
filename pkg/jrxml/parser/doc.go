// Package parser reads JRXML templates from files, byte slices or readers
// and builds their component model.
//
// A Parser owns one sealed rule registry, built on first use, and is safe
// for concurrent use. Each call runs an independent digester pass:
//
//	p := parser.NewParser().WithMaxDepth(128)
//	doc, err := p.Parse(ctx, "reports/orders.jrxml")
//	if err != nil {
//	    // err is an *errors.Error carrying the location and the
//	    // surrounding template lines
//	}
//
// A failed parse never returns a partially built Document.
//
// When a metrics collector or tracer is attached, every parse records its
// outcome, duration, template size and the kinds of components built.
package parser
