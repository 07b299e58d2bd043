// Package component provides the typed object graph produced by parsing the
// component elements of a JRXML report template.
//
// The graph is rooted at a Document. Every <componentElement> found in the
// template becomes a ComponentElement that pairs a ReportElement (key,
// identity and geometry) with one Component variant:
//
//	Document
//	└── ComponentElement
//	    ├── ReportElement
//	    └── Component
//	        ├── List
//	        │   └── ListContents (opaque nested elements)
//	        ├── Table
//	        │   ├── Rows (tableHeader, columnHeader, detail, groupHeader[], ...)
//	        │   ├── NoData (*BaseCell)
//	        │   └── Columns ([]TableNode)
//	        │       ├── Column (cells, detail cell)
//	        │       └── ColumnGroup (cells, nested Columns)
//	        └── Barcode (code/pattern/template expressions)
//
// # Tables
//
// TableNode is a tagged union over *Column and *ColumnGroup. Column groups
// nest to any depth; *Table and *ColumnGroup both implement ColumnContainer
// so a column attaches to whichever container is its immediate parent.
//
// Group header and footer sequences hold one entry per declared group level,
// in declaration order:
//
//	for i, gh := range column.GroupHeaders {
//	    fmt.Println(i, gh.GroupName, gh.Cell.Style)
//	}
//
// # Immutability
//
// Nodes have exported fields so that the builder can bind attributes by name,
// but the graph should be treated as immutable once Parse returns. Layout and
// rendering stages read it without modification.
package component
