// Package schema registers the rules that build the component model.
//
// NewRegistry assembles the complete rule set for the list, table and
// barcode components and seals it. The structural elements of the components
// live in the components namespace; expressions attached to columns and rows,
// the componentElement wrapper and its reportElement live in the canonical
// report namespace. Every other element is captured as a RawElement by the
// default rules so nested report content survives the parse.
//
// The table rules are recursive: "*/column" and "*/columnGroup" match at any
// depth and always compose into the object directly below them on the stack,
// which is the table or the enclosing column group.
package schema
