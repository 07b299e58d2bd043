// Package digester turns an XML token stream into an object graph by firing
// rules registered against element path patterns.
//
// # Patterns
//
// A pattern is either an exact element path ("jasperReport/detail/band") or a
// wildcard suffix ("*/componentElement/table"). For each element the registry
// selects the exact pattern if one is registered, otherwise the longest
// matching wildcard suffix, otherwise the catch-all "*". Rules registered with
// a namespace only fire for elements in that namespace. When no rule is left
// the registry's default rules apply.
//
// # Dispatch
//
// For every matched element the digester calls Begin on each rule in
// registration order when the start tag is read, then Body in registration
// order with the element's character data, then End in reverse registration
// order when the end tag is read. Reverse End order lets a composition rule
// registered after a creation rule attach the new object to its parent before
// the creation rule pops it.
//
// All mutable parse state lives in a per-parse Context. A sealed Registry is
// read-only and may be shared by concurrent parses.
package digester
