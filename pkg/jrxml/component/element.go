package component

import "github.com/google/uuid"

// Element is a report element nested in a band, a list or a table cell.
// It is either a *ComponentElement or a *RawElement.
type Element interface {
	ElementName() string
}

// ElementContainer is implemented by nodes that own an ordered sequence of
// nested report elements.
type ElementContainer interface {
	AddElement(Element)
}

// Document is the root of a parsed template.
type Document struct {
	Source   string    // Path or label of the parsed template
	Elements []Element // Top-level elements in document order
}

// NewDocument creates an empty document for the given source.
func NewDocument(source string) *Document {
	return &Document{Source: source}
}

// AddElement appends a top-level element.
func (d *Document) AddElement(e Element) {
	d.Elements = append(d.Elements, e)
}

// Components returns every component element in the document in document
// order, including components nested inside lists and table cells.
func (d *Document) Components() []*ComponentElement {
	var out []*ComponentElement
	collectComponents(d.Elements, &out)
	return out
}

// ComponentCount returns the number of component elements in the document.
func (d *Document) ComponentCount() int {
	return len(d.Components())
}

func collectComponents(elems []Element, out *[]*ComponentElement) {
	for _, e := range elems {
		switch v := e.(type) {
		case *ComponentElement:
			*out = append(*out, v)
			for _, nested := range nestedElements(v.Component) {
				collectComponents(nested, out)
			}
		case *RawElement:
			collectComponents(v.Children, out)
		}
	}
}

// nestedElements returns the element sequences owned by a component.
func nestedElements(c Component) [][]Element {
	switch v := c.(type) {
	case *List:
		if v.Contents != nil {
			return [][]Element{v.Contents.Elements}
		}
	case *Table:
		var out [][]Element
		if v.NoData != nil {
			out = append(out, v.NoData.Elements)
		}
		for _, node := range v.Columns {
			out = appendNodeElements(out, node)
		}
		return out
	}
	return nil
}

func appendNodeElements(out [][]Element, node TableNode) [][]Element {
	for _, cell := range node.Base().Cells() {
		out = append(out, cell.Elements)
	}
	switch n := node.(type) {
	case *Column:
		if n.DetailCell != nil {
			out = append(out, n.DetailCell.Elements)
		}
	case *ColumnGroup:
		for _, child := range n.Columns {
			out = appendNodeElements(out, child)
		}
	}
	return out
}

// ComponentElement is a <componentElement> of the report.
type ComponentElement struct {
	ReportElement *ReportElement
	Component     Component
	Location      Location
}

// ElementName implements Element.
func (c *ComponentElement) ElementName() string { return "componentElement" }

// SetReportElement sets the common report element properties.
func (c *ComponentElement) SetReportElement(re *ReportElement) {
	c.ReportElement = re
}

// SetComponent sets the component carried by this element.
func (c *ComponentElement) SetComponent(comp Component) {
	c.Component = comp
}

// Key returns the report element key, or "" when none was declared.
func (c *ComponentElement) Key() string {
	if c.ReportElement == nil {
		return ""
	}
	return c.ReportElement.Key
}

// ReportElement holds the common properties of a report element.
type ReportElement struct {
	Key                 string      `jrxml:"key"`
	UUID                uuid.UUID   `jrxml:"-"`
	X                   int         `jrxml:"x"`
	Y                   int         `jrxml:"y"`
	Width               int         `jrxml:"width"`
	Height              int         `jrxml:"height"`
	PrintWhenExpression *Expression `jrxml:"-"`
}

// SetUUID sets the element identity.
func (r *ReportElement) SetUUID(id uuid.UUID) { r.UUID = id }

// SetPrintWhenExpression sets the element print-when-expression.
func (r *ReportElement) SetPrintWhenExpression(e *Expression) { r.PrintWhenExpression = e }

// RawElement is a report element this package does not model. It keeps the
// element's name, attributes, text and children so later stages can handle it.
type RawElement struct {
	Name       string
	Namespace  string
	Attributes map[string]string
	Text       string
	Children   []Element
	Location   Location
}

// ElementName implements Element.
func (r *RawElement) ElementName() string { return r.Name }

// AddElement appends a child element.
func (r *RawElement) AddElement(e Element) {
	r.Children = append(r.Children, e)
}

// Attr returns the named attribute value.
func (r *RawElement) Attr(name string) (string, bool) {
	v, ok := r.Attributes[name]
	return v, ok
}
