package component

// Visitor provides an interface for traversing a parsed document.
// Embed BaseVisitor to implement only the methods of interest.
type Visitor interface {
	VisitComponentElement(*ComponentElement) error
	VisitList(*List) error
	VisitTable(*Table) error
	VisitColumn(*Column) error
	VisitColumnGroup(*ColumnGroup) error
	VisitRow(*Row) error
	VisitCell(*BaseCell) error
	VisitBarcode(*Barcode) error
	VisitExpression(*Expression) error
	VisitRawElement(*RawElement) error
}

// BaseVisitor implements Visitor with no-op methods.
type BaseVisitor struct{}

func (BaseVisitor) VisitComponentElement(*ComponentElement) error { return nil }
func (BaseVisitor) VisitList(*List) error                         { return nil }
func (BaseVisitor) VisitTable(*Table) error                       { return nil }
func (BaseVisitor) VisitColumn(*Column) error                     { return nil }
func (BaseVisitor) VisitColumnGroup(*ColumnGroup) error           { return nil }
func (BaseVisitor) VisitRow(*Row) error                           { return nil }
func (BaseVisitor) VisitCell(*BaseCell) error                     { return nil }
func (BaseVisitor) VisitBarcode(*Barcode) error                   { return nil }
func (BaseVisitor) VisitExpression(*Expression) error             { return nil }
func (BaseVisitor) VisitRawElement(*RawElement) error             { return nil }

// Walk traverses the document in declaration order and calls the visitor
// for each node. It returns the first error encountered.
func Walk(doc *Document, v Visitor) error {
	if doc == nil {
		return nil
	}
	return walkElements(doc.Elements, v)
}

func walkElements(elems []Element, v Visitor) error {
	for _, e := range elems {
		switch n := e.(type) {
		case *ComponentElement:
			if err := walkComponentElement(n, v); err != nil {
				return err
			}
		case *RawElement:
			if err := v.VisitRawElement(n); err != nil {
				return err
			}
			if err := walkElements(n.Children, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func walkComponentElement(ce *ComponentElement, v Visitor) error {
	if err := v.VisitComponentElement(ce); err != nil {
		return err
	}
	if ce.ReportElement != nil {
		if err := walkExpression(ce.ReportElement.PrintWhenExpression, v); err != nil {
			return err
		}
	}

	switch c := ce.Component.(type) {
	case *List:
		if err := v.VisitList(c); err != nil {
			return err
		}
		if c.Contents != nil {
			return walkElements(c.Contents.Elements, v)
		}
	case *Table:
		return walkTable(c, v)
	case *Barcode:
		if err := v.VisitBarcode(c); err != nil {
			return err
		}
		for _, e := range []*Expression{c.CodeExpression, c.PatternExpression, c.TemplateExpression} {
			if err := walkExpression(e, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func walkTable(t *Table, v Visitor) error {
	if err := v.VisitTable(t); err != nil {
		return err
	}

	rows := []*Row{t.TableHeader, t.TableFooter, t.ColumnHeader, t.ColumnFooter, t.Detail}
	for _, g := range t.GroupHeaders {
		rows = append(rows, g.Row)
	}
	for _, g := range t.GroupFooters {
		rows = append(rows, g.Row)
	}
	for _, r := range rows {
		if r == nil {
			continue
		}
		if err := v.VisitRow(r); err != nil {
			return err
		}
		if err := walkExpression(r.PrintWhenExpression, v); err != nil {
			return err
		}
	}

	for _, n := range t.Columns {
		if err := walkNode(n, v); err != nil {
			return err
		}
	}

	if t.NoData != nil {
		return walkCell(t.NoData, v)
	}
	return nil
}

func walkNode(n TableNode, v Visitor) error {
	switch c := n.(type) {
	case *Column:
		if err := v.VisitColumn(c); err != nil {
			return err
		}
	case *ColumnGroup:
		if err := v.VisitColumnGroup(c); err != nil {
			return err
		}
	}

	base := n.Base()
	if err := walkExpression(base.PrintWhenExpression, v); err != nil {
		return err
	}
	for _, cell := range base.Cells() {
		if err := walkCell(&cell.BaseCell, v); err != nil {
			return err
		}
	}

	switch c := n.(type) {
	case *Column:
		if c.DetailCell != nil {
			return walkCell(&c.DetailCell.BaseCell, v)
		}
	case *ColumnGroup:
		for _, child := range c.Columns {
			if err := walkNode(child, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func walkCell(c *BaseCell, v Visitor) error {
	if err := v.VisitCell(c); err != nil {
		return err
	}
	return walkElements(c.Elements, v)
}

func walkExpression(e *Expression, v Visitor) error {
	if e == nil {
		return nil
	}
	return v.VisitExpression(e)
}
