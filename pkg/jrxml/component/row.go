package component

// Row describes one table-level section row.
type Row struct {
	SplitType           SplitType   `jrxml:"-"`
	PrintWhenExpression *Expression `jrxml:"-"`
}

// NewRow creates a row with the default split type.
func NewRow() *Row {
	return &Row{SplitType: SplitTypeStretch}
}

// SetSplitType sets the split type.
func (r *Row) SetSplitType(s SplitType) { r.SplitType = s }

// SetPrintWhenExpression sets the row print-when-expression.
func (r *Row) SetPrintWhenExpression(e *Expression) { r.PrintWhenExpression = e }

// GroupRow wraps the row of one group level.
type GroupRow struct {
	GroupName string `jrxml:"groupName"`
	Row       *Row   `jrxml:"-"`
}

// NewGroupRow creates an empty group row.
func NewGroupRow() *GroupRow { return &GroupRow{} }

// SetRow sets the wrapped row.
func (g *GroupRow) SetRow(r *Row) { g.Row = r }
