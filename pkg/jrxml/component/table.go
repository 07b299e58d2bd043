package component

import "github.com/google/uuid"

// Table is the table component. Rows describe the table-level sections and
// Columns holds the column tree in declaration order.
type Table struct {
	WhenNoDataType WhenNoDataType `jrxml:"-"`
	DatasetRun     *DatasetRun    `jrxml:"-"`

	Columns []TableNode `jrxml:"-"`

	TableHeader  *Row        `jrxml:"-"`
	TableFooter  *Row        `jrxml:"-"`
	ColumnHeader *Row        `jrxml:"-"`
	ColumnFooter *Row        `jrxml:"-"`
	Detail       *Row        `jrxml:"-"`
	GroupHeaders []*GroupRow `jrxml:"-"`
	GroupFooters []*GroupRow `jrxml:"-"`

	NoData *BaseCell `jrxml:"-"`
}

// NewTable creates a table with the schema defaults applied.
func NewTable() *Table {
	return &Table{WhenNoDataType: WhenNoDataBlank}
}

// Kind implements Component.
func (t *Table) Kind() Kind { return KindTable }

// DatasetContext implements DatasetContextOwner.
func (t *Table) DatasetContext() string {
	if t.DatasetRun == nil {
		return ""
	}
	return t.DatasetRun.SubDataset
}

// AddColumn implements ColumnContainer.
func (t *Table) AddColumn(n TableNode) { t.Columns = append(t.Columns, n) }

// SetWhenNoDataType sets the when-no-data type.
func (t *Table) SetWhenNoDataType(w WhenNoDataType) { t.WhenNoDataType = w }

// SetDatasetRun sets the dataset run feeding the table.
func (t *Table) SetDatasetRun(r *DatasetRun) { t.DatasetRun = r }

func (t *Table) SetTableHeader(r *Row)      { t.TableHeader = r }
func (t *Table) SetTableFooter(r *Row)      { t.TableFooter = r }
func (t *Table) SetColumnHeader(r *Row)     { t.ColumnHeader = r }
func (t *Table) SetColumnFooter(r *Row)     { t.ColumnFooter = r }
func (t *Table) SetDetail(r *Row)           { t.Detail = r }
func (t *Table) AddGroupHeader(g *GroupRow) { t.GroupHeaders = append(t.GroupHeaders, g) }
func (t *Table) AddGroupFooter(g *GroupRow) { t.GroupFooters = append(t.GroupFooters, g) }
func (t *Table) SetNoData(c *BaseCell)      { t.NoData = c }

// LeafColumns returns the columns of the table in visual order, descending
// into column groups.
func (t *Table) LeafColumns() []*Column {
	var out []*Column
	for _, n := range t.Columns {
		out = appendLeaves(out, n)
	}
	return out
}

func appendLeaves(out []*Column, n TableNode) []*Column {
	switch v := n.(type) {
	case *Column:
		return append(out, v)
	case *ColumnGroup:
		for _, child := range v.Columns {
			out = appendLeaves(out, child)
		}
	}
	return out
}

// TableNode is either a *Column or a *ColumnGroup.
type TableNode interface {
	Base() *ColumnBase
	tableNode()
}

// ColumnContainer is implemented by *Table and *ColumnGroup.
type ColumnContainer interface {
	AddColumn(TableNode)
}

// CellOwner is implemented by *Column and *ColumnGroup. Each method is the
// composition call for one cell slot.
type CellOwner interface {
	SetTableHeader(*Cell)
	SetTableFooter(*Cell)
	SetColumnHeader(*Cell)
	SetColumnFooter(*Cell)
	AddGroupHeader(*GroupCell)
	AddGroupFooter(*GroupCell)
}

// ColumnBase holds what columns and column groups have in common.
type ColumnBase struct {
	UUID                uuid.UUID   `jrxml:"-"`
	Width               int         `jrxml:"width"`
	PrintWhenExpression *Expression `jrxml:"-"`

	TableHeader  *Cell        `jrxml:"-"`
	TableFooter  *Cell        `jrxml:"-"`
	ColumnHeader *Cell        `jrxml:"-"`
	ColumnFooter *Cell        `jrxml:"-"`
	GroupHeaders []*GroupCell `jrxml:"-"`
	GroupFooters []*GroupCell `jrxml:"-"`
}

// Base returns the shared column properties.
func (b *ColumnBase) Base() *ColumnBase { return b }

func (b *ColumnBase) SetUUID(id uuid.UUID)                 { b.UUID = id }
func (b *ColumnBase) SetPrintWhenExpression(e *Expression) { b.PrintWhenExpression = e }
func (b *ColumnBase) SetTableHeader(c *Cell)               { b.TableHeader = c }
func (b *ColumnBase) SetTableFooter(c *Cell)               { b.TableFooter = c }
func (b *ColumnBase) SetColumnHeader(c *Cell)              { b.ColumnHeader = c }
func (b *ColumnBase) SetColumnFooter(c *Cell)              { b.ColumnFooter = c }
func (b *ColumnBase) AddGroupHeader(g *GroupCell)          { b.GroupHeaders = append(b.GroupHeaders, g) }
func (b *ColumnBase) AddGroupFooter(g *GroupCell)          { b.GroupFooters = append(b.GroupFooters, g) }

// Cells returns the non-empty section cells, group cells included, in
// section order. The detail cell of a column is not part of the result.
func (b *ColumnBase) Cells() []*Cell {
	var out []*Cell
	for _, c := range []*Cell{b.TableHeader, b.TableFooter} {
		if c != nil {
			out = append(out, c)
		}
	}
	for _, g := range b.GroupHeaders {
		if g.Cell != nil {
			out = append(out, g.Cell)
		}
	}
	for _, g := range b.GroupFooters {
		if g.Cell != nil {
			out = append(out, g.Cell)
		}
	}
	for _, c := range []*Cell{b.ColumnHeader, b.ColumnFooter} {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Column is a leaf column of a table.
type Column struct {
	ColumnBase `jrxml:",squash"`
	DetailCell *Cell `jrxml:"-"`
}

// NewColumn creates an empty column.
func NewColumn() *Column { return &Column{} }

// SetDetailCell sets the detail cell.
func (c *Column) SetDetailCell(cell *Cell) { c.DetailCell = cell }

func (c *Column) tableNode() {}

// ColumnGroup groups columns (and further column groups) under shared
// header and footer cells.
type ColumnGroup struct {
	ColumnBase `jrxml:",squash"`
	Columns    []TableNode `jrxml:"-"`
}

// NewColumnGroup creates an empty column group.
func NewColumnGroup() *ColumnGroup { return &ColumnGroup{} }

// AddColumn implements ColumnContainer.
func (g *ColumnGroup) AddColumn(n TableNode) { g.Columns = append(g.Columns, n) }

func (g *ColumnGroup) tableNode() {}
