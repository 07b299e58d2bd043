package component

// BaseCell is a table cell without row span, used for the no-data cell.
type BaseCell struct {
	Style       *StyleReference `jrxml:"-"`
	DatasetName string          `jrxml:"-"`
	Height      int             `jrxml:"height"`
	Elements    []Element       `jrxml:"-"`
}

// NewBaseCell creates an empty base cell.
func NewBaseCell() *BaseCell { return &BaseCell{} }

// SetStyle sets the style reference.
func (c *BaseCell) SetStyle(s *StyleReference) { c.Style = s }

// SetDatasetContext sets the dataset the cell contents evaluate against.
func (c *BaseCell) SetDatasetContext(name string) { c.DatasetName = name }

// DatasetContext implements DatasetContextOwner.
func (c *BaseCell) DatasetContext() string { return c.DatasetName }

// AddElement implements ElementContainer.
func (c *BaseCell) AddElement(e Element) { c.Elements = append(c.Elements, e) }

// Cell is a table cell owned by a column or column group.
type Cell struct {
	BaseCell `jrxml:",squash"`
	RowSpan  int `jrxml:"rowSpan"`
}

// NewCell creates an empty cell.
func NewCell() *Cell { return &Cell{} }

// GroupCell wraps the cell a column contributes to one group level.
type GroupCell struct {
	GroupName string `jrxml:"groupName"`
	Cell      *Cell  `jrxml:"-"`
}

// NewGroupCell creates an empty group cell.
func NewGroupCell() *GroupCell { return &GroupCell{} }

// SetCell sets the wrapped cell.
func (g *GroupCell) SetCell(c *Cell) { g.Cell = c }
