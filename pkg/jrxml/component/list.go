package component

// List is the list component: its contents are repeated once per record of
// the list's dataset.
type List struct {
	PrintOrder  PrintOrder    `jrxml:"-"`
	IgnoreWidth bool          `jrxml:"ignoreWidth"`
	DatasetRun  *DatasetRun   `jrxml:"-"`
	Contents    *ListContents `jrxml:"-"`
}

// NewList creates a list with the schema defaults applied.
func NewList() *List {
	return &List{PrintOrder: PrintOrderVertical}
}

// Kind implements Component.
func (l *List) Kind() Kind { return KindList }

// DatasetContext implements DatasetContextOwner.
func (l *List) DatasetContext() string {
	if l.DatasetRun == nil {
		return ""
	}
	return l.DatasetRun.SubDataset
}

func (l *List) SetPrintOrder(p PrintOrder)  { l.PrintOrder = p }
func (l *List) SetDatasetRun(r *DatasetRun) { l.DatasetRun = r }
func (l *List) SetContents(c *ListContents) { l.Contents = c }

// ListContents is the body repeated by a list.
type ListContents struct {
	Height      int       `jrxml:"height"`
	Width       int       `jrxml:"width"`
	DatasetName string    `jrxml:"-"`
	Elements    []Element `jrxml:"-"`
}

// NewListContents creates empty list contents.
func NewListContents() *ListContents { return &ListContents{} }

// SetDatasetContext sets the dataset the contents evaluate against.
func (c *ListContents) SetDatasetContext(name string) { c.DatasetName = name }

// DatasetContext implements DatasetContextOwner.
func (c *ListContents) DatasetContext() string { return c.DatasetName }

// AddElement implements ElementContainer.
func (c *ListContents) AddElement(e Element) { c.Elements = append(c.Elements, e) }
