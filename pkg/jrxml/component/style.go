package component

// StyleReference is an unresolved link to a named style definition.
// Resolution against the report's style registry happens outside this package.
type StyleReference struct {
	Name string
}

// NewStyleReference wraps a style name. It returns nil for an empty name.
func NewStyleReference(name string) *StyleReference {
	if name == "" {
		return nil
	}
	return &StyleReference{Name: name}
}

// String returns the referenced style name.
func (s *StyleReference) String() string {
	if s == nil {
		return ""
	}
	return s.Name
}

// DatasetRun binds a component to a sub dataset of the report.
type DatasetRun struct {
	SubDataset string `jrxml:"subDataset"`
}

// DatasetContextOwner is implemented by nodes that define the dataset their
// expressions are evaluated against. An empty name means the main dataset.
type DatasetContextOwner interface {
	DatasetContext() string
}
