package component

// Item is a set of named properties attached to a component, e.g. one marker
// of a map. Components that accept items define their own slot for them.
type Item struct {
	Properties []*ItemProperty `jrxml:"-"`
}

// NewItem creates an empty item.
func NewItem() *Item { return &Item{} }

// AddItemProperty appends a property in declaration order.
func (i *Item) AddItemProperty(p *ItemProperty) { i.Properties = append(i.Properties, p) }

// Property returns the first property with the given name, or nil.
func (i *Item) Property(name string) *ItemProperty {
	for _, p := range i.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// ItemProperty is a property of an item. The value is either the literal
// Value attribute or the ValueExpression; when both are set the expression
// takes precedence downstream.
type ItemProperty struct {
	Name            string      `jrxml:"name"`
	Value           string      `jrxml:"value"`
	ValueExpression *Expression `jrxml:"-"`
}

// NewItemProperty creates an empty property.
func NewItemProperty() *ItemProperty { return &ItemProperty{} }

// SetValueExpression sets the value expression.
func (p *ItemProperty) SetValueExpression(e *Expression) { p.ValueExpression = e }
