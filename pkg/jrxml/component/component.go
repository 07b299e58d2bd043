package component

// Kind identifies a Component variant.
type Kind string

const (
	KindList    Kind = "list"
	KindTable   Kind = "table"
	KindBarcode Kind = "barcode"
)

// Component is a parseable report layout component. The variants are
// *List, *Table and *Barcode.
type Component interface {
	Kind() Kind
}
