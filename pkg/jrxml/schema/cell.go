package schema

import (
	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/digester"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/rules"
)

// addCellRules registers a cell slot: pattern builds a *Cell that set
// attaches to the parent of type P.
func addCellRules[P any](s digester.Scope, pattern, slot string, set func(P, *component.Cell)) {
	s.Register(pattern,
		digester.ObjectCreate(digester.Constructor(component.NewCell)),
		rules.DatasetContext((*component.Cell).SetDatasetContext),
		digester.SetProperties(rules.StyleAttribute, rules.DatasetContextAttribute),
		rules.Style((*component.Cell).SetStyle),
		digester.Compose(slot, set),
	)
}

// addBaseCellRules registers a slot holding a cell without row span.
func addBaseCellRules[P any](s digester.Scope, pattern, slot string, set func(P, *component.BaseCell)) {
	s.Register(pattern,
		digester.ObjectCreate(digester.Constructor(component.NewBaseCell)),
		rules.DatasetContext((*component.BaseCell).SetDatasetContext),
		digester.SetProperties(rules.StyleAttribute, rules.DatasetContextAttribute),
		rules.Style((*component.BaseCell).SetStyle),
		digester.Compose(slot, set),
	)
}

// addGroupCellRules registers a group cell slot. Every matched element
// appends one GroupCell, whose single inner <cell> is built by the cell
// rules.
func addGroupCellRules[P any](s digester.Scope, pattern, slot string, add func(P, *component.GroupCell)) {
	s.Register(pattern,
		digester.ObjectCreate(digester.Constructor(component.NewGroupCell)),
		digester.SetProperties(),
		digester.Compose(slot, add),
	)
	addCellRules(s, pattern+"/cell", "setCell", (*component.GroupCell).SetCell)
}
