package schema

import (
	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/digester"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/rules"
)

// splitTypes also accepts the long label of the immediate split type.
var splitTypes = rules.NewConstants(component.SplitTypes...).
	WithAlias(component.SplitTypeImmediateStretchLabel, component.SplitTypeImmediate)

// addRowRules registers a row slot. The print-when-expression of the row is
// matched in the report namespace.
func addRowRules[P any](s scopes, pattern, slot string, set func(P, *component.Row)) {
	s.components.Register(pattern,
		digester.ObjectCreate(digester.Constructor(component.NewRow)),
		digester.SetProperties("splitType"),
		rules.Constant("splitType", splitTypes, (*component.Row).SetSplitType),
		digester.Compose(slot, set),
	)
	rules.BindExpression(s.report, pattern, component.ExpressionPrintWhen, (*component.Row).SetPrintWhenExpression)
}

// addGroupRowRules registers a group row slot whose inner <row> is built by
// the row rules.
func addGroupRowRules[P any](s scopes, pattern, slot string, add func(P, *component.GroupRow)) {
	s.components.Register(pattern,
		digester.ObjectCreate(digester.Constructor(component.NewGroupRow)),
		digester.SetProperties(),
		digester.Compose(slot, add),
	)
	addRowRules(s, pattern+"/row", "setRow", (*component.GroupRow).SetRow)
}
