package schema

import (
	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/digester"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/rules"
)

// AddItemRules registers an item element at itemPattern, attached to its
// parent through set, with its itemProperty children. The valueExpression
// of a property is matched in valueNamespace rather than in s's namespace.
func AddItemRules[P any](s digester.Scope, itemPattern, slot string, set func(P, *component.Item), valueNamespace string) {
	s.Register(itemPattern,
		digester.ObjectCreate(digester.Constructor(component.NewItem)),
		digester.SetProperties(),
		digester.Compose(slot, set),
	)

	propertyPattern := itemPattern + "/itemProperty"
	s.Register(propertyPattern,
		digester.ObjectCreate(digester.Constructor(component.NewItemProperty)),
		digester.SetProperties(),
		digester.Compose("addItemProperty", (*component.Item).AddItemProperty),
	)
	rules.BindExpression(s.InNamespace(valueNamespace), propertyPattern, component.ExpressionValue,
		(*component.ItemProperty).SetValueExpression)
}
