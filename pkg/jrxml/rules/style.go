package rules

import (
	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/digester"
)

// StyleAttribute is the attribute carrying a style name.
const StyleAttribute = "style"

// Style wraps the style attribute into an unresolved style reference.
func Style[O any](set func(O, *component.StyleReference)) digester.Rule {
	return digester.RuleFuncs{
		OnBegin: func(ctx *digester.Context) error {
			name, ok := ctx.Attr(StyleAttribute)
			if !ok || name == "" {
				return nil
			}
			target, err := current[O](ctx, StyleAttribute)
			if err != nil {
				return err
			}
			set(target, component.NewStyleReference(name))
			return nil
		},
	}
}
