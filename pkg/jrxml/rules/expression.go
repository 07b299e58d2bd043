package rules

import (
	"strings"

	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/digester"
)

// BindExpression registers the rules for an expression child of
// ownerPattern. The expression element is matched in scope's namespace, so
// callers pass scope.InNamespace(...) to bind expressions declared in another
// namespace than their owner.
//
// The expression text is the element's character data with surrounding
// whitespace removed.
func BindExpression[O any](scope digester.Scope, ownerPattern string, kind component.ExpressionKind, set func(O, *component.Expression)) {
	pattern := ownerPattern + "/" + string(kind)
	scope.Register(pattern,
		digester.ObjectCreate(func(*digester.Context) (any, error) {
			return component.NewExpression(kind), nil
		}),
		digester.Text(func(ctx *digester.Context, text string) error {
			if expr, ok := digester.CurrentAs[*component.Expression](ctx); ok {
				expr.SetText(strings.TrimSpace(text))
			}
			return nil
		}),
		digester.Compose(string(kind), set),
	)
}
