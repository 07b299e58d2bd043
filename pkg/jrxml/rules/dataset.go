package rules

import (
	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/digester"
)

// DatasetContextAttribute names the dataset explicitly on a cell or list
// contents element.
const DatasetContextAttribute = "datasetContext"

// DatasetContext records the dataset the current object's contents are
// evaluated against. The element's own datasetContext attribute wins;
// otherwise the dataset of the nearest enclosing owner on the stack is used
// (the table or list the element belongs to).
func DatasetContext[O any](set func(O, string)) digester.Rule {
	return digester.RuleFuncs{
		OnBegin: func(ctx *digester.Context) error {
			target, err := current[O](ctx, DatasetContextAttribute)
			if err != nil {
				return err
			}
			if name, ok := ctx.Attr(DatasetContextAttribute); ok {
				set(target, name)
				return nil
			}
			if owner, ok := digester.Enclosing[component.DatasetContextOwner](ctx); ok {
				set(target, owner.DatasetContext())
			}
			return nil
		},
	}
}
