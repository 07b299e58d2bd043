package rules

import (
	"github.com/google/uuid"

	"github.com/bjorndarri/jasperreports/pkg/jrxml/digester"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/errors"
)

// Identity parses a UUID attribute into the current object. An absent
// attribute leaves the zero UUID.
func Identity[O any](attribute string, set func(O, uuid.UUID)) digester.Rule {
	return digester.RuleFuncs{
		OnBegin: func(ctx *digester.Context) error {
			value, ok := ctx.Attr(attribute)
			if !ok {
				return nil
			}
			id, err := uuid.Parse(value)
			if err != nil {
				e := errors.NewMalformedIdentity(attribute, value, err)
				e.Location.Path = ctx.Path()
				return e
			}
			target, err := current[O](ctx, attribute)
			if err != nil {
				return err
			}
			set(target, id)
			return nil
		},
	}
}
