package rules

import (
	"github.com/bjorndarri/jasperreports/pkg/jrxml/digester"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/errors"
)

// Constants is a closed table of enumerated labels.
type Constants[T ~string] struct {
	values  []T
	aliases []string
	index   map[string]T
}

// NewConstants builds a table from the recognized values.
func NewConstants[T ~string](values ...T) Constants[T] {
	c := Constants[T]{
		values: append([]T(nil), values...),
		index:  make(map[string]T, len(values)),
	}
	for _, v := range values {
		c.index[string(v)] = v
	}
	return c
}

// WithAlias returns a copy of the table that also accepts label for value.
func (c Constants[T]) WithAlias(label string, value T) Constants[T] {
	out := Constants[T]{
		values:  c.values,
		aliases: append(append([]string(nil), c.aliases...), label),
		index:   make(map[string]T, len(c.index)+1),
	}
	for k, v := range c.index {
		out.index[k] = v
	}
	out.index[label] = value
	return out
}

// Lookup returns the value for label. Labels are case-sensitive.
func (c Constants[T]) Lookup(label string) (T, bool) {
	v, ok := c.index[label]
	return v, ok
}

// Labels returns the recognized labels in declaration order, aliases last.
func (c Constants[T]) Labels() []string {
	out := make([]string, 0, len(c.values)+len(c.aliases))
	for _, v := range c.values {
		out = append(out, string(v))
	}
	return append(out, c.aliases...)
}

// Constant sets an enumerated attribute on the current object of type O.
// An absent attribute leaves the object's default untouched; a label outside
// the table is an unrecognized constant error.
func Constant[O any, T ~string](attribute string, table Constants[T], set func(O, T)) digester.Rule {
	return digester.RuleFuncs{
		OnBegin: func(ctx *digester.Context) error {
			label, ok := ctx.Attr(attribute)
			if !ok {
				return nil
			}
			value, ok := table.Lookup(label)
			if !ok {
				err := errors.NewUnrecognizedConstant(attribute, label, table.Labels())
				err.Location.Path = ctx.Path()
				return err
			}
			target, err := current[O](ctx, attribute)
			if err != nil {
				return err
			}
			set(target, value)
			return nil
		},
	}
}

// current returns the top of the stack as O.
func current[O any](ctx *digester.Context, attribute string) (O, error) {
	target, ok := digester.CurrentAs[O](ctx)
	if !ok {
		var zero O
		return zero, errors.NewComposition("attribute %s: current object %T does not accept it", attribute, ctx.Current())
	}
	return target, nil
}
