package digester

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/bjorndarri/jasperreports/pkg/jrxml/errors"
)

// TagName is the struct tag SetProperties binds attributes through.
const TagName = "jrxml"

// Factory creates the object for a matched element.
type Factory func(ctx *Context) (any, error)

// Constructor adapts a plain constructor to a Factory.
func Constructor[T any](fn func() T) Factory {
	return func(*Context) (any, error) {
		return fn(), nil
	}
}

type objectCreateRule struct {
	factory Factory
}

// ObjectCreate pushes the object built by factory when the element opens and
// pops it when the element closes.
func ObjectCreate(factory Factory) Rule {
	return &objectCreateRule{factory: factory}
}

func (r *objectCreateRule) Begin(ctx *Context) error {
	v, err := r.factory(ctx)
	if err != nil {
		return err
	}
	ctx.Push(v)
	return nil
}

func (r *objectCreateRule) Body(*Context, string) error { return nil }

func (r *objectCreateRule) End(ctx *Context) error {
	ctx.Pop()
	return nil
}

type setPropertiesRule struct {
	exclude map[string]bool
}

// SetProperties binds every attribute of the element, except the excluded
// ones, to the jrxml-tagged fields of the current object. Attribute values
// are converted to the field types; unknown attributes are ignored.
func SetProperties(exclude ...string) Rule {
	r := &setPropertiesRule{exclude: make(map[string]bool, len(exclude))}
	for _, name := range exclude {
		r.exclude[name] = true
	}
	return r
}

func (r *setPropertiesRule) Begin(ctx *Context) error {
	attrs := ctx.Attrs()
	if len(attrs) == 0 {
		return nil
	}

	input := make(map[string]any, len(attrs))
	for name, value := range attrs {
		if !r.exclude[name] {
			input[name] = value
		}
	}
	if len(input) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          TagName,
		WeaklyTypedInput: true,
		Squash:           true,
		Result:           ctx.Current(),
	})
	if err != nil {
		return errors.NewBinding(err)
	}
	if err := decoder.Decode(input); err != nil {
		return errors.NewBinding(err)
	}
	return nil
}

func (r *setPropertiesRule) Body(*Context, string) error { return nil }
func (r *setPropertiesRule) End(*Context) error          { return nil }

type composeRule[P, C any] struct {
	slot string
	fn   func(P, C)
}

// Compose attaches the current object to its parent when the element closes
// by calling fn. The parent and child are resolved from the live stack, so
// the same rule serves every nesting depth. A parent or child of the wrong
// type is a composition error.
func Compose[P, C any](slot string, fn func(P, C)) Rule {
	return &composeRule[P, C]{slot: slot, fn: fn}
}

func (r *composeRule[P, C]) Slot() string { return r.slot }

func (r *composeRule[P, C]) Begin(*Context) error        { return nil }
func (r *composeRule[P, C]) Body(*Context, string) error { return nil }

func (r *composeRule[P, C]) End(ctx *Context) error {
	child, ok := ctx.Current().(C)
	if !ok {
		return errors.NewComposition("%s: element <%s> built %T, which cannot be attached here",
			r.slot, ctx.Name(), ctx.Current())
	}
	parent, ok := ctx.Parent().(P)
	if !ok {
		return errors.NewComposition("%s: <%s> cannot be attached to %s",
			r.slot, ctx.Name(), describe(ctx.Parent()))
	}
	r.fn(parent, child)
	return nil
}

func describe(v any) string {
	if v == nil {
		return "the document root"
	}
	return fmt.Sprintf("%T", v)
}

// Text calls fn with the element's character data.
func Text(fn func(ctx *Context, text string) error) Rule {
	return RuleFuncs{OnBody: fn}
}
