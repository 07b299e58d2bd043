package digester

// Rule is a processing step fired for a matched element.
type Rule interface {
	// Begin is called when the start tag of a matched element is read.
	Begin(ctx *Context) error

	// Body is called with the element's accumulated character data once
	// the end tag is read.
	Body(ctx *Context, text string) error

	// End is called after all Body calls, in reverse registration order.
	End(ctx *Context) error
}

// Composer is implemented by rules that attach the current object to its
// parent. A pattern carries at most one composition rule per namespace.
type Composer interface {
	Rule
	Slot() string
}

// RuleFuncs adapts plain functions to Rule. Nil functions are no-ops.
type RuleFuncs struct {
	OnBegin func(ctx *Context) error
	OnBody  func(ctx *Context, text string) error
	OnEnd   func(ctx *Context) error
}

// Begin implements Rule.
func (r RuleFuncs) Begin(ctx *Context) error {
	if r.OnBegin == nil {
		return nil
	}
	return r.OnBegin(ctx)
}

// Body implements Rule.
func (r RuleFuncs) Body(ctx *Context, text string) error {
	if r.OnBody == nil {
		return nil
	}
	return r.OnBody(ctx, text)
}

// End implements Rule.
func (r RuleFuncs) End(ctx *Context) error {
	if r.OnEnd == nil {
		return nil
	}
	return r.OnEnd(ctx)
}
