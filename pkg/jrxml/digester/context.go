package digester

import (
	"log/slog"
	"strings"

	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
)

// frame is one open element.
type frame struct {
	name      string
	namespace string
	attrs     map[string]string
	text      strings.Builder
	location  component.Location
	rules     []Rule
}

// Context holds the state of one parse: the stack of open elements and the
// stack of objects under construction.
type Context struct {
	source   string
	elements []*frame
	path     []string
	objects  []any
	logger   *slog.Logger
}

func newContext(source string, root any, logger *slog.Logger) *Context {
	ctx := &Context{source: source, logger: logger}
	if root != nil {
		ctx.objects = append(ctx.objects, root)
	}
	return ctx
}

// Source returns the label of the template being parsed.
func (c *Context) Source() string { return c.source }

// Logger returns the parse logger.
func (c *Context) Logger() *slog.Logger { return c.logger }

// Path returns the slash-separated local names of the open elements.
func (c *Context) Path() string { return strings.Join(c.path, "/") }

// Depth returns the number of open elements.
func (c *Context) Depth() int { return len(c.elements) }

func (c *Context) top() *frame {
	if len(c.elements) == 0 {
		return nil
	}
	return c.elements[len(c.elements)-1]
}

// Name returns the local name of the current element.
func (c *Context) Name() string {
	if f := c.top(); f != nil {
		return f.name
	}
	return ""
}

// Namespace returns the namespace URI of the current element.
func (c *Context) Namespace() string {
	if f := c.top(); f != nil {
		return f.namespace
	}
	return ""
}

// Attr returns an attribute of the current element by local name.
func (c *Context) Attr(name string) (string, bool) {
	f := c.top()
	if f == nil {
		return "", false
	}
	v, ok := f.attrs[name]
	return v, ok
}

// Attrs returns the attributes of the current element. The map must not be
// modified.
func (c *Context) Attrs() map[string]string {
	if f := c.top(); f != nil {
		return f.attrs
	}
	return nil
}

// Location returns the source location of the current element.
func (c *Context) Location() component.Location {
	if f := c.top(); f != nil {
		return f.location
	}
	return component.Location{File: c.source}
}

// Push pushes an object under construction.
func (c *Context) Push(v any) {
	c.objects = append(c.objects, v)
}

// Pop removes and returns the top object, or nil when the stack is empty.
func (c *Context) Pop() any {
	if len(c.objects) == 0 {
		return nil
	}
	v := c.objects[len(c.objects)-1]
	c.objects = c.objects[:len(c.objects)-1]
	return v
}

// Peek returns the object n levels below the top; Peek(0) is the top.
func (c *Context) Peek(n int) any {
	i := len(c.objects) - 1 - n
	if n < 0 || i < 0 {
		return nil
	}
	return c.objects[i]
}

// Current returns the top object.
func (c *Context) Current() any { return c.Peek(0) }

// Parent returns the object directly below the top.
func (c *Context) Parent() any { return c.Peek(1) }

// StackSize returns the number of objects on the stack.
func (c *Context) StackSize() int { return len(c.objects) }

// Nearest returns the topmost object, starting skip levels below the top,
// for which match returns true.
func (c *Context) Nearest(skip int, match func(any) bool) any {
	for i := len(c.objects) - 1 - skip; i >= 0; i-- {
		if match(c.objects[i]) {
			return c.objects[i]
		}
	}
	return nil
}

// Enclosing returns the nearest object of type T strictly below the top of
// the stack.
func Enclosing[T any](ctx *Context) (T, bool) {
	v := ctx.Nearest(1, func(o any) bool {
		_, ok := o.(T)
		return ok
	})
	t, ok := v.(T)
	return t, ok
}

// CurrentAs returns the top object as T.
func CurrentAs[T any](ctx *Context) (T, bool) {
	t, ok := ctx.Current().(T)
	return t, ok
}
