package digester

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/net/html/charset"

	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/errors"
)

// DefaultMaxDepth is the default limit on element nesting.
const DefaultMaxDepth = 256

// Digester drives a sealed Registry over an XML document.
type Digester struct {
	registry *Registry
	maxDepth int
	logger   *slog.Logger
}

// Option configures a Digester.
type Option func(*Digester)

// WithMaxDepth sets the maximum element nesting depth. Zero disables the
// limit.
func WithMaxDepth(depth int) Option {
	return func(d *Digester) { d.maxDepth = depth }
}

// WithLogger sets the logger passed to rules through the Context.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Digester) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New creates a digester for registry.
func New(registry *Registry, opts ...Option) *Digester {
	d := &Digester{
		registry: registry,
		maxDepth: DefaultMaxDepth,
		logger:   slog.Default().With("component", "jrxml.digester"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Parse reads the document from r and fires the registered rules. root is
// pushed on the object stack before the first element, so top-level rules
// compose into it. source labels locations in errors.
//
// The first rule error aborts the parse. The returned error is always an
// *errors.Error carrying the location of the element being processed.
func (d *Digester) Parse(r io.Reader, source string, root any) error {
	if !d.registry.Sealed() {
		return errors.NewRegistration("registry must be sealed before parsing")
	}

	decoder := xml.NewDecoder(r)
	decoder.Strict = true
	decoder.CharsetReader = charset.NewReaderLabel

	ctx := newContext(source, root, d.logger)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return syntaxError(err, source, ctx)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := d.startElement(ctx, decoder, t); err != nil {
				return err
			}
		case xml.CharData:
			if f := ctx.top(); f != nil {
				f.text.Write(t)
			}
		case xml.EndElement:
			if err := d.endElement(ctx); err != nil {
				return err
			}
		}
	}

	if ctx.Depth() != 0 {
		return errors.NewSyntax(io.ErrUnexpectedEOF, component.Location{File: source, Path: ctx.Path()})
	}
	return nil
}

func (d *Digester) startElement(ctx *Context, decoder *xml.Decoder, t xml.StartElement) error {
	if d.maxDepth > 0 && ctx.Depth() >= d.maxDepth {
		line, col := decoder.InputPos()
		return errors.NewSyntax(fmt.Errorf("maximum element depth %d exceeded", d.maxDepth), component.Location{
			File: ctx.source, Line: line, Column: col, Path: ctx.Path(),
		})
	}

	ctx.path = append(ctx.path, t.Name.Local)
	line, col := decoder.InputPos()

	f := &frame{
		name:      t.Name.Local,
		namespace: t.Name.Space,
		attrs:     attributes(t.Attr),
		location: component.Location{
			File:   ctx.source,
			Line:   line,
			Column: col,
			Path:   ctx.Path(),
		},
	}
	f.rules = d.registry.Match(f.namespace, f.location.Path)
	ctx.elements = append(ctx.elements, f)

	if d.logger.Enabled(context.Background(), slog.LevelDebug) {
		d.logger.Debug("element matched",
			"path", f.location.Path,
			"namespace", f.namespace,
			"rules", len(f.rules),
		)
	}

	for _, rule := range f.rules {
		if err := rule.Begin(ctx); err != nil {
			return locate(err, f.location)
		}
	}
	return nil
}

func (d *Digester) endElement(ctx *Context) error {
	f := ctx.top()
	if f == nil {
		return nil
	}

	text := f.text.String()
	for _, rule := range f.rules {
		if err := rule.Body(ctx, text); err != nil {
			return locate(err, f.location)
		}
	}
	for i := len(f.rules) - 1; i >= 0; i-- {
		if err := f.rules[i].End(ctx); err != nil {
			return locate(err, f.location)
		}
	}

	ctx.elements = ctx.elements[:len(ctx.elements)-1]
	ctx.path = ctx.path[:len(ctx.path)-1]
	return nil
}

// attributes flattens start tag attributes to a local-name map, dropping
// namespace declarations.
func attributes(attrs []xml.Attr) map[string]string {
	out := make(map[string]string, len(attrs))
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
			continue
		}
		out[a.Name.Local] = a.Value
	}
	return out
}

// locate converts a rule error to an *errors.Error and fills in the location
// when the rule did not set one.
func locate(err error, loc component.Location) error {
	e, ok := errors.As(err)
	if !ok {
		e = errors.NewBinding(err)
	}
	if !e.Location.IsValid() {
		path := e.Location.Path
		e.Location = loc
		if path != "" {
			e.Location.Path = path
		}
	}
	return e
}

func syntaxError(err error, source string, ctx *Context) error {
	loc := component.Location{File: source, Path: ctx.Path()}
	if se, ok := err.(*xml.SyntaxError); ok {
		loc.Line = se.Line
	}
	return errors.NewSyntax(err, loc)
}
