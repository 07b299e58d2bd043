package rules

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/digester"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/errors"
)

const (
	outerNS = "urn:outer"
	innerNS = "urn:inner"
)

func parse(t *testing.T, r *digester.Registry, doc string, root any) error {
	t.Helper()
	if err := r.Seal(); err != nil {
		t.Fatalf("Seal() failed: %v", err)
	}
	return digester.New(r).Parse(strings.NewReader(doc), "test.jrxml", root)
}

// holder collects what the rules under test produce.
type holder struct {
	rows  []*component.Row
	cells []*component.Cell
}

func rowRegistry() *digester.Registry {
	r := digester.NewRegistry()
	r.Register("", "*/row",
		digester.ObjectCreate(digester.Constructor(component.NewRow)),
		Constant("splitType", NewConstants(component.SplitTypes...), (*component.Row).SetSplitType),
		digester.Compose("addRow", func(h *holder, row *component.Row) { h.rows = append(h.rows, row) }),
	)
	return r
}

func TestConstants_Lookup(t *testing.T) {
	table := NewConstants(component.PrintOrders...)

	if v, ok := table.Lookup("Horizontal"); !ok || v != component.PrintOrderHorizontal {
		t.Errorf("Lookup(Horizontal) = %q, %v", v, ok)
	}
	if _, ok := table.Lookup("horizontal"); ok {
		t.Error("Lookup is case-insensitive, want exact match")
	}
	if got := strings.Join(table.Labels(), ","); got != "Vertical,Horizontal" {
		t.Errorf("Labels() = %q", got)
	}
}

func TestConstants_WithAlias(t *testing.T) {
	base := NewConstants(component.SplitTypes...)
	table := base.WithAlias("ImmediateStretch", component.SplitTypeImmediate)

	if v, ok := table.Lookup("ImmediateStretch"); !ok || v != component.SplitTypeImmediate {
		t.Errorf("Lookup(ImmediateStretch) = %q, %v", v, ok)
	}
	if v, ok := table.Lookup("Immediate"); !ok || v != component.SplitTypeImmediate {
		t.Errorf("Lookup(Immediate) = %q, %v", v, ok)
	}
	if _, ok := base.Lookup("ImmediateStretch"); ok {
		t.Error("WithAlias modified the original table")
	}
	if got := strings.Join(table.Labels(), ","); got != "Stretch,Prevent,Immediate,ImmediateStretch" {
		t.Errorf("Labels() = %q", got)
	}
}

func TestConstant(t *testing.T) {
	h := &holder{}
	err := parse(t, rowRegistry(), `<rows><row splitType="Prevent"/><row/></rows>`, h)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if len(h.rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(h.rows))
	}
	if h.rows[0].SplitType != component.SplitTypePrevent {
		t.Errorf("rows[0].SplitType = %q, want %q", h.rows[0].SplitType, component.SplitTypePrevent)
	}
	if h.rows[1].SplitType != component.SplitTypeStretch {
		t.Errorf("rows[1].SplitType = %q, want default %q", h.rows[1].SplitType, component.SplitTypeStretch)
	}
}

func TestConstant_Unrecognized(t *testing.T) {
	h := &holder{}
	err := parse(t, rowRegistry(), "<rows>\n<row splitType=\"Sideways\"/></rows>", h)

	e, ok := errors.As(err)
	if !ok {
		t.Fatalf("Parse() error = %v, want *errors.Error", err)
	}
	if e.Type != errors.ErrorTypeUnrecognizedConstant {
		t.Errorf("Type = %q, want %q", e.Type, errors.ErrorTypeUnrecognizedConstant)
	}
	if e.Attribute != "splitType" || e.Value != "Sideways" {
		t.Errorf("Attribute/Value = %q/%q, want splitType/Sideways", e.Attribute, e.Value)
	}
	if e.Location.Path != "rows/row" {
		t.Errorf("Location.Path = %q, want %q", e.Location.Path, "rows/row")
	}
	if e.Location.Line != 2 {
		t.Errorf("Location.Line = %d, want 2", e.Location.Line)
	}
	if len(h.rows) != 0 {
		t.Errorf("len(rows) = %d, want 0 after a failed binding", len(h.rows))
	}
}

func TestIdentity(t *testing.T) {
	var got []*component.Column
	newRegistry := func() *digester.Registry {
		r := digester.NewRegistry()
		r.Register("", "*/column",
			digester.ObjectCreate(digester.Constructor(component.NewColumn)),
			Identity("uuid", (*component.Column).SetUUID),
			digester.Compose("add", func(_ *holder, c *component.Column) { got = append(got, c) }),
		)
		return r
	}

	id := "3c5f8e2a-2b77-4d1c-9e0a-5f1e2d3c4b5a"
	if err := parse(t, newRegistry(), `<t><column uuid="`+id+`"/><column/></t>`, &holder{}); err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if got[0].UUID != uuid.MustParse(id) {
		t.Errorf("UUID = %s, want %s", got[0].UUID, id)
	}
	if got[1].UUID != uuid.Nil {
		t.Errorf("absent uuid = %s, want zero UUID", got[1].UUID)
	}

	err := parse(t, newRegistry(), `<t><column uuid="not-a-uuid"/></t>`, &holder{})
	if !stderrors.Is(err, errors.ErrMalformedIdentity) {
		t.Errorf("Parse() error = %v, want malformed identity", err)
	}
}

func TestStyleAndDatasetContext(t *testing.T) {
	r := digester.NewRegistry()
	r.Register("", "*/table",
		digester.ObjectCreate(func(ctx *digester.Context) (any, error) {
			table := component.NewTable()
			if ds, ok := ctx.Attr("ds"); ok {
				table.SetDatasetRun(&component.DatasetRun{SubDataset: ds})
			}
			return table, nil
		}),
	)
	r.Register("", "*/cell",
		digester.ObjectCreate(digester.Constructor(component.NewCell)),
		DatasetContext((*component.Cell).SetDatasetContext),
		Style((*component.Cell).SetStyle),
		digester.Compose("addCell", func(h *holder, c *component.Cell) { h.cells = append(h.cells, c) }),
	)
	r.Register("", "*/table/cell",
		digester.ObjectCreate(digester.Constructor(component.NewCell)),
		DatasetContext((*component.Cell).SetDatasetContext),
		Style((*component.Cell).SetStyle),
	)

	h := &holder{}
	doc := `<root>
  <cell style="plain"/>
  <box><table ds="orders"><cell/><cell datasetContext="lines"/></table></box>
</root>`
	if err := parse(t, r, doc, h); err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if len(h.cells) != 1 {
		t.Fatalf("len(cells) = %d, want 1", len(h.cells))
	}
	if h.cells[0].Style.String() != "plain" {
		t.Errorf("Style = %q, want %q", h.cells[0].Style.String(), "plain")
	}
	if h.cells[0].DatasetName != "" {
		t.Errorf("top-level DatasetName = %q, want empty", h.cells[0].DatasetName)
	}
}

func TestDatasetContext_Inherited(t *testing.T) {
	var cells []*component.Cell
	r := digester.NewRegistry()
	r.Register("", "*/table",
		digester.ObjectCreate(func(ctx *digester.Context) (any, error) {
			table := component.NewTable()
			ds, _ := ctx.Attr("ds")
			table.SetDatasetRun(&component.DatasetRun{SubDataset: ds})
			return table, nil
		}),
	)
	r.Register("", "*/cell",
		digester.ObjectCreate(digester.Constructor(component.NewCell)),
		DatasetContext((*component.Cell).SetDatasetContext),
		digester.RuleFuncs{OnEnd: func(ctx *digester.Context) error {
			c, _ := digester.CurrentAs[*component.Cell](ctx)
			cells = append(cells, c)
			return nil
		}},
	)

	doc := `<r><table ds="orders"><cell/><cell datasetContext="lines"/><table ds="inner"><cell/></table></table></r>`
	if err := parse(t, r, doc, nil); err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	want := []string{"orders", "lines", "inner"}
	if len(cells) != len(want) {
		t.Fatalf("len(cells) = %d, want %d", len(cells), len(want))
	}
	for i, w := range want {
		if cells[i].DatasetName != w {
			t.Errorf("cells[%d].DatasetName = %q, want %q", i, cells[i].DatasetName, w)
		}
	}
}

func TestBindExpression_Namespace(t *testing.T) {
	r := digester.NewRegistry()
	scope := r.Scope(innerNS)
	scope.Register("*/row",
		digester.ObjectCreate(digester.Constructor(component.NewRow)),
		digester.Compose("addRow", func(h *holder, row *component.Row) { h.rows = append(h.rows, row) }),
	)
	BindExpression(scope.InNamespace(outerNS), "*/row", component.ExpressionPrintWhen, (*component.Row).SetPrintWhenExpression)

	h := &holder{}
	doc := `<rows xmlns="urn:inner" xmlns:o="urn:outer">
  <row><o:printWhenExpression><![CDATA[ $F{total} > 0 ]]></o:printWhenExpression></row>
  <row><printWhenExpression>ignored</printWhenExpression></row>
</rows>`
	if err := parse(t, r, doc, h); err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if scope.Namespace() != innerNS {
		t.Errorf("scope namespace changed to %q", scope.Namespace())
	}
	if len(h.rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(h.rows))
	}
	expr := h.rows[0].PrintWhenExpression
	if expr == nil {
		t.Fatal("rows[0].PrintWhenExpression is nil")
	}
	if expr.Text != "$F{total} > 0" {
		t.Errorf("Text = %q, want %q", expr.Text, "$F{total} > 0")
	}
	if expr.Kind != component.ExpressionPrintWhen {
		t.Errorf("Kind = %q, want %q", expr.Kind, component.ExpressionPrintWhen)
	}
	if h.rows[1].PrintWhenExpression != nil {
		t.Error("expression in the wrong namespace was bound")
	}
}

func TestBindExpression_ValueKind(t *testing.T) {
	type item struct{ value *component.Expression }
	var items []*item

	r := digester.NewRegistry()
	r.Register("", "*/item",
		digester.ObjectCreate(func(*digester.Context) (any, error) { return &item{}, nil }),
		digester.RuleFuncs{OnEnd: func(ctx *digester.Context) error {
			it, _ := digester.CurrentAs[*item](ctx)
			items = append(items, it)
			return nil
		}},
	)
	BindExpression(r.Scope(""), "*/item", component.ExpressionValue, func(it *item, e *component.Expression) { it.value = e })

	if err := parse(t, r, `<items><item><valueExpression>"a"</valueExpression></item></items>`, nil); err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if len(items) != 1 || items[0].value.String() != `"a"` {
		t.Errorf("value expression not bound: %+v", items)
	}
}
