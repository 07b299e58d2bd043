package parser

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/bjorndarri/jasperreports/pkg/config"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/digester"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/errors"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/schema"
	"github.com/bjorndarri/jasperreports/pkg/telemetry/metrics"
	"github.com/bjorndarri/jasperreports/pkg/telemetry/tracing"
)

const validDir = "../testdata/valid"

func TestParse_ValidFiles(t *testing.T) {
	tests := []struct {
		file  string
		count int
		kind  component.Kind
	}{
		{"table.jrxml", 1, component.KindTable},
		{"list.jrxml", 2, component.KindList},
		{"barcode.jrxml", 3, component.KindBarcode},
	}

	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			doc, err := p.Parse(context.Background(), filepath.Join(validDir, tt.file))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			comps := doc.Components()
			if len(comps) != tt.count {
				t.Fatalf("ComponentCount = %d, want %d", len(comps), tt.count)
			}
			if comps[0].Component.Kind() != tt.kind {
				t.Errorf("first Kind = %q, want %q", comps[0].Component.Kind(), tt.kind)
			}
		})
	}
}

func TestParse_ErrorContext(t *testing.T) {
	p := NewParser()
	doc, err := p.Parse(context.Background(), "../testdata/invalid/bad-split-type.jrxml")
	if doc != nil {
		t.Error("a failed parse must not return a document")
	}
	if !stderrors.Is(err, errors.ErrUnrecognizedConstant) {
		t.Fatalf("error = %v, want unrecognized constant", err)
	}
	e, _ := errors.As(err)
	if !strings.Contains(e.Context, `splitType="Strech"`) {
		t.Errorf("Context does not show the offending line:\n%s", e.Context)
	}
	if e.Location.File != "../testdata/invalid/bad-split-type.jrxml" {
		t.Errorf("Location.File = %q", e.Location.File)
	}
}

func TestParse_IOErrors(t *testing.T) {
	dir := t.TempDir()
	big := filepath.Join(dir, "big.jrxml")
	if err := os.WriteFile(big, []byte(strings.Repeat(" ", 64)), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "missing.jrxml")},
		{"directory", dir},
		{"too large", big},
	}

	p := NewParser().WithMaxFileSize(32)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(context.Background(), tt.path)
			e, ok := errors.As(err)
			if !ok || e.Type != errors.ErrorTypeIO {
				t.Errorf("error = %v, want io error", err)
			}
		})
	}
}

func TestParseReader_SizeLimit(t *testing.T) {
	p := NewParser().WithMaxFileSize(16)
	_, err := p.ParseReader(context.Background(), strings.NewReader(strings.Repeat("x", 17)), "stdin")
	e, ok := errors.As(err)
	if !ok || e.Type != errors.ErrorTypeIO {
		t.Errorf("error = %v, want io error", err)
	}
}

func TestParseBytes_MaxDepth(t *testing.T) {
	p := NewParser().WithMaxDepth(3)
	_, err := p.ParseBytes(context.Background(), []byte("<a><b><c><d/></c></b></a>"), "deep")
	if !stderrors.Is(err, errors.ErrSyntax) {
		t.Errorf("error = %v, want syntax error", err)
	}
}

func TestFromConfig_CustomNamespaces(t *testing.T) {
	cfg := config.Default().Parser
	cfg.ReportNamespace = "urn:report"
	cfg.ComponentsNamespace = "urn:components"

	p := FromConfig(&cfg)
	src := `<r:jasperReport xmlns:r="urn:report" xmlns:c="urn:components">
<r:componentElement><c:list printOrder="Horizontal"/></r:componentElement></r:jasperReport>`

	doc, err := p.ParseBytes(context.Background(), []byte(src), "custom")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	list, ok := doc.Components()[0].Component.(*component.List)
	if !ok || list.PrintOrder != component.PrintOrderHorizontal {
		t.Errorf("component = %#v, want horizontal list", doc.Components()[0].Component)
	}
}

func TestRegistry_InvalidNamespaces(t *testing.T) {
	p := NewParser().WithNamespaces(schema.Namespaces{})
	if _, err := p.ParseBytes(context.Background(), []byte("<a/>"), "x"); err == nil {
		t.Error("expected registry error for empty namespaces")
	}
}

type itemHolder struct {
	items []*component.Item
}

func (h *itemHolder) Kind() component.Kind               { return "items" }
func (h *itemHolder) SetComponentItem(i *component.Item) { h.items = append(h.items, i) }

func TestParser_WithExtensions(t *testing.T) {
	ext := func(report, components digester.Scope) {
		components.Register("*/componentElement/items",
			digester.ObjectCreate(digester.Constructor(func() *itemHolder { return &itemHolder{} })),
			digester.Compose("setComponent", (*component.ComponentElement).SetComponent),
		)
		schema.AddItemRules(components, "*/componentElement/items/item", "addItem",
			(*itemHolder).SetComponentItem, report.Namespace())
	}

	src := `<jasperReport xmlns="http://jasperreports.sourceforge.net/jasperreports"
	xmlns:c="http://jasperreports.sourceforge.net/jasperreports/components">
	<componentElement><c:items><c:item><c:itemProperty name="x"><valueExpression>$F{x}</valueExpression></c:itemProperty></c:item></c:items></componentElement>
	</jasperReport>`

	doc, err := NewParser().WithExtensions(ext).ParseBytes(context.Background(), []byte(src), "items.jrxml")
	if err != nil {
		t.Fatalf("ParseBytes() error = %v", err)
	}
	h, ok := doc.Components()[0].Component.(*itemHolder)
	if !ok {
		t.Fatalf("component = %T, want *itemHolder", doc.Components()[0].Component)
	}
	if len(h.items) != 1 || h.items[0].Property("x").ValueExpression.String() != "$F{x}" {
		t.Errorf("items = %+v", h.items)
	}
	if kinds := ComponentKinds(doc); len(kinds) != 1 || kinds[0] != "items" {
		t.Errorf("ComponentKinds() = %v, want [items]", kinds)
	}
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	copyFile(t, filepath.Join(validDir, "table.jrxml"), filepath.Join(dir, "b.jrxml"))
	copyFile(t, "../testdata/invalid/bad-uuid.jrxml", filepath.Join(dir, "a.JRXML"))
	copyFile(t, filepath.Join(validDir, "list.jrxml"), filepath.Join(sub, "c.jrxml"))
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0644); err != nil {
		t.Fatal(err)
	}

	p := NewParser()

	flat, err := p.ParseDir(context.Background(), dir, false, nil)
	if err != nil {
		t.Fatalf("ParseDir() error = %v", err)
	}
	if len(flat) != 2 {
		t.Fatalf("non-recursive results = %d, want 2", len(flat))
	}
	if filepath.Base(flat[0].Path) != "a.JRXML" || flat[0].Err == nil {
		t.Errorf("first result = %+v, want failing a.JRXML", flat[0])
	}
	if flat[1].Err != nil || flat[1].Document == nil {
		t.Errorf("second result = %+v, want parsed b.jrxml", flat[1])
	}

	deep, err := p.ParseDir(context.Background(), dir, true, []string{".jrxml"})
	if err != nil {
		t.Fatalf("ParseDir() error = %v", err)
	}
	if len(deep) != 3 {
		t.Errorf("recursive results = %d, want 3", len(deep))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.ParseDir(ctx, dir, true, nil); !stderrors.Is(err, context.Canceled) {
		t.Errorf("cancelled ParseDir error = %v", err)
	}
}

func TestParse_Telemetry(t *testing.T) {
	cfg := config.Default().Telemetry.Metrics
	cfg.Enabled = true
	collector := metrics.NewCollector(&cfg, prometheus.NewRegistry())

	recorder := tracetest.NewSpanRecorder()
	tracer := tracing.NewWithProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	defer tracer.Shutdown(context.Background())

	p := NewParser().WithMetrics(collector).WithTracer(tracer)

	if _, err := p.Parse(context.Background(), filepath.Join(validDir, "barcode.jrxml")); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, err := p.Parse(context.Background(), "../testdata/invalid/bad-uuid.jrxml"); err == nil {
		t.Fatal("expected error")
	}

	gathered, err := testutil.GatherAndCount(collector.Registry(), "jrcomp_parser_parses_total")
	if err != nil {
		t.Fatalf("GatherAndCount() error = %v", err)
	}
	if gathered != 2 {
		t.Errorf("parses_total series = %d, want 2", gathered)
	}

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(spans))
	}
	if spans[1].Status().Description == "" {
		t.Error("failed parse span should carry an error status")
	}
}

func BenchmarkParse_Table(b *testing.B) {
	data, err := os.ReadFile(filepath.Join(validDir, "table.jrxml"))
	if err != nil {
		b.Fatal(err)
	}
	p := NewParser()
	ctx := context.Background()

	b.ResetTimer()
	start := time.Now()
	for i := 0; i < b.N; i++ {
		if _, err := p.ParseBytes(ctx, data, "table.jrxml"); err != nil {
			b.Fatal(err)
		}
	}
	b.ReportMetric(float64(time.Since(start).Microseconds())/float64(b.N), "µs/parse")
}

func copyFile(t *testing.T, from, to string) {
	t.Helper()
	data, err := os.ReadFile(from)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(to, data, 0644); err != nil {
		t.Fatal(err)
	}
}
