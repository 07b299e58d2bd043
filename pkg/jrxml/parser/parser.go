package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bjorndarri/jasperreports/pkg/config"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/digester"
	jrerrors "github.com/bjorndarri/jasperreports/pkg/jrxml/errors"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/schema"
	"github.com/bjorndarri/jasperreports/pkg/telemetry/logging"
	"github.com/bjorndarri/jasperreports/pkg/telemetry/metrics"
	"github.com/bjorndarri/jasperreports/pkg/telemetry/tracing"
)

// DefaultMaxFileSize is the largest template accepted by default.
const DefaultMaxFileSize = 10 * 1024 * 1024 // 10MB

// Parser parses JRXML templates into component documents.
type Parser struct {
	// Configuration
	maxFileSize int64 // Maximum template size in bytes (default: 10MB)
	maxDepth    int   // Maximum element nesting (default: 256)
	namespaces  schema.Namespaces
	extensions  []schema.Extension

	logger  *slog.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer

	once     sync.Once
	registry *digester.Registry
	regErr   error
}

// NewParser creates a parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxFileSize: DefaultMaxFileSize,
		maxDepth:    digester.DefaultMaxDepth,
		namespaces:  schema.DefaultNamespaces(),
		logger:      slog.Default().With("component", "jrxml.parser"),
	}
}

// FromConfig creates a parser from the parser configuration section.
func FromConfig(cfg *config.ParserConfig) *Parser {
	p := NewParser().
		WithMaxFileSize(cfg.MaxFileSize).
		WithMaxDepth(cfg.MaxDepth)
	if cfg.ReportNamespace != "" && cfg.ComponentsNamespace != "" {
		p = p.WithNamespaces(schema.Namespaces{
			Report:     cfg.ReportNamespace,
			Components: cfg.ComponentsNamespace,
		})
	}
	return p
}

// WithMaxFileSize sets the maximum template size.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// WithMaxDepth sets the maximum element nesting depth.
func (p *Parser) WithMaxDepth(depth int) *Parser {
	p.maxDepth = depth
	return p
}

// WithNamespaces registers the component rules under custom namespace URIs.
// It must be called before the first parse.
func (p *Parser) WithNamespaces(ns schema.Namespaces) *Parser {
	p.namespaces = ns
	return p
}

// WithExtensions adds component rules to the built-in ones. It must be
// called before the first parse.
func (p *Parser) WithExtensions(ext ...schema.Extension) *Parser {
	p.extensions = append(p.extensions, ext...)
	return p
}

// WithLogger sets the logger.
func (p *Parser) WithLogger(logger *slog.Logger) *Parser {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// WithMetrics records parse metrics on collector.
func (p *Parser) WithMetrics(collector *metrics.Collector) *Parser {
	p.metrics = collector
	return p
}

// WithTracer wraps each parse in a span.
func (p *Parser) WithTracer(tracer *tracing.Tracer) *Parser {
	p.tracer = tracer
	return p
}

// Registry returns the sealed rule registry, building it on first call.
func (p *Parser) Registry() (*digester.Registry, error) {
	p.once.Do(func() {
		p.registry, p.regErr = schema.NewRegistry(p.namespaces, p.logger, p.extensions...)
	})
	return p.registry, p.regErr
}

// Parse parses the template at path.
func (p *Parser) Parse(ctx context.Context, path string) (*component.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, jrerrors.NewIO(path, err)
	}
	if info.IsDir() {
		return nil, jrerrors.NewIO(path, fmt.Errorf("%s is a directory", path))
	}
	if info.Size() > p.maxFileSize {
		return nil, jrerrors.NewIO(path, fmt.Errorf("file size %d exceeds maximum %d bytes", info.Size(), p.maxFileSize))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, jrerrors.NewIO(path, err)
	}
	return p.ParseBytes(ctx, data, path)
}

// ParseReader reads a template from r. source labels locations in errors.
func (p *Parser) ParseReader(ctx context.Context, r io.Reader, source string) (*component.Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, p.maxFileSize+1))
	if err != nil {
		return nil, jrerrors.NewIO(source, err)
	}
	return p.ParseBytes(ctx, data, source)
}

// ParseBytes parses a template held in memory. source labels locations in
// errors.
func (p *Parser) ParseBytes(ctx context.Context, data []byte, source string) (*component.Document, error) {
	if int64(len(data)) > p.maxFileSize {
		return nil, jrerrors.NewIO(source, fmt.Errorf("data size %d exceeds maximum %d bytes", len(data), p.maxFileSize))
	}

	registry, err := p.Registry()
	if err != nil {
		return nil, err
	}

	ctx = logging.WithParseID(logging.WithTemplate(ctx, source), uuid.NewString())
	ctx, span := p.tracer.Start(ctx, "jrxml.parse")
	defer span.End()
	tracing.SetTemplateAttributes(span, source, int64(len(data)))

	start := time.Now()
	logger := p.logger.With("template", source)
	doc := component.NewDocument(source)

	d := digester.New(registry, digester.WithMaxDepth(p.maxDepth), digester.WithLogger(logger))
	err = d.Parse(bytes.NewReader(data), source, doc)
	elapsed := time.Since(start)
	p.metrics.RecordTemplateSize(int64(len(data)))

	if err != nil {
		e, ok := jrerrors.As(err)
		if !ok {
			e = jrerrors.NewBinding(err)
		}
		jrerrors.AddContextFromBytes(e, data)

		p.metrics.RecordParse("error", string(e.Type), elapsed)
		tracing.SetError(span, e)
		tracing.SetErrorType(span, string(e.Type))
		tracing.SetStatus(span, e)
		logger.DebugContext(ctx, "template rejected", "error_type", e.Type, "duration", elapsed)
		return nil, e
	}

	kinds := ComponentKinds(doc)
	for _, kind := range kinds {
		p.metrics.RecordComponent(kind)
	}
	p.metrics.RecordParse("success", "", elapsed)
	tracing.SetComponentAttributes(span, kinds)
	tracing.SetStatus(span, nil)
	logger.DebugContext(ctx, "template parsed", "components", len(kinds), "duration", elapsed)

	return doc, nil
}

// Result is the outcome of parsing one file in a directory.
type Result struct {
	Path     string
	Document *component.Document
	Err      error
}

// ParseDir parses every file under dir whose extension is in extensions,
// in lexical path order. A nil or empty extensions list means ".jrxml".
// Failures are reported per file; the returned error covers only walking
// the directory.
func (p *Parser) ParseDir(ctx context.Context, dir string, recursive bool, extensions []string) ([]Result, error) {
	paths, err := TemplateFiles(dir, recursive, extensions)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		doc, err := p.Parse(ctx, path)
		results = append(results, Result{Path: path, Document: doc, Err: err})
	}
	return results, nil
}

// TemplateFiles lists template files under dir in lexical order.
func TemplateFiles(dir string, recursive bool, extensions []string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = []string{".jrxml"}
	}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if HasExtension(path, extensions) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, jrerrors.NewIO(dir, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// HasExtension reports whether path ends in one of extensions, ignoring case.
func HasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

// ComponentKinds returns the kind of every component in doc, in document order.
func ComponentKinds(doc *component.Document) []string {
	elems := doc.Components()
	kinds := make([]string, 0, len(elems))
	for _, ce := range elems {
		if ce.Component == nil {
			kinds = append(kinds, "unknown")
			continue
		}
		kinds = append(kinds, string(ce.Component.Kind()))
	}
	return kinds
}
