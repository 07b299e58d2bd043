package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bjorndarri/jasperreports/pkg/catalog"
	"github.com/bjorndarri/jasperreports/pkg/config"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
	jrerrors "github.com/bjorndarri/jasperreports/pkg/jrxml/errors"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/parser"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/validator"
	"github.com/bjorndarri/jasperreports/pkg/telemetry/metrics"
)

// ErrNotRunning is returned by Check while the watcher is not watching.
var ErrNotRunning = errors.New("watcher is not running")

// Config contains configuration for the template watcher.
type Config struct {
	// Paths are the files or directories to watch.
	Paths []string

	// Debounce is the quiet period before a changed template is re-parsed
	// (default: 250ms).
	Debounce time.Duration

	// Extensions are the template file extensions (default: .jrxml).
	Extensions []string

	// Recursive watches subdirectories, including ones created later.
	Recursive bool

	// SkipHidden ignores dot files and dot directories.
	SkipHidden bool
}

// FromConfig converts the watch configuration section.
func FromConfig(cfg *config.WatchConfig) Config {
	return Config{
		Paths:      cfg.Paths,
		Debounce:   cfg.Debounce,
		Extensions: cfg.Extensions,
		Recursive:  cfg.Recursive,
		SkipHidden: true,
	}
}

// Event is the outcome of one re-parse.
type Event struct {
	Path     string
	Document *component.Document
	Report   *validator.Report // nil without a validator or on parse failure
	Err      error
	Duration time.Duration
}

// Watcher re-parses templates when they change on disk.
type Watcher struct {
	config    Config
	fsw       *fsnotify.Watcher
	debounce  *Debouncer
	parser    *parser.Parser
	validator *validator.Validator
	recorder  *catalog.Recorder
	metrics   *metrics.Collector
	logger    *slog.Logger
	handler   func(Event)

	mu      sync.RWMutex
	running bool
	ready   chan struct{}
	stopCh  chan struct{}
	once    sync.Once
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithValidator lints every parsed document.
func WithValidator(v *validator.Validator) Option {
	return func(w *Watcher) { w.validator = v }
}

// WithRecorder records every re-parse in the catalog.
func WithRecorder(r *catalog.Recorder) Option {
	return func(w *Watcher) { w.recorder = r }
}

// WithMetrics sets the metrics collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(w *Watcher) { w.metrics = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// WithHandler is called after every re-parse.
func WithHandler(h func(Event)) Option {
	return func(w *Watcher) { w.handler = h }
}

// New creates a watcher that re-parses with p.
func New(cfg Config, p *parser.Parser, opts ...Option) (*Watcher, error) {
	if len(cfg.Paths) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = config.DefaultWatchDebounce
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = config.DefaultWatchExtensions
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		config:   cfg,
		fsw:      fsw,
		debounce: NewDebouncer(cfg.Debounce),
		parser:   p,
		logger:   slog.Default().With("component", "watcher"),
		ready:    make(chan struct{}),
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Ready is closed once every path is being watched.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Check reports whether the watcher is running. It has the health check
// signature.
func (w *Watcher) Check(ctx context.Context) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if !w.running {
		return ErrNotRunning
	}
	return nil
}

// Scan parses every template under the watched paths once.
func (w *Watcher) Scan(ctx context.Context) ([]Event, error) {
	var events []Event
	for _, root := range w.config.Paths {
		files := []string{root}
		if isDirectory(root) {
			var err error
			files, err = parser.TemplateFiles(root, w.config.Recursive, w.config.Extensions)
			if err != nil {
				return events, err
			}
		}
		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return events, err
			}
			events = append(events, w.reparse(ctx, path))
		}
	}
	return events, nil
}

// Watch blocks, re-parsing changed templates, until ctx is cancelled or
// Stop is called. A watcher can be started once.
func (w *Watcher) Watch(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		w.debounce.Stop()
		w.fsw.Close()
	}()

	for _, path := range w.config.Paths {
		if err := w.addPath(path); err != nil {
			return fmt.Errorf("failed to watch %q: %w", path, err)
		}
	}
	close(w.ready)

	w.logger.Info("template watcher started",
		"paths", w.config.Paths,
		"debounce_ms", w.config.Debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("template watcher stopped (context cancelled)")
			return nil

		case <-w.stopCh:
			w.logger.Info("template watcher stopped")
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			w.handle(ctx, event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// Stop ends Watch.
func (w *Watcher) Stop() {
	w.once.Do(func() { close(w.stopCh) })
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}
	if w.config.SkipHidden && strings.HasPrefix(filepath.Base(event.Name), ".") {
		return
	}

	if event.Has(fsnotify.Create) && w.config.Recursive && isDirectory(event.Name) {
		if err := w.addDirectory(event.Name); err != nil {
			w.logger.Warn("cannot watch new directory", "path", event.Name, "error", err)
		}
		return
	}
	if !parser.HasExtension(event.Name, w.config.Extensions) {
		return
	}

	op := opName(event.Op)
	w.metrics.RecordWatchEvent(op)
	w.logger.Debug("template event", "path", event.Name, "op", op)

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		return
	}

	path := event.Name
	w.debounce.Trigger(path, func() {
		w.reparse(ctx, path)
	})
}

func (w *Watcher) reparse(ctx context.Context, path string) Event {
	start := time.Now()
	ev := Event{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		ev.Err = jrerrors.NewIO(path, err)
	} else {
		ev.Document, ev.Err = w.parser.ParseBytes(ctx, data, path)
	}
	if ev.Err == nil && w.validator != nil {
		ev.Report = w.validator.Validate(ev.Document)
		for _, issue := range ev.Report.Issues {
			w.metrics.RecordValidationIssue(string(issue.Severity))
		}
	}
	ev.Duration = time.Since(start)
	w.metrics.RecordReparse()

	if ev.Err != nil {
		w.logger.Warn("template rejected", "path", path, "error", firstLine(ev.Err))
	} else {
		w.logger.Info("template parsed",
			"path", path,
			"components", len(ev.Document.Components()),
			"duration", ev.Duration,
		)
	}

	if w.recorder != nil {
		rec := catalog.NewRecord(path, data, ev.Document, ev.Report, ev.Err, ev.Duration)
		_ = w.recorder.Record(ctx, rec)
	}
	if w.handler != nil {
		w.handler(ev)
	}
	return ev
}

func (w *Watcher) addPath(path string) error {
	if !isDirectory(path) {
		return w.fsw.Add(path)
	}
	if !w.config.Recursive {
		return w.fsw.Add(path)
	}
	return w.addDirectory(path)
}

func (w *Watcher) addDirectory(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.config.SkipHidden && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", path, err)
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

func opName(op fsnotify.Op) string {
	switch {
	case op.Has(fsnotify.Create):
		return "create"
	case op.Has(fsnotify.Write):
		return "write"
	case op.Has(fsnotify.Remove):
		return "remove"
	case op.Has(fsnotify.Rename):
		return "rename"
	default:
		return "other"
	}
}

func firstLine(err error) string {
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return msg[:i]
	}
	return msg
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
