package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/bjorndarri/jasperreports/pkg/jrxml/component"
	jrerrors "github.com/bjorndarri/jasperreports/pkg/jrxml/errors"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/parser"
	"github.com/bjorndarri/jasperreports/pkg/jrxml/validator"
	"github.com/bjorndarri/jasperreports/pkg/telemetry/metrics"
)

// NewRecord builds the record of one parse. doc and report may be nil.
func NewRecord(path string, data []byte, doc *component.Document, report *validator.Report, parseErr error, duration time.Duration) *Record {
	sum := sha256.Sum256(data)
	r := &Record{
		Path:     path,
		Hash:     hex.EncodeToString(sum[:]),
		Size:     int64(len(data)),
		ParsedAt: time.Now(),
		Duration: duration,
		Success:  parseErr == nil,
	}

	if parseErr != nil {
		r.ErrorType = "unknown"
		r.ErrorMessage = parseErr.Error()
		if e, ok := jrerrors.As(parseErr); ok {
			r.ErrorType = string(e.Type)
			r.ErrorMessage = e.Message
		}
	}
	if doc != nil {
		r.ComponentKinds = parser.ComponentKinds(doc)
	}
	if report != nil {
		r.Warnings = report.Count(validator.SeverityWarning)
	}
	return r
}

// Recorder saves records and keeps the catalog metrics current.
type Recorder struct {
	store   Store
	metrics *metrics.Collector
	logger  *slog.Logger
}

// NewRecorder creates a recorder. collector may be nil.
func NewRecorder(store Store, collector *metrics.Collector, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default().With("component", "catalog.recorder")
	}
	return &Recorder{store: store, metrics: collector, logger: logger}
}

// Store returns the underlying store.
func (r *Recorder) Store() Store {
	return r.store
}

// Record saves rec. A failed write is logged and returned.
func (r *Recorder) Record(ctx context.Context, rec *Record) error {
	err := r.store.Save(ctx, rec)
	r.metrics.RecordCatalogWrite(err)
	if err != nil {
		r.logger.Warn("catalog write failed", "path", rec.Path, "error", err)
		return err
	}

	if n, err := r.store.Count(ctx, Filter{}); err == nil {
		r.metrics.SetCatalogRecords(n)
	}
	return nil
}
