package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bjorndarri/jasperreports/pkg/config"
)

// Record is the catalog entry for one parse of one template.
type Record struct {
	ID             uuid.UUID     `json:"id" yaml:"id"`
	Path           string        `json:"path" yaml:"path"`
	Hash           string        `json:"hash" yaml:"hash"` // sha256 of the template bytes, hex
	Size           int64         `json:"size" yaml:"size"`
	ParsedAt       time.Time     `json:"parsed_at" yaml:"parsed_at"`
	Duration       time.Duration `json:"duration" yaml:"duration"`
	Success        bool          `json:"success" yaml:"success"`
	ErrorType      string        `json:"error_type,omitempty" yaml:"error_type,omitempty"`
	ErrorMessage   string        `json:"error_message,omitempty" yaml:"error_message,omitempty"`
	ComponentKinds []string      `json:"component_kinds,omitempty" yaml:"component_kinds,omitempty"`
	Warnings       int           `json:"warnings" yaml:"warnings"`
}

// Filter selects records for List and Count. Zero fields match everything.
type Filter struct {
	Path   string
	Since  time.Time
	Failed bool // only unsuccessful parses
	Limit  int
}

func (f Filter) matches(r *Record) bool {
	if f.Path != "" && r.Path != f.Path {
		return false
	}
	if !f.Since.IsZero() && r.ParsedAt.Before(f.Since) {
		return false
	}
	if f.Failed && r.Success {
		return false
	}
	return true
}

// Store persists parse records.
type Store interface {
	// Save stores a record. A zero ID is replaced with a fresh UUID.
	Save(ctx context.Context, record *Record) error

	// List returns matching records, newest first.
	List(ctx context.Context, filter Filter) ([]*Record, error)

	// Count returns the number of matching records, ignoring filter.Limit.
	Count(ctx context.Context, filter Filter) (int64, error)

	// Prune deletes records parsed before olderThan (when non-zero) and then
	// the oldest records beyond maxRecords (when positive). It returns the
	// number of deleted records.
	Prune(ctx context.Context, olderThan time.Time, maxRecords int64) (int64, error)

	Ping(ctx context.Context) error
	Close() error
}

// StorageError reports a failed storage operation.
type StorageError struct {
	Backend   string
	Operation string
	Err       error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("catalog %s: %s: %v", e.Backend, e.Operation, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a StorageError.
func NewStorageError(backend, operation string, err error) *StorageError {
	return &StorageError{Backend: backend, Operation: operation, Err: err}
}

// Open creates the store selected by cfg.Backend.
func Open(cfg *config.CatalogConfig, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Backend {
	case "memory":
		return NewMemoryStore(), nil
	case "", "sqlite":
		return NewSQLiteStore(&cfg.SQLite, logger.With("component", "catalog.sqlite"))
	default:
		return nil, fmt.Errorf("unknown catalog backend %q", cfg.Backend)
	}
}
