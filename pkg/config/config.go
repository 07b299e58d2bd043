package config

import "time"

// Config is the root configuration structure.
type Config struct {
	// Parser controls template parsing limits and namespaces.
	Parser ParserConfig `yaml:"parser"`

	// Watch controls the template directory watcher.
	Watch WatchConfig `yaml:"watch"`

	// Catalog controls where parse outcomes are recorded.
	Catalog CatalogConfig `yaml:"catalog"`

	// Telemetry contains logging, metrics and tracing configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ParserConfig contains template parser settings.
type ParserConfig struct {
	// MaxFileSize is the largest template accepted, in bytes.
	// Default: 10MB
	MaxFileSize int64 `yaml:"max_file_size"`

	// MaxDepth is the deepest element nesting accepted.
	// Default: 256
	MaxDepth int `yaml:"max_depth"`

	// ReportNamespace is the canonical report namespace URI.
	ReportNamespace string `yaml:"report_namespace"`

	// ComponentsNamespace is the namespace URI of the list, table and
	// barcode components.
	ComponentsNamespace string `yaml:"components_namespace"`

	// Strict turns validation warnings into errors.
	Strict bool `yaml:"strict"`
}

// WatchConfig contains template watcher settings.
type WatchConfig struct {
	// Paths are the directories watched for template changes.
	Paths []string `yaml:"paths"`

	// Debounce is how long a file must stay quiet before it is re-parsed.
	// Default: 250ms
	Debounce time.Duration `yaml:"debounce"`

	// Extensions are the file extensions treated as templates.
	// Default: [".jrxml"]
	Extensions []string `yaml:"extensions"`

	// Recursive also watches subdirectories.
	Recursive bool `yaml:"recursive"`
}

// CatalogConfig contains template catalog settings.
type CatalogConfig struct {
	// Enabled records every parse outcome.
	Enabled bool `yaml:"enabled"`

	// Backend is "memory" or "sqlite".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains SQLite backend settings.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Retention controls pruning of old records.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig contains SQLite storage settings.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/catalog.db"
	Path string `yaml:"path"`

	// Driver selects the database/sql driver: "sqlite" (pure Go) or
	// "sqlite3" (cgo).
	// Default: "sqlite"
	Driver string `yaml:"driver"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 4
	MaxOpenConns int `yaml:"max_open_conns"`

	// WALMode enables write-ahead logging.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long a writer waits for a lock.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RetentionConfig contains catalog retention settings.
type RetentionConfig struct {
	// Days is how long records are kept. Zero keeps records forever.
	// Default: 30
	Days int `yaml:"days"`

	// MaxRecords caps the number of records kept. Zero means unlimited.
	MaxRecords int64 `yaml:"max_records"`

	// Schedule is the cron expression of the pruning job.
	// Default: "0 3 * * *"
	Schedule string `yaml:"schedule"`
}

// TelemetryConfig contains observability settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is "json" or "text".
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line in log records.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled records parse metrics.
	Enabled bool `yaml:"enabled"`

	// Namespace and Subsystem prefix every metric name.
	// Default: "jrcomp" and "parser"
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`

	// ListenAddress is where the watch command serves metrics and health.
	// Default: "127.0.0.1:9464"
	ListenAddress string `yaml:"listen_address"`

	// Path is the metrics endpoint path.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// DurationBuckets are the parse duration histogram buckets in seconds.
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// TracingConfig contains OpenTelemetry tracing settings.
type TracingConfig struct {
	// Enabled exports parse spans.
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector address.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure"`

	// Timeout bounds each export.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`

	// Sampler is "always", "never" or "ratio".
	// Default: "always"
	Sampler string `yaml:"sampler"`

	// SampleRatio is used by the ratio sampler.
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`

	// ServiceName is reported as the service.name resource attribute.
	// Default: "jrcomp"
	ServiceName string `yaml:"service_name"`
}
