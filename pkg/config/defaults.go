package config

import (
	"time"

	"github.com/bjorndarri/jasperreports/pkg/jrxml/schema"
)

// Default values for configuration fields.
const (
	// Parser defaults
	DefaultParserMaxFileSize = int64(10 * 1024 * 1024) // 10MB
	DefaultParserMaxDepth    = 256

	// Watch defaults
	DefaultWatchDebounce = 250 * time.Millisecond

	// Catalog defaults
	DefaultCatalogBackend           = "sqlite"
	DefaultCatalogSQLitePath        = "data/catalog.db"
	DefaultCatalogSQLiteDriver      = "sqlite"
	DefaultCatalogSQLiteMaxOpen     = 4
	DefaultCatalogSQLiteWALMode     = true
	DefaultCatalogSQLiteBusyTimeout = 5 * time.Second
	DefaultCatalogRetentionDays     = 30
	DefaultCatalogRetentionSchedule = "0 3 * * *"

	// Telemetry defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "text"
	DefaultMetricsNamespace     = "jrcomp"
	DefaultMetricsSubsystem     = "parser"
	DefaultMetricsListenAddress = "127.0.0.1:9464"
	DefaultMetricsPath          = "/metrics"
	DefaultTracingEndpoint      = "localhost:4317"
	DefaultTracingTimeout       = 10 * time.Second
	DefaultTracingSampler       = "always"
	DefaultTracingSampleRatio   = 1.0
	DefaultTracingServiceName   = "jrcomp"
)

// DefaultWatchExtensions are the template extensions watched by default.
var DefaultWatchExtensions = []string{".jrxml"}

// DefaultMetricsDurationBuckets are tuned for template parses (100µs to ~1.6s).
var DefaultMetricsDurationBuckets = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.6}

// Default returns a configuration holding every default value.
func Default() *Config {
	cfg := &Config{}
	cfg.Catalog.SQLite.WALMode = DefaultCatalogSQLiteWALMode
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills every zero-valued field with its default.
func ApplyDefaults(cfg *Config) {
	applyParserDefaults(&cfg.Parser)
	applyWatchDefaults(&cfg.Watch)
	applyCatalogDefaults(&cfg.Catalog)
	applyTelemetryDefaults(&cfg.Telemetry)
}

func applyParserDefaults(cfg *ParserConfig) {
	if cfg.MaxFileSize == 0 {
		cfg.MaxFileSize = DefaultParserMaxFileSize
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = DefaultParserMaxDepth
	}
	if cfg.ReportNamespace == "" {
		cfg.ReportNamespace = schema.ReportNamespace
	}
	if cfg.ComponentsNamespace == "" {
		cfg.ComponentsNamespace = schema.ComponentsNamespace
	}
}

func applyWatchDefaults(cfg *WatchConfig) {
	if cfg.Debounce == 0 {
		cfg.Debounce = DefaultWatchDebounce
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = append([]string(nil), DefaultWatchExtensions...)
	}
}

func applyCatalogDefaults(cfg *CatalogConfig) {
	if cfg.Backend == "" {
		cfg.Backend = DefaultCatalogBackend
	}
	if cfg.SQLite.Path == "" {
		cfg.SQLite.Path = DefaultCatalogSQLitePath
	}
	if cfg.SQLite.Driver == "" {
		cfg.SQLite.Driver = DefaultCatalogSQLiteDriver
	}
	if cfg.SQLite.MaxOpenConns == 0 {
		cfg.SQLite.MaxOpenConns = DefaultCatalogSQLiteMaxOpen
	}
	if cfg.SQLite.BusyTimeout == 0 {
		cfg.SQLite.BusyTimeout = DefaultCatalogSQLiteBusyTimeout
	}
	if cfg.Retention.Days == 0 {
		cfg.Retention.Days = DefaultCatalogRetentionDays
	}
	if cfg.Retention.Schedule == "" {
		cfg.Retention.Schedule = DefaultCatalogRetentionSchedule
	}
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}

	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if len(cfg.Metrics.DurationBuckets) == 0 {
		cfg.Metrics.DurationBuckets = append([]float64(nil), DefaultMetricsDurationBuckets...)
	}

	if cfg.Tracing.Endpoint == "" {
		cfg.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Tracing.Timeout == 0 {
		cfg.Tracing.Timeout = DefaultTracingTimeout
	}
	if cfg.Tracing.Sampler == "" {
		cfg.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Tracing.SampleRatio == 0 {
		cfg.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = DefaultTracingServiceName
	}
}
