package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bjorndarri/jasperreports/pkg/config"
)

// ParseMetrics tracks template parsing.
//
// Metrics:
//   - jrcomp_parser_parses_total: parses by result
//   - jrcomp_parser_errors_total: failed parses by error type
//   - jrcomp_parser_parse_duration_seconds: parse latency
//   - jrcomp_parser_template_bytes: template size
//   - jrcomp_parser_components_total: built components by kind
//   - jrcomp_parser_validation_issues_total: validator findings by severity
type ParseMetrics struct {
	parses        *prometheus.CounterVec
	errors        *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	templateBytes prometheus.Histogram
	components    *prometheus.CounterVec
	issues        *prometheus.CounterVec
}

// NewParseMetrics creates and registers parse metrics.
func NewParseMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *ParseMetrics {
	pm := &ParseMetrics{
		parses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parses_total",
				Help:      "Total number of template parses by result",
			},
			[]string{"result"},
		),

		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "errors_total",
				Help:      "Total number of failed parses by error type",
			},
			[]string{"error_type"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "parse_duration_seconds",
				Help:      "Template parse duration in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"result"},
		),

		templateBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "template_bytes",
				Help:      "Size of parsed templates in bytes",
				Buckets:   prometheus.ExponentialBuckets(1024, 4, 8), // 1KB - 16MB
			},
		),

		components: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "components_total",
				Help:      "Total number of components built by kind",
			},
			[]string{"kind"},
		),

		issues: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validation_issues_total",
				Help:      "Total number of validation findings by severity",
			},
			[]string{"severity"},
		),
	}

	registry.MustRegister(pm.parses, pm.errors, pm.duration, pm.templateBytes, pm.components, pm.issues)
	return pm
}

// RecordParse records one parse outcome.
func (pm *ParseMetrics) RecordParse(result, errorType string, duration time.Duration) {
	pm.parses.WithLabelValues(result).Inc()
	pm.duration.WithLabelValues(result).Observe(duration.Seconds())
	if errorType != "" {
		pm.errors.WithLabelValues(errorType).Inc()
	}
}
