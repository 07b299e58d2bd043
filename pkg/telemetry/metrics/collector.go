package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bjorndarri/jasperreports/pkg/config"
)

// Collector owns every Prometheus metric recorded by the jrcomp tooling and
// provides a single recording interface for the parser, the catalog and the
// watcher.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	parseMetrics   *ParseMetrics
	catalogMetrics *CatalogMetrics
	watchMetrics   *WatchMetrics

	// kinds bounds the component kind label set
	kinds *CardinalityLimiter
}

// maxComponentKinds caps distinct component kind label values.
const maxComponentKinds = 64

// NewCollector creates a collector with the given configuration and
// registry. A nil registry gets a fresh one.
//
// Example:
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.RecordParse("success", "", 2*time.Millisecond)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = append([]float64(nil), config.DefaultMetricsDurationBuckets...)
	}

	return &Collector{
		config:         cfg,
		registry:       registry,
		parseMetrics:   NewParseMetrics(cfg, registry),
		catalogMetrics: NewCatalogMetrics(cfg, registry),
		watchMetrics:   NewWatchMetrics(cfg, registry),
		kinds:          NewCardinalityLimiter(maxComponentKinds),
	}
}

// RecordParse records one parse outcome.
//
// Parameters:
//   - result: "success" or "error"
//   - errorType: the error category for failed parses, empty otherwise
//   - duration: wall time of the parse
func (c *Collector) RecordParse(result, errorType string, duration time.Duration) {
	if c == nil || !c.config.Enabled {
		return
	}
	c.parseMetrics.RecordParse(result, errorType, duration)
}

// RecordTemplateSize records the byte size of a parsed template.
func (c *Collector) RecordTemplateSize(bytes int64) {
	if c == nil || !c.config.Enabled {
		return
	}
	c.parseMetrics.templateBytes.Observe(float64(bytes))
}

// RecordComponent counts one built component of the given kind.
func (c *Collector) RecordComponent(kind string) {
	if c == nil || !c.config.Enabled {
		return
	}
	if !c.kinds.Allow(kind) {
		kind = "other"
	}
	c.parseMetrics.components.WithLabelValues(kind).Inc()
}

// RecordValidationIssue counts one validator finding.
func (c *Collector) RecordValidationIssue(severity string) {
	if c == nil || !c.config.Enabled {
		return
	}
	c.parseMetrics.issues.WithLabelValues(severity).Inc()
}

// RecordCatalogWrite records the outcome of writing one catalog record.
func (c *Collector) RecordCatalogWrite(err error) {
	if c == nil || !c.config.Enabled {
		return
	}
	c.catalogMetrics.RecordWrite(err)
}

// RecordCatalogPrune records how many records a retention run removed.
func (c *Collector) RecordCatalogPrune(removed int64) {
	if c == nil || !c.config.Enabled {
		return
	}
	c.catalogMetrics.pruned.Add(float64(removed))
}

// SetCatalogRecords updates the current catalog record count.
func (c *Collector) SetCatalogRecords(n int64) {
	if c == nil || !c.config.Enabled {
		return
	}
	c.catalogMetrics.records.Set(float64(n))
}

// RecordWatchEvent counts one filesystem event by operation.
func (c *Collector) RecordWatchEvent(op string) {
	if c == nil || !c.config.Enabled {
		return
	}
	c.watchMetrics.events.WithLabelValues(op).Inc()
}

// RecordReparse counts one debounced re-parse triggered by the watcher.
func (c *Collector) RecordReparse() {
	if c == nil || !c.config.Enabled {
		return
	}
	c.watchMetrics.reparses.Inc()
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a limiter with the given maximum.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow reports whether labelSet is already tracked or still fits under the
// limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
