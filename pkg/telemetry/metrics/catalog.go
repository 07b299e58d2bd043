package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bjorndarri/jasperreports/pkg/config"
)

// CatalogMetrics tracks the template catalog.
//
// Metrics:
//   - jrcomp_catalog_records: records currently stored
//   - jrcomp_catalog_writes_total: writes by result
//   - jrcomp_catalog_pruned_total: records removed by retention
type CatalogMetrics struct {
	records prometheus.Gauge
	writes  *prometheus.CounterVec
	pruned  prometheus.Counter
}

// NewCatalogMetrics creates and registers catalog metrics. They live under
// the "catalog" subsystem regardless of the configured one.
func NewCatalogMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CatalogMetrics {
	cm := &CatalogMetrics{
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: "catalog",
			Name:      "records",
			Help:      "Number of parse records currently stored",
		}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "catalog",
			Name:      "writes_total",
			Help:      "Total number of catalog writes by result",
		}, []string{"result"}),
		pruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "catalog",
			Name:      "pruned_total",
			Help:      "Total number of records removed by retention",
		}),
	}

	registry.MustRegister(cm.records, cm.writes, cm.pruned)
	return cm
}

// RecordWrite records the result of one write.
func (cm *CatalogMetrics) RecordWrite(err error) {
	if err != nil {
		cm.writes.WithLabelValues("error").Inc()
		return
	}
	cm.writes.WithLabelValues("success").Inc()
}
