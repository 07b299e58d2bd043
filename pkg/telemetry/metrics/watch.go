package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bjorndarri/jasperreports/pkg/config"
)

// WatchMetrics tracks the template watcher.
type WatchMetrics struct {
	events   *prometheus.CounterVec
	reparses prometheus.Counter
}

// NewWatchMetrics creates and registers watcher metrics.
func NewWatchMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *WatchMetrics {
	wm := &WatchMetrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "watch",
			Name:      "events_total",
			Help:      "Total number of filesystem events by operation",
		}, []string{"op"}),
		reparses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: "watch",
			Name:      "reparses_total",
			Help:      "Total number of debounced template re-parses",
		}),
	}

	registry.MustRegister(wm.events, wm.reparses)
	return wm
}
