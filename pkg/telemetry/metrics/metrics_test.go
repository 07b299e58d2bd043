package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/bjorndarri/jasperreports/pkg/config"
)

// Helper function to create test config
func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:         true,
		Namespace:       "test",
		Subsystem:       "parser",
		DurationBuckets: []float64{0.001, 0.01, 0.1},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
}

func TestCollector_DefaultsApplied(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	NewCollector(cfg, nil)

	if cfg.Namespace != config.DefaultMetricsNamespace || cfg.Subsystem != config.DefaultMetricsSubsystem {
		t.Errorf("defaults not applied: %q/%q", cfg.Namespace, cfg.Subsystem)
	}
	if len(cfg.DurationBuckets) == 0 {
		t.Error("expected default buckets")
	}
}

func TestCollector_RecordParse(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordParse("success", "", 2*time.Millisecond)
	collector.RecordParse("success", "", 3*time.Millisecond)
	collector.RecordParse("error", "unrecognized_constant", time.Millisecond)

	pm := collector.parseMetrics
	if got := testutil.ToFloat64(pm.parses.WithLabelValues("success")); got != 2 {
		t.Errorf("expected 2 successful parses, got %v", got)
	}
	if got := testutil.ToFloat64(pm.errors.WithLabelValues("unrecognized_constant")); got != 1 {
		t.Errorf("expected 1 error, got %v", got)
	}
	if got := testutil.CollectAndCount(pm.duration); got != 2 {
		t.Errorf("expected 2 duration series, got %d", got)
	}
}

func TestCollector_RecordComponentCardinality(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	for i := 0; i < maxComponentKinds+5; i++ {
		collector.RecordComponent(fmt.Sprintf("kind-%d", i))
	}

	if got := testutil.ToFloat64(collector.parseMetrics.components.WithLabelValues("other")); got != 5 {
		t.Errorf("expected 5 kinds folded into other, got %v", got)
	}
	if collector.kinds.Count() != maxComponentKinds {
		t.Errorf("expected %d tracked kinds, got %d", maxComponentKinds, collector.kinds.Count())
	}
}

func TestCollector_Catalog(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordCatalogWrite(nil)
	collector.RecordCatalogWrite(errors.New("disk full"))
	collector.RecordCatalogPrune(7)
	collector.SetCatalogRecords(42)

	cm := collector.catalogMetrics
	if got := testutil.ToFloat64(cm.writes.WithLabelValues("error")); got != 1 {
		t.Errorf("expected 1 failed write, got %v", got)
	}
	if got := testutil.ToFloat64(cm.pruned); got != 7 {
		t.Errorf("expected 7 pruned, got %v", got)
	}
	if got := testutil.ToFloat64(cm.records); got != 42 {
		t.Errorf("expected 42 records, got %v", got)
	}
}

func TestCollector_Watch(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())

	collector.RecordWatchEvent("write")
	collector.RecordWatchEvent("write")
	collector.RecordReparse()

	if got := testutil.ToFloat64(collector.watchMetrics.events.WithLabelValues("write")); got != 2 {
		t.Errorf("expected 2 write events, got %v", got)
	}
	if got := testutil.ToFloat64(collector.watchMetrics.reparses); got != 1 {
		t.Errorf("expected 1 reparse, got %v", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, prometheus.NewRegistry())

	collector.RecordParse("success", "", time.Millisecond)
	collector.RecordValidationIssue("warning")

	if got := testutil.ToFloat64(collector.parseMetrics.parses.WithLabelValues("success")); got != 0 {
		t.Errorf("disabled collector recorded %v parses", got)
	}

	var nilCollector *Collector
	nilCollector.RecordParse("success", "", time.Millisecond)
	nilCollector.RecordComponent("table")
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), prometheus.NewRegistry())
	collector.RecordComponent("table")
	collector.RecordValidationIssue("warning")

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`test_parser_components_total{kind="table"} 1`,
		`test_parser_validation_issues_total{severity="warning"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in exposition", want)
		}
	}
}
