package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jrcomp.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `
parser:
  max_depth: 64
  strict: true

watch:
  paths: ["./reports", "./shared"]
  debounce: "500ms"
  recursive: true

catalog:
  enabled: true
  backend: "sqlite"
  sqlite:
    path: "./catalog.db"
    driver: "sqlite3"
  retention:
    days: 7
    schedule: "@daily"

telemetry:
  logging:
    level: "debug"
    format: "json"
  metrics:
    enabled: true
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Parser.MaxDepth != 64 {
		t.Errorf("expected max depth 64, got %d", cfg.Parser.MaxDepth)
	}
	if !cfg.Parser.Strict {
		t.Error("expected strict mode")
	}
	if len(cfg.Watch.Paths) != 2 || cfg.Watch.Paths[1] != "./shared" {
		t.Errorf("unexpected watch paths %v", cfg.Watch.Paths)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("expected debounce 500ms, got %v", cfg.Watch.Debounce)
	}
	if cfg.Catalog.SQLite.Driver != "sqlite3" {
		t.Errorf("expected driver sqlite3, got %q", cfg.Catalog.SQLite.Driver)
	}
	if cfg.Catalog.Retention.Days != 7 {
		t.Errorf("expected retention 7 days, got %d", cfg.Catalog.Retention.Days)
	}
	if cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("expected json format, got %q", cfg.Telemetry.Logging.Format)
	}

	// Defaults fill the rest
	if cfg.Parser.MaxFileSize != DefaultParserMaxFileSize {
		t.Errorf("expected default max file size, got %d", cfg.Parser.MaxFileSize)
	}
	if !cfg.Catalog.SQLite.WALMode {
		t.Error("expected WAL mode to default to true")
	}
	if cfg.Telemetry.Metrics.Path != DefaultMetricsPath {
		t.Errorf("expected metrics path %q, got %q", DefaultMetricsPath, cfg.Telemetry.Metrics.Path)
	}
}

func TestLoadConfig_ExplicitFalseKept(t *testing.T) {
	path := writeConfig(t, `
catalog:
  sqlite:
    wal_mode: false
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Catalog.SQLite.WALMode {
		t.Error("expected explicit wal_mode: false to be kept")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "parser: [unclosed")

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	path := writeConfig(t, `
catalog:
  backend: "postgres"
`)

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Errors[0].Field != "catalog.backend" {
		t.Errorf("expected catalog.backend error, got %q", verr.Errors[0].Field)
	}
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("failed to load defaults: %v", err)
	}
	if cfg.Parser.MaxDepth != DefaultParserMaxDepth {
		t.Errorf("expected default max depth, got %d", cfg.Parser.MaxDepth)
	}
	if cfg.Catalog.Backend != DefaultCatalogBackend {
		t.Errorf("expected default backend, got %q", cfg.Catalog.Backend)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JRCOMP_PARSER_MAX_DEPTH", "32")
	t.Setenv("JRCOMP_PARSER_STRICT", "true")
	t.Setenv("JRCOMP_WATCH_PATHS", "a, b ,,c")
	t.Setenv("JRCOMP_WATCH_DEBOUNCE", "1s")
	t.Setenv("JRCOMP_CATALOG_BACKEND", "memory")
	t.Setenv("JRCOMP_TELEMETRY_LOGGING_LEVEL", "warn")
	t.Setenv("JRCOMP_TELEMETRY_TRACING_SAMPLE_RATIO", "0.25")

	path := writeConfig(t, `
parser:
  max_depth: 100
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Parser.MaxDepth != 32 {
		t.Errorf("expected env override 32, got %d", cfg.Parser.MaxDepth)
	}
	if !cfg.Parser.Strict {
		t.Error("expected strict override")
	}
	if strings.Join(cfg.Watch.Paths, "|") != "a|b|c" {
		t.Errorf("unexpected paths %v", cfg.Watch.Paths)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("expected debounce 1s, got %v", cfg.Watch.Debounce)
	}
	if cfg.Catalog.Backend != "memory" {
		t.Errorf("expected memory backend, got %q", cfg.Catalog.Backend)
	}
	if cfg.Telemetry.Logging.Level != "warn" {
		t.Errorf("expected warn level, got %q", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Tracing.SampleRatio != 0.25 {
		t.Errorf("expected sample ratio 0.25, got %v", cfg.Telemetry.Tracing.SampleRatio)
	}
}

func TestLoad_InvalidEnvValueIgnored(t *testing.T) {
	t.Setenv("JRCOMP_PARSER_MAX_DEPTH", "deep")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Parser.MaxDepth != DefaultParserMaxDepth {
		t.Errorf("expected default max depth, got %d", cfg.Parser.MaxDepth)
	}
}
