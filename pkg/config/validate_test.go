package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate_Defaults(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestValidate_FieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"negative depth", func(c *Config) { c.Parser.MaxDepth = -1 }, "parser.max_depth"},
		{"zero file size", func(c *Config) { c.Parser.MaxFileSize = -5 }, "parser.max_file_size"},
		{"same namespaces", func(c *Config) { c.Parser.ComponentsNamespace = c.Parser.ReportNamespace }, "parser.components_namespace"},
		{"extension without dot", func(c *Config) { c.Watch.Extensions = []string{"jrxml"} }, "watch.extensions[0]"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -1 }, "watch.debounce"},
		{"unknown backend", func(c *Config) { c.Catalog.Backend = "redis" }, "catalog.backend"},
		{"unknown driver", func(c *Config) { c.Catalog.SQLite.Driver = "pgx" }, "catalog.sqlite.driver"},
		{"bad schedule", func(c *Config) { c.Catalog.Retention.Schedule = "every day" }, "catalog.retention.schedule"},
		{"negative retention", func(c *Config) { c.Catalog.Retention.Days = -1 }, "catalog.retention.days"},
		{"bad level", func(c *Config) { c.Telemetry.Logging.Level = "loud" }, "telemetry.logging.level"},
		{"bad format", func(c *Config) { c.Telemetry.Logging.Format = "xml" }, "telemetry.logging.format"},
		{"bad listen address", func(c *Config) {
			c.Telemetry.Metrics.Enabled = true
			c.Telemetry.Metrics.ListenAddress = "9464"
		}, "telemetry.metrics.listen_address"},
		{"bad sampler", func(c *Config) {
			c.Telemetry.Tracing.Enabled = true
			c.Telemetry.Tracing.Sampler = "sometimes"
		}, "telemetry.tracing.sampler"},
		{"ratio out of range", func(c *Config) {
			c.Telemetry.Tracing.Enabled = true
			c.Telemetry.Tracing.SampleRatio = 1.5
		}, "telemetry.tracing.sample_ratio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			found := false
			for _, fe := range verr.Errors {
				if fe.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error on %s, got %v", tt.field, verr.Errors)
			}
		})
	}
}

func TestValidate_MemoryBackendSkipsSQLite(t *testing.T) {
	cfg := Default()
	cfg.Catalog.Backend = "memory"
	cfg.Catalog.SQLite.Driver = "unused"

	if err := Validate(cfg); err != nil {
		t.Errorf("memory backend should ignore sqlite settings: %v", err)
	}
}

func TestValidationError_Format(t *testing.T) {
	single := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}}}
	if single.Error() != "configuration validation failed: a: bad" {
		t.Errorf("unexpected single error text %q", single.Error())
	}

	multi := ValidationError{Errors: []FieldError{{Field: "a", Message: "bad"}, {Field: "b", Message: "worse"}}}
	if !strings.Contains(multi.Error(), "2 errors") || !strings.Contains(multi.Error(), "  - b: worse") {
		t.Errorf("unexpected multi error text %q", multi.Error())
	}
}
