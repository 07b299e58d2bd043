package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "JRCOMP_"

// LoadConfig loads configuration from a YAML file, applies defaults and
// validates the result. Environment variables are not consulted; use Load
// for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Load loads configuration from path, when path is not empty, and applies
// environment variable overrides. The final configuration is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if cfg, err = parse(data); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// parse decodes YAML over the defaults so absent booleans keep their
// default value.
func parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	ApplyDefaults(cfg)
	return cfg, nil
}

// applyEnvOverrides applies JRCOMP_SECTION_FIELD environment overrides.
func applyEnvOverrides(cfg *Config) {
	// Parser overrides
	envInt64("PARSER_MAX_FILE_SIZE", &cfg.Parser.MaxFileSize)
	envInt("PARSER_MAX_DEPTH", &cfg.Parser.MaxDepth)
	envString("PARSER_REPORT_NAMESPACE", &cfg.Parser.ReportNamespace)
	envString("PARSER_COMPONENTS_NAMESPACE", &cfg.Parser.ComponentsNamespace)
	envBool("PARSER_STRICT", &cfg.Parser.Strict)

	// Watch overrides
	if val := os.Getenv(EnvPrefix + "WATCH_PATHS"); val != "" {
		cfg.Watch.Paths = splitList(val)
	}
	envDuration("WATCH_DEBOUNCE", &cfg.Watch.Debounce)
	if val := os.Getenv(EnvPrefix + "WATCH_EXTENSIONS"); val != "" {
		cfg.Watch.Extensions = splitList(val)
	}
	envBool("WATCH_RECURSIVE", &cfg.Watch.Recursive)

	// Catalog overrides
	envBool("CATALOG_ENABLED", &cfg.Catalog.Enabled)
	envString("CATALOG_BACKEND", &cfg.Catalog.Backend)
	envString("CATALOG_SQLITE_PATH", &cfg.Catalog.SQLite.Path)
	envString("CATALOG_SQLITE_DRIVER", &cfg.Catalog.SQLite.Driver)
	envBool("CATALOG_SQLITE_WAL_MODE", &cfg.Catalog.SQLite.WALMode)
	envDuration("CATALOG_SQLITE_BUSY_TIMEOUT", &cfg.Catalog.SQLite.BusyTimeout)
	envInt("CATALOG_RETENTION_DAYS", &cfg.Catalog.Retention.Days)
	envInt64("CATALOG_RETENTION_MAX_RECORDS", &cfg.Catalog.Retention.MaxRecords)
	envString("CATALOG_RETENTION_SCHEDULE", &cfg.Catalog.Retention.Schedule)

	// Telemetry overrides
	envString("TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	envString("TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	envBool("TELEMETRY_LOGGING_ADD_SOURCE", &cfg.Telemetry.Logging.AddSource)
	envBool("TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	envString("TELEMETRY_METRICS_LISTEN_ADDRESS", &cfg.Telemetry.Metrics.ListenAddress)
	envString("TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)
	envBool("TELEMETRY_TRACING_ENABLED", &cfg.Telemetry.Tracing.Enabled)
	envString("TELEMETRY_TRACING_ENDPOINT", &cfg.Telemetry.Tracing.Endpoint)
	envBool("TELEMETRY_TRACING_INSECURE", &cfg.Telemetry.Tracing.Insecure)
	envString("TELEMETRY_TRACING_SAMPLER", &cfg.Telemetry.Tracing.Sampler)
	if val := os.Getenv(EnvPrefix + "TELEMETRY_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}
}

func envString(name string, dst *string) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		*dst = val
	}
}

func envBool(name string, dst *bool) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}

func envInt(name string, dst *int) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}

func envInt64(name string, dst *int64) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			*dst = i
		}
	}
}

func envDuration(name string, dst *time.Duration) {
	if val := os.Getenv(EnvPrefix + name); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
