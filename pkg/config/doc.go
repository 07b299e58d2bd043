// Package config provides configuration management for the jrcomp tooling.
//
// Configuration is loaded from an optional YAML file, completed with default
// values, overridden by environment variables and validated:
//
//	cfg, err := config.Load("jrcomp.yaml")
//
// An empty path skips the file and yields the defaults plus environment
// overrides.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention JRCOMP_SECTION_FIELD.
// For example:
//
//   - JRCOMP_PARSER_MAX_DEPTH overrides parser.max_depth
//   - JRCOMP_CATALOG_SQLITE_PATH overrides catalog.sqlite.path
//   - JRCOMP_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from the YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example Configuration
//
//	parser:
//	  max_file_size: 10485760
//	  max_depth: 256
//
//	watch:
//	  paths: ["./reports"]
//	  debounce: 250ms
//
//	catalog:
//	  enabled: true
//	  backend: sqlite
//	  sqlite:
//	    path: data/catalog.db
//	    driver: sqlite
//	  retention:
//	    days: 30
//	    schedule: "0 3 * * *"
//
//	telemetry:
//	  logging:
//	    level: info
//	    format: text
package config
