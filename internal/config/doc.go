// Package config provides centralized configuration management for bsplan.
// It handles loading configuration from multiple sources, validation, and
// provides a type-safe API for accessing configuration values.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (bsplan.yaml or configs/bsplan.yaml)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern BSPLAN_<SECTION>_<FIELD>:
//
//	BSPLAN_INPUT_DELIMITER=";"
//	BSPLAN_REPAIR_SHIFT_AMBIGUOUS_END=true
//	BSPLAN_OUTPUT_CSV_EXPORT=false
//	BSPLAN_LOGGING_LEVEL=info
//
// # Validation
//
// All configuration is validated at load time to ensure required fields are
// present and values are within acceptable ranges.
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For testing, use config.Default() to build a configuration that does not
// depend on environment variables or files.
package config
