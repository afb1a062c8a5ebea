// Package config provides configuration management for the shipping quote
// service.
//
// This package handles loading, validating, and managing service
// configuration from an optional YAML file, a .env file, and environment
// variable overrides. Pricing rules are not part of this configuration; they
// live in their own document, located by rules.path (see package rules).
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// An empty path skips the file. Unknown YAML keys are rejected.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention SHIPQUOTE_SECTION_FIELD.
// For example:
//
//   - SHIPQUOTE_SERVER_LISTEN_ADDRESS overrides server.listen_address
//   - SHIPQUOTE_RULES_PATH overrides rules.path
//   - SHIPQUOTE_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// LoadDotEnv copies variables from a .env file into the environment without
// overwriting ones that are already set. A value that cannot be parsed (for
// example SHIPQUOTE_SERVER_READ_TIMEOUT=soon) fails loading.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Variables from .env (when the CLI loads it)
//  4. Process environment overrides
//  5. Command-line flags (applied by cmd/shipquote)
//
// Validation runs after each stage that can change values and reports every
// problem at once:
//
//	configuration validation failed with 2 errors:
//	  - server.environment: invalid environment "staging": must be 'development' or 'production'
//	  - telemetry.tracing.endpoint: tracing endpoint is required when tracing is enabled
//
// # Example Configuration
//
//	server:
//	  listen_address: "0.0.0.0:5000"
//	  environment: "development"
//
//	rules:
//	  path: "./rules.json"
//	  strict: true
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
//
// # Singleton
//
// The CLI stores the resolved configuration with SetConfig; GetConfig returns
// it. Library packages take their sections as explicit arguments.
package config
