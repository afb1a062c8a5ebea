package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "SHIPQUOTE_"

// LoadConfig loads configuration from a YAML file at the specified path.
// The file is decoded on top of NewDefaultConfig, so omitted fields keep
// their defaults. Unknown keys are rejected.
// The configuration is not modified by environment variables; use
// LoadConfigWithEnvOverrides for that functionality.
func LoadConfig(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}

		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention SHIPQUOTE_SECTION_FIELD (e.g., SHIPQUOTE_SERVER_LISTEN_ADDRESS).
// Environment variables always take precedence over file-based configuration.
//
// An empty path skips the file and starts from defaults.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (".env" when none are
// given) into the process environment. Files that do not exist are skipped and
// variables already set in the environment are never overwritten.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file %q: %w", p, err)
		}
	}
	return nil
}

// envReader collects parse failures so that every malformed override is
// reported at once.
type envReader struct {
	errs []FieldError
}

func (r *envReader) setString(name string, dst *string) {
	if val, ok := os.LookupEnv(EnvPrefix + name); ok && val != "" {
		*dst = val
	}
}

func (r *envReader) setDuration(name string, dst *time.Duration) {
	if val, ok := os.LookupEnv(EnvPrefix + name); ok && val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			r.fail(name, val, "duration")
			return
		}
		*dst = d
	}
}

func (r *envReader) setInt(name string, dst *int) {
	if val, ok := os.LookupEnv(EnvPrefix + name); ok && val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			r.fail(name, val, "integer")
			return
		}
		*dst = i
	}
}

func (r *envReader) setInt64(name string, dst *int64) {
	if val, ok := os.LookupEnv(EnvPrefix + name); ok && val != "" {
		i, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			r.fail(name, val, "integer")
			return
		}
		*dst = i
	}
}

func (r *envReader) setBool(name string, dst *bool) {
	if val, ok := os.LookupEnv(EnvPrefix + name); ok && val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			r.fail(name, val, "boolean")
			return
		}
		*dst = b
	}
}

func (r *envReader) setFloat(name string, dst *float64) {
	if val, ok := os.LookupEnv(EnvPrefix + name); ok && val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			r.fail(name, val, "number")
			return
		}
		*dst = f
	}
}

func (r *envReader) setList(name string, dst *[]string) {
	if val, ok := os.LookupEnv(EnvPrefix + name); ok && val != "" {
		var items []string
		for _, item := range strings.Split(val, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		*dst = items
	}
}

func (r *envReader) fail(name, val, kind string) {
	r.errs = append(r.errs, FieldError{
		Field:   EnvPrefix + name,
		Message: fmt.Sprintf("invalid %s %q", kind, val),
	})
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format SHIPQUOTE_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) error {
	r := &envReader{}

	// Server overrides
	r.setString("SERVER_LISTEN_ADDRESS", &cfg.Server.ListenAddress)
	r.setDuration("SERVER_READ_TIMEOUT", &cfg.Server.ReadTimeout)
	r.setDuration("SERVER_WRITE_TIMEOUT", &cfg.Server.WriteTimeout)
	r.setDuration("SERVER_IDLE_TIMEOUT", &cfg.Server.IdleTimeout)
	r.setDuration("SERVER_SHUTDOWN_TIMEOUT", &cfg.Server.ShutdownTimeout)
	r.setInt("SERVER_MAX_HEADER_BYTES", &cfg.Server.MaxHeaderBytes)
	r.setInt64("SERVER_MAX_BODY_BYTES", &cfg.Server.MaxBodyBytes)
	r.setString("SERVER_ENVIRONMENT", &cfg.Server.Environment)
	r.setBool("SERVER_CORS_ENABLED", &cfg.Server.CORS.Enabled)
	r.setList("SERVER_CORS_ALLOWED_ORIGINS", &cfg.Server.CORS.AllowedOrigins)

	// Service overrides
	r.setString("SERVICE_NAME", &cfg.Service.Name)
	r.setString("SERVICE_DESCRIPTION", &cfg.Service.Description)

	// Rules overrides
	r.setString("RULES_PATH", &cfg.Rules.Path)
	r.setBool("RULES_STRICT", &cfg.Rules.Strict)

	// Telemetry overrides
	r.setString("TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	r.setString("TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	r.setBool("TELEMETRY_LOGGING_ADD_SOURCE", &cfg.Telemetry.Logging.AddSource)
	r.setString("TELEMETRY_LOGGING_FILE_PATH", &cfg.Telemetry.Logging.File.Path)
	r.setBool("TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	r.setString("TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)
	r.setBool("TELEMETRY_TRACING_ENABLED", &cfg.Telemetry.Tracing.Enabled)
	r.setString("TELEMETRY_TRACING_SAMPLER", &cfg.Telemetry.Tracing.Sampler)
	r.setFloat("TELEMETRY_TRACING_SAMPLE_RATIO", &cfg.Telemetry.Tracing.SampleRatio)
	r.setString("TELEMETRY_TRACING_ENDPOINT", &cfg.Telemetry.Tracing.Endpoint)
	r.setString("TELEMETRY_TRACING_SERVICE_NAME", &cfg.Telemetry.Tracing.ServiceName)
	r.setBool("TELEMETRY_TRACING_OTLP_INSECURE", &cfg.Telemetry.Tracing.OTLP.Insecure)

	if len(r.errs) > 0 {
		return fmt.Errorf("invalid environment override: %w", ValidationError{Errors: r.errs})
	}
	return nil
}
