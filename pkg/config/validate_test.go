package config

import (
	"strings"
	"testing"
	"time"
)

func TestValidate_ValidConfig(t *testing.T) {
	if err := Validate(NewDefaultConfig()); err != nil {
		t.Errorf("expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := &Config{}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	validationErr, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(validationErr.Errors) < 2 {
		t.Errorf("expected multiple errors, got %d", len(validationErr.Errors))
	}
	if !strings.Contains(validationErr.Error(), "validation failed with") {
		t.Errorf("error message should mention multiple errors: %s", validationErr.Error())
	}
}

func TestValidate_SingleErrorMessage(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Service.Name = "  "

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	want := "configuration validation failed: service.name: service name is required"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestValidate_Fields(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(cfg *Config)
		errorField string
	}{
		{
			name:       "missing listen address",
			mutate:     func(cfg *Config) { cfg.Server.ListenAddress = "" },
			errorField: "server.listen_address",
		},
		{
			name:       "listen address without port",
			mutate:     func(cfg *Config) { cfg.Server.ListenAddress = "localhost" },
			errorField: "server.listen_address",
		},
		{
			name:       "negative read timeout",
			mutate:     func(cfg *Config) { cfg.Server.ReadTimeout = -time.Second },
			errorField: "server.read_timeout",
		},
		{
			name:       "negative shutdown timeout",
			mutate:     func(cfg *Config) { cfg.Server.ShutdownTimeout = -time.Second },
			errorField: "server.shutdown_timeout",
		},
		{
			name:       "zero body limit",
			mutate:     func(cfg *Config) { cfg.Server.MaxBodyBytes = 0 },
			errorField: "server.max_body_bytes",
		},
		{
			name:       "unknown environment",
			mutate:     func(cfg *Config) { cfg.Server.Environment = "staging" },
			errorField: "server.environment",
		},
		{
			name: "wildcard origin with credentials",
			mutate: func(cfg *Config) {
				cfg.Server.CORS.AllowedOrigins = []string{"*"}
				cfg.Server.CORS.AllowCredentials = true
			},
			errorField: "server.cors.allowed_origins",
		},
		{
			name:       "negative CORS max age",
			mutate:     func(cfg *Config) { cfg.Server.CORS.MaxAge = -1 },
			errorField: "server.cors.max_age",
		},
		{
			name:       "empty rules path",
			mutate:     func(cfg *Config) { cfg.Rules.Path = "" },
			errorField: "rules.path",
		},
		{
			name:       "unsupported rules extension",
			mutate:     func(cfg *Config) { cfg.Rules.Path = "rules.ini" },
			errorField: "rules.path",
		},
		{
			name:       "invalid logging level",
			mutate:     func(cfg *Config) { cfg.Telemetry.Logging.Level = "trace" },
			errorField: "telemetry.logging.level",
		},
		{
			name:       "invalid logging format",
			mutate:     func(cfg *Config) { cfg.Telemetry.Logging.Format = "xml" },
			errorField: "telemetry.logging.format",
		},
		{
			name: "negative log rotation",
			mutate: func(cfg *Config) {
				cfg.Telemetry.Logging.File.Path = "shipquote.log"
				cfg.Telemetry.Logging.File.MaxBackups = -1
			},
			errorField: "telemetry.logging.file",
		},
		{
			name:       "metrics path without slash",
			mutate:     func(cfg *Config) { cfg.Telemetry.Metrics.Path = "metrics" },
			errorField: "telemetry.metrics.path",
		},
		{
			name:       "unsorted price buckets",
			mutate:     func(cfg *Config) { cfg.Telemetry.Metrics.PriceBuckets = []float64{10, 5} },
			errorField: "telemetry.metrics.price_buckets",
		},
		{
			name:       "unknown sampler",
			mutate:     func(cfg *Config) { cfg.Telemetry.Tracing.Sampler = "sometimes" },
			errorField: "telemetry.tracing.sampler",
		},
		{
			name:       "sample ratio above one",
			mutate:     func(cfg *Config) { cfg.Telemetry.Tracing.SampleRatio = 1.5 },
			errorField: "telemetry.tracing.sample_ratio",
		},
		{
			name:       "readiness path without slash",
			mutate:     func(cfg *Config) { cfg.Telemetry.Health.ReadinessPath = "ready" },
			errorField: "telemetry.health.readiness_path",
		},
		{
			name:       "check timeout too long",
			mutate:     func(cfg *Config) { cfg.Telemetry.Health.CheckTimeout = 2 * time.Minute },
			errorField: "telemetry.health.check_timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errorField) {
				t.Errorf("expected error for field %q, got: %v", tt.errorField, err)
			}
		})
	}
}

func TestValidate_DisabledMetricsSkipsChecks(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Telemetry.Metrics.Enabled = false
	cfg.Telemetry.Metrics.Path = "not-a-path"

	if err := Validate(cfg); err != nil {
		t.Errorf("expected disabled metrics to skip validation, got %v", err)
	}
}

func TestValidate_TracingEnabledWithEndpoint(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Telemetry.Tracing.Enabled = true
	cfg.Telemetry.Tracing.Endpoint = "localhost:4317"

	if err := Validate(cfg); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
