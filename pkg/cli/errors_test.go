package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestConfigError(t *testing.T) {
	tests := []struct {
		name string
		err  *ConfigError
		want string
	}{
		{
			name: "message only",
			err:  NewConfigError("server.listen_address", "missing required field"),
			want: "config error in server.listen_address: missing required field",
		},
		{
			name: "wrapped cause",
			err:  WrapConfigError("rules.path", "failed to load rules", errors.New("file not found")),
			want: "config error in rules.path: failed to load rules: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigErrorUnwrap(t *testing.T) {
	cause := errors.New("bad yaml")
	err := WrapConfigError("config", "failed to load", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is() should find the wrapped cause")
	}
	if NewConfigError("f", "m").Unwrap() != nil {
		t.Error("Unwrap() of an unwrapped ConfigError should be nil")
	}
}

func TestCommandError(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	err := NewCommandError("quote", underlyingErr)

	expected := "command quote failed: underlying error"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, underlyingErr) {
		t.Error("errors.Is() should work with CommandError.Unwrap()")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "plain error", err: errors.New("boom"), want: ExitFailure},
		{name: "command error", err: NewCommandError("quote", errors.New("boom")), want: ExitFailure},
		{name: "config error", err: NewConfigError("rules.path", "missing"), want: ExitConfig},
		{
			name: "wrapped config error",
			err:  fmt.Errorf("serve: %w", WrapConfigError("rules.path", "invalid", errors.New("x"))),
			want: ExitConfig,
		},
		{
			name: "config error inside command error",
			err:  NewCommandError("validate", NewConfigError("rules.path", "invalid")),
			want: ExitConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
