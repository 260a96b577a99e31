package config

import (
	"errors"
	"math"
	"slices"
	"strings"
	"testing"
)

func TestValidate_Defaults(t *testing.T) {
	t.Parallel()

	if err := Validate(NewDefaultConfig()); err != nil {
		t.Fatalf("defaults should be valid, got %v", err)
	}
}

func TestValidate_Fields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero load", func(c *Config) { c.Form.AxialLoad = 0 }, "form.axial_load_kn"},
		{"negative pressure", func(c *Config) { c.Form.AllowablePressure = -5 }, "form.allowable_pressure_kn_m2"},
		{"nan moment", func(c *Config) { c.Form.MomentY = math.NaN() }, "form.moment_y_knm"},
		{"zero iterations", func(c *Config) { c.Engine.MaxIterations = 0 }, "engine.max_iterations"},
		{"unit scale step", func(c *Config) { c.Engine.ScaleStep = 1 }, "engine.scale_step"},
		{"unknown language", func(c *Config) { c.Report.Language = "fr" }, "report.language"},
		{"empty addr", func(c *Config) { c.Server.Addr = " " }, "server.addr"},
		{"zero rate", func(c *Config) { c.Server.RatePerSecond = 0 }, "server.rate_per_second"},
		{"zero burst", func(c *Config) { c.Server.Burst = 0 }, "server.burst"},
		{"negative timeout", func(c *Config) { c.Server.ShutdownTimeout = -1 }, "server.shutdown_timeout_seconds"},
		{"bad log level", func(c *Config) { c.System.LogLevel = "trace" }, "system.log_level"},
		{"bad log format", func(c *Config) { c.System.LogFormat = "xml" }, "system.log_format"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewDefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error should match ErrInvalidConfig: %v", err)
			}
			var verrs *ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected *ValidationErrors, got %T", err)
			}
			if len(verrs.Errors) != 1 || verrs.Errors[0].Field != tt.field {
				t.Errorf("errors = %v, want single error on %q", verrs.Errors, tt.field)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	t.Parallel()

	cfg := NewDefaultConfig()
	cfg.Engine.MaxIterations = -1
	cfg.System.LogFormat = "yaml"

	err := Validate(cfg)
	var verrs *ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected *ValidationErrors, got %T", err)
	}
	if len(verrs.Errors) != 2 {
		t.Errorf("got %d errors, want 2", len(verrs.Errors))
	}
	if !strings.Contains(err.Error(), "2 invalid values") {
		t.Errorf("Error() = %q", err.Error())
	}
	want := []string{"engine.max_iterations", "system.log_format"}
	if got := verrs.Fields(); !slices.Equal(got, want) {
		t.Errorf("Fields() = %v, want %v", got, want)
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	withValue := &ValidationError{Field: "engine.max_iterations", Message: "must be greater than 0", Value: 0}
	if got, want := withValue.Error(), "engine.max_iterations: must be greater than 0 (got 0)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got := withValue.Section(); got != "engine" {
		t.Errorf("Section() = %q, want engine", got)
	}
	noValue := &ValidationError{Field: "server.addr", Message: "required"}
	if got := noValue.Error(); got != "server.addr: required" {
		t.Errorf("Error() = %q, should omit value", got)
	}
	if (&ValidationErrors{}).Error() != "config: no invalid values" {
		t.Error("empty ValidationErrors message mismatch")
	}
	single := &ValidationErrors{Errors: []ValidationError{*noValue}}
	if got := single.Error(); got != "config: invalid value: server.addr: required" {
		t.Errorf("single Error() = %q", got)
	}
}
