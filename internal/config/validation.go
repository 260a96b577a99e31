package config

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/geolab/footing/pkg/models"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
)

// Validate checks the configuration for correctness.
// All problems are collected into a single *ValidationErrors.
func Validate(cfg *Config) error {
	var errs []ValidationError

	errs = append(errs, validateForm(&cfg.Form)...)
	errs = append(errs, validateEngine(&cfg.Engine)...)
	errs = append(errs, validateReport(&cfg.Report)...)
	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateSystem(&cfg.System)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// validateForm checks the initial field values. Moments may take any
// finite value.
func validateForm(f *models.FormDefaults) []ValidationError {
	var errs []ValidationError

	if !(f.AxialLoad > 0) || math.IsInf(f.AxialLoad, 0) {
		errs = append(errs, ValidationError{
			Field:   "form.axial_load_kn",
			Message: "must be a positive number",
			Value:   f.AxialLoad,
			Wrapped: ErrInvalidConfig,
		})
	}
	if !(f.AllowablePressure > 0) || math.IsInf(f.AllowablePressure, 0) {
		errs = append(errs, ValidationError{
			Field:   "form.allowable_pressure_kn_m2",
			Message: "must be a positive number",
			Value:   f.AllowablePressure,
			Wrapped: ErrInvalidConfig,
		})
	}
	for field, v := range map[string]float64{"form.moment_x_knm": f.MomentX, "form.moment_y_knm": f.MomentY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "must be a finite number",
				Value:   v,
				Wrapped: ErrInvalidConfig,
			})
		}
	}
	return errs
}

func validateEngine(e *models.EngineSettings) []ValidationError {
	var errs []ValidationError

	if e.MaxIterations <= 0 {
		errs = append(errs, ValidationError{
			Field:   "engine.max_iterations",
			Message: "must be greater than 0",
			Value:   e.MaxIterations,
			Wrapped: ErrInvalidConfig,
		})
	}
	if !(e.ScaleStep > 1) || math.IsInf(e.ScaleStep, 0) {
		errs = append(errs, ValidationError{
			Field:   "engine.scale_step",
			Message: "must be greater than 1 so dimensions grow every iteration",
			Value:   e.ScaleStep,
			Wrapped: ErrInvalidConfig,
		})
	}
	return errs
}

func validateReport(r *models.ReportSettings) []ValidationError {
	var errs []ValidationError

	if !models.IsValidLanguageCode(r.Language) {
		errs = append(errs, ValidationError{
			Field:   "report.language",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(models.SupportedLanguages(), ", ")),
			Value:   r.Language,
			Wrapped: ErrInvalidConfig,
		})
	}
	return errs
}

func validateServer(s *ServerConfig) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(s.Addr) == "" {
		errs = append(errs, ValidationError{
			Field:   "server.addr",
			Message: "required field is empty (example: addr: \":8080\")",
			Wrapped: ErrInvalidConfig,
		})
	}
	if !(s.RatePerSecond > 0) {
		errs = append(errs, ValidationError{
			Field:   "server.rate_per_second",
			Message: "must be greater than 0",
			Value:   s.RatePerSecond,
			Wrapped: ErrInvalidConfig,
		})
	}
	if s.Burst <= 0 {
		errs = append(errs, ValidationError{
			Field:   "server.burst",
			Message: "must be greater than 0",
			Value:   s.Burst,
			Wrapped: ErrInvalidConfig,
		})
	}
	if s.ShutdownTimeout < 0 {
		errs = append(errs, ValidationError{
			Field:   "server.shutdown_timeout_seconds",
			Message: "must not be negative",
			Value:   s.ShutdownTimeout,
			Wrapped: ErrInvalidConfig,
		})
	}
	return errs
}

func validateSystem(s *SystemConfig) []ValidationError {
	var errs []ValidationError

	if !slices.Contains(validLogLevels, s.LogLevel) {
		errs = append(errs, ValidationError{
			Field:   "system.log_level",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validLogLevels, ", ")),
			Value:   s.LogLevel,
			Wrapped: ErrInvalidConfig,
		})
	}
	if !slices.Contains(validLogFormats, s.LogFormat) {
		errs = append(errs, ValidationError{
			Field:   "system.log_format",
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validLogFormats, ", ")),
			Value:   s.LogFormat,
			Wrapped: ErrInvalidConfig,
		})
	}
	return errs
}
