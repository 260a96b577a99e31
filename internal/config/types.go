package config

import (
	"github.com/geolab/footing/pkg/models"
)

// Config is the root configuration aggregate containing all sections.
// Form, engine and report sections use shared types from pkg/models.
type Config struct {
	Form   models.FormDefaults   `yaml:"form"`
	Engine models.EngineSettings `yaml:"engine"`
	Report models.ReportSettings `yaml:"report"`
	Server ServerConfig          `yaml:"server"`
	System SystemConfig          `yaml:"system"`
}

// ServerConfig represents the HTTP API section.
type ServerConfig struct {
	Addr            string  `yaml:"addr"`
	RatePerSecond   float64 `yaml:"rate_per_second"`
	Burst           int     `yaml:"burst"`
	ShutdownTimeout int     `yaml:"shutdown_timeout_seconds"`
}

// SystemConfig represents the system configuration section.
type SystemConfig struct {
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
	NoColor        bool   `yaml:"no_color"`
	NonInteractive bool   `yaml:"non_interactive"`
}

// SectionNames returns the names accepted by GetSection and SetSection.
func SectionNames() []string {
	return []string{"form", "engine", "report", "server", "system"}
}
