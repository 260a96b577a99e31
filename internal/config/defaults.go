package config

import (
	"github.com/geolab/footing/internal/sizing"
	"github.com/geolab/footing/pkg/models"
)

// Default value constants to avoid magic numbers and strings.
const (
	DirName  = ".footing"
	FileName = "footing.yaml"
	EnvFile  = ".env"

	DefaultAxialLoad         = 300.0
	DefaultMomentX           = 20.0
	DefaultMomentY           = 10.0
	DefaultAllowablePressure = 150.0

	DefaultReportPath = "README.md"

	DefaultServerAddr      = ":8080"
	DefaultRatePerSecond   = 5.0
	DefaultBurst           = 10
	DefaultShutdownTimeout = 5

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// NewDefaultConfig returns a Config with all fields set to compiled defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Form:   NewDefaultFormDefaults(),
		Engine: NewDefaultEngineSettings(),
		Report: NewDefaultReportSettings(),
		Server: NewDefaultServerConfig(),
		System: NewDefaultSystemConfig(),
	}
}

// NewDefaultFormDefaults returns the initial form values.
func NewDefaultFormDefaults() models.FormDefaults {
	return models.FormDefaults{
		AxialLoad:         DefaultAxialLoad,
		MomentX:           DefaultMomentX,
		MomentY:           DefaultMomentY,
		AllowablePressure: DefaultAllowablePressure,
	}
}

// NewDefaultEngineSettings returns the sizing loop defaults.
func NewDefaultEngineSettings() models.EngineSettings {
	return models.EngineSettings{
		MaxIterations: sizing.DefaultMaxIterations,
		ScaleStep:     sizing.DefaultScaleStep,
	}
}

// NewDefaultReportSettings returns ReportSettings with default values.
// Note: Project and Author are intentionally empty.
func NewDefaultReportSettings() models.ReportSettings {
	return models.ReportSettings{
		Language:    models.DefaultLanguage,
		DefaultPath: DefaultReportPath,
	}
}

// NewDefaultServerConfig returns a ServerConfig with default values.
func NewDefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            DefaultServerAddr,
		RatePerSecond:   DefaultRatePerSecond,
		Burst:           DefaultBurst,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// NewDefaultSystemConfig returns a SystemConfig with default values.
func NewDefaultSystemConfig() SystemConfig {
	return SystemConfig{
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}
