// Package cli provides the Cobra command tree and dependency wiring for
// the footing CLI. This file defines the Dependencies struct (Composition
// Root) that wires configuration, logging and the terminal surface.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/geolab/footing/internal/config"
	"github.com/geolab/footing/internal/report"
	"github.com/geolab/footing/internal/sizing"
	"github.com/geolab/footing/internal/ui"
)

// Dependencies holds the services used by CLI commands.
type Dependencies struct {
	Config   *config.ConfigManager
	Theme    *ui.Theme
	Headless *ui.HeadlessManager
	Logger   *slog.Logger
}

// deps is the global dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// InitDependencies creates the dependencies with a no-op logger. Logging,
// theme and headless mode are configured from the loaded configuration
// in the root command's PersistentPreRunE.
func InitDependencies() {
	deps = &Dependencies{
		Config:   config.NewConfigManager(),
		Theme:    ui.NewTheme(false),
		Headless: ui.NewHeadlessManager(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// GetDeps returns the current Dependencies instance.
// Returns nil if InitDependencies has not been called.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}

// configure loads the configuration under root and applies it.
func (d *Dependencies) configure(root string, stderr io.Writer, noColor, nonInteractive bool) (*config.Config, error) {
	cfg, err := d.Config.Load(root)
	if err != nil {
		return nil, err
	}

	d.Logger = newLogger(cfg.System, stderr)
	slog.SetDefault(d.Logger)

	d.Theme = ui.NewTheme(noColor || cfg.System.NoColor)
	if nonInteractive || cfg.System.NonInteractive {
		d.Headless.ForceHeadless(true)
	} else {
		d.Headless.ClearForce()
	}
	d.Logger.Debug("prompt mode", "mode", d.Headless.Mode())
	return cfg, nil
}

// cfg returns the loaded configuration, or compiled defaults when nothing
// has been loaded.
func (d *Dependencies) cfg() *config.Config {
	if c := d.Config.Get(); c != nil {
		return c
	}
	return config.NewDefaultConfig()
}

// engineOptions converts the engine section to sizing options.
func (d *Dependencies) engineOptions() []sizing.Option {
	e := d.cfg().Engine
	return []sizing.Option{
		sizing.WithMaxIterations(e.MaxIterations),
		sizing.WithScaleStep(e.ScaleStep),
	}
}

// language returns the configured report language.
func (d *Dependencies) language() report.Language {
	return report.ParseLanguage(d.cfg().Report.Language)
}

// newLogger builds the process logger from the system section.
func newLogger(sys config.SystemConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(sys.LogLevel)}
	if strings.EqualFold(sys.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// requireDeps guards commands against running without InitDependencies.
func requireDeps() error {
	if deps == nil {
		return fmt.Errorf("dependencies not initialized")
	}
	return nil
}
