package config

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/geolab/footing/pkg/models"
)

// managerState represents the lifecycle state of the ConfigManager.
type managerState int

const (
	stateUninitialized managerState = iota
	stateInitialized
)

// ConfigManager provides thread-safe configuration management.
// It must be initialized via Load() before use.
type ConfigManager struct {
	mu             sync.RWMutex
	config         *Config
	root           string
	state          managerState
	loader         *Loader
	callbacks      []func(Config)
	loadedSections map[string]bool
}

// NewConfigManager creates a new ConfigManager instance in uninitialized state.
func NewConfigManager() *ConfigManager {
	return &ConfigManager{
		loader: NewLoader(),
		state:  stateUninitialized,
	}
}

// ConfigDir returns the configuration directory for a working root.
// FOOTING_CONFIG_DIR overrides it.
func ConfigDir(root string) string {
	if envDir := os.Getenv("FOOTING_CONFIG_DIR"); envDir != "" {
		return filepath.Clean(envDir)
	}
	return filepath.Join(filepath.Clean(root), DirName)
}

// Load reads configuration from the root's .footing/ directory.
// It merges file values with compiled defaults, loads a .env file from
// the root when present, and applies environment variable overrides.
// The configuration is validated before being stored.
func (m *ConfigManager) Load(root string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg, err := m.readLocked(root)
	if err != nil {
		return nil, err
	}

	m.config = cfg
	m.root = root
	m.state = stateInitialized

	return cfg, nil
}

func (m *ConfigManager) readLocked(root string) (*Config, error) {
	cfg, err := m.loader.Load(ConfigDir(root))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	m.loadedSections = m.loader.LoadedSections()

	loadDotEnv(root)
	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Get returns the current in-memory configuration.
// Returns nil if the manager has not been initialized via Load().
func (m *ConfigManager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// LoadedSections reports which sections were present in footing.yaml.
func (m *ConfigManager) LoadedSections() map[string]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]bool, len(m.loadedSections))
	maps.Copy(out, m.loadedSections)
	return out
}

// GetSection returns a named configuration section.
// Returns ErrNotInitialized if Load() has not been called.
// Returns ErrSectionNotFound if the section name is invalid.
func (m *ConfigManager) GetSection(name string) (any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.state == stateUninitialized {
		return nil, ErrNotInitialized
	}

	switch name {
	case "form":
		return m.config.Form, nil
	case "engine":
		return m.config.Engine, nil
	case "report":
		return m.config.Report, nil
	case "server":
		return m.config.Server, nil
	case "system":
		return m.config.System, nil
	default:
		return nil, ErrSectionNotFound
	}
}

// SetSection updates a named configuration section in memory.
// Returns ErrNotInitialized if Load() has not been called.
// Returns ErrSectionNotFound if the section name is invalid.
// Returns ErrSectionTypeMismatch if the value type does not match.
func (m *ConfigManager) SetSection(name string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotInitialized
	}

	switch name {
	case "form":
		v, ok := value.(models.FormDefaults)
		if !ok {
			return fmt.Errorf("%w: expected FormDefaults for section %q", ErrSectionTypeMismatch, name)
		}
		m.config.Form = v
	case "engine":
		v, ok := value.(models.EngineSettings)
		if !ok {
			return fmt.Errorf("%w: expected EngineSettings for section %q", ErrSectionTypeMismatch, name)
		}
		m.config.Engine = v
	case "report":
		v, ok := value.(models.ReportSettings)
		if !ok {
			return fmt.Errorf("%w: expected ReportSettings for section %q", ErrSectionTypeMismatch, name)
		}
		m.config.Report = v
	case "server":
		v, ok := value.(ServerConfig)
		if !ok {
			return fmt.Errorf("%w: expected ServerConfig for section %q", ErrSectionTypeMismatch, name)
		}
		m.config.Server = v
	case "system":
		v, ok := value.(SystemConfig)
		if !ok {
			return fmt.Errorf("%w: expected SystemConfig for section %q", ErrSectionTypeMismatch, name)
		}
		m.config.System = v
	default:
		return ErrSectionNotFound
	}
	return nil
}

// Save validates and persists the current configuration to
// .footing/footing.yaml atomically and returns the file path.
// Returns ErrNotInitialized if Load() has not been called.
func (m *ConfigManager) Save() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return "", ErrNotInitialized
	}
	if err := Validate(m.config); err != nil {
		return "", err
	}

	dir := ConfigDir(m.root)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(m.config)
	if err != nil {
		return "", fmt.Errorf("marshal %s: %w", FileName, err)
	}
	path := filepath.Join(dir, FileName)
	if err := atomicWrite(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// Reload forces a re-read from disk, replacing the in-memory configuration.
// Returns ErrNotInitialized if Load() has not been called.
func (m *ConfigManager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotInitialized
	}

	cfg, err := m.readLocked(m.root)
	if err != nil {
		return fmt.Errorf("reload config: %w", err)
	}
	m.config = cfg

	for _, cb := range m.callbacks {
		cb(*m.config)
	}
	return nil
}

// Watch registers a callback to be invoked when configuration is reloaded.
// Returns ErrNotInitialized if Load() has not been called.
func (m *ConfigManager) Watch(callback func(Config)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotInitialized
	}

	m.callbacks = append(m.callbacks, callback)
	return nil
}

// loadDotEnv loads KEY=VALUE pairs from root/.env into the process
// environment. Variables already set are not overridden.
func loadDotEnv(root string) {
	path := filepath.Join(filepath.Clean(root), EnvFile)
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		slog.Warn("failed to load env file", "path", path, "error", err)
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables have higher priority than file-based values.
func applyEnvOverrides(cfg *Config) {
	if level := os.Getenv("FOOTING_LOG_LEVEL"); level != "" {
		cfg.System.LogLevel = strings.ToLower(level)
	}
	if format := os.Getenv("FOOTING_LOG_FORMAT"); format != "" {
		cfg.System.LogFormat = strings.ToLower(format)
	}
	if noColor := os.Getenv("FOOTING_NO_COLOR"); noColor == "true" || noColor == "1" {
		cfg.System.NoColor = true
	}
	if os.Getenv("NO_COLOR") != "" {
		cfg.System.NoColor = true
	}
	if lang := os.Getenv("FOOTING_LANG"); lang != "" {
		cfg.Report.Language = lang
	}
	if addr := os.Getenv("FOOTING_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if n := os.Getenv("FOOTING_MAX_ITERATIONS"); n != "" {
		if v, err := strconv.Atoi(n); err == nil {
			cfg.Engine.MaxIterations = v
		} else {
			slog.Warn("ignoring invalid FOOTING_MAX_ITERATIONS", "value", n)
		}
	}
}

// atomicWrite writes data to a file atomically using temp file + os.Rename.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".footing-config-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // cleanup on error path

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
