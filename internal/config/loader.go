package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

// Loader decodes footing.yaml over the compiled defaults and remembers
// which top-level sections the file defined.
type Loader struct {
	mu       sync.RWMutex
	sections map[string]bool
}

// NewLoader creates a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads footing.yaml from configDir. A missing or empty file yields
// the defaults; undecodable YAML is a *ParseError. Unknown sections are
// logged and ignored.
func (l *Loader) Load(configDir string) (*Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sections = map[string]bool{}
	cfg := NewDefaultConfig()
	path := filepath.Join(filepath.Clean(configDir), FileName)

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Warn("config file not found, using defaults", "path", path)
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if len(doc.Content) == 0 {
		return cfg, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("line %d: top level must be a mapping of sections", root.Line)}
	}
	known := SectionNames()
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i]
		if !slices.Contains(known, key.Value) {
			slog.Warn("ignoring unknown config section", "path", path, "section", key.Value, "line", key.Line)
			continue
		}
		l.sections[key.Value] = true
	}

	if err := root.Decode(cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return cfg, nil
}

// LoadedSections returns the sections present in the last loaded file.
func (l *Loader) LoadedSections() map[string]bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(map[string]bool, len(l.sections))
	maps.Copy(out, l.sections)
	return out
}
