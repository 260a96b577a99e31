package ui

import (
	"fmt"
	"maps"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/geolab/footing/pkg/models"
)

// Keys understood by HeadlessManager.FormDefaults.
const (
	KeyAxialLoad         = "axial_load_kn"
	KeyMomentX           = "moment_x_knm"
	KeyMomentY           = "moment_y_knm"
	KeyAllowablePressure = "allowable_pressure_kn_m2"
	KeyReportPath        = "report_path"
)

// Mode selects how prompts behave.
type Mode int

const (
	// ModeAuto prompts only when stdin is a terminal.
	ModeAuto Mode = iota
	// ModeHeadless never prompts.
	ModeHeadless
	// ModeInteractive always prompts.
	ModeInteractive
)

func (m Mode) String() string {
	switch m {
	case ModeHeadless:
		return "headless"
	case ModeInteractive:
		return "interactive"
	}
	return "auto"
}

// HeadlessManager decides whether prompts may run and holds the string
// defaults used instead of prompting.
type HeadlessManager struct {
	mode     Mode
	terminal func() bool
	defaults map[string]string
}

// NewHeadlessManager creates a HeadlessManager in ModeAuto that checks
// os.Stdin.
func NewHeadlessManager() *HeadlessManager {
	return &HeadlessManager{terminal: stdinIsTerminal}
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsHeadless reports whether prompts must be skipped.
func (h *HeadlessManager) IsHeadless() bool {
	switch h.mode {
	case ModeHeadless:
		return true
	case ModeInteractive:
		return false
	}
	return h.terminal == nil || !h.terminal()
}

// Mode returns the configured mode.
func (h *HeadlessManager) Mode() Mode {
	return h.mode
}

// ForceHeadless pins the mode: true never prompts, false always prompts.
func (h *HeadlessManager) ForceHeadless(force bool) {
	if force {
		h.mode = ModeHeadless
		return
	}
	h.mode = ModeInteractive
}

// ClearForce returns to ModeAuto.
func (h *HeadlessManager) ClearForce() {
	h.mode = ModeAuto
}

// SetDefaults replaces the stored defaults, keyed by the Key* constants.
// The map is copied.
func (h *HeadlessManager) SetDefaults(defaults map[string]string) {
	h.defaults = maps.Clone(defaults)
	if len(h.defaults) == 0 {
		h.defaults = nil
	}
}

// GetDefault looks up a stored default.
func (h *HeadlessManager) GetDefault(key string) (string, bool) {
	v, ok := h.defaults[key]
	return v, ok
}

// HasDefaults reports whether any default is stored.
func (h *HeadlessManager) HasDefaults() bool {
	return len(h.defaults) > 0
}

// FormDefaults overlays stored string defaults on base. A stored value that
// is not a number is a parse error.
func (h *HeadlessManager) FormDefaults(base models.FormDefaults) (models.FormDefaults, error) {
	out := base
	fields := []struct {
		key string
		dst *float64
	}{
		{KeyAxialLoad, &out.AxialLoad},
		{KeyMomentX, &out.MomentX},
		{KeyMomentY, &out.MomentY},
		{KeyAllowablePressure, &out.AllowablePressure},
	}
	for _, f := range fields {
		v, ok := h.GetDefault(f.key)
		if !ok {
			continue
		}
		n, err := ParseNumber(v)
		if err != nil {
			return base, fmt.Errorf("default %s: %w", f.key, err)
		}
		*f.dst = n
	}
	return out, nil
}
