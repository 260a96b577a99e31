// Package ui provides the terminal surface of footing: the input form, the
// compute/save session loop, result cards and batch progress output.
// Every component has a headless fallback used when stdin is not a TTY.
package ui

import (
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Brand colors (dark background variants).
const (
	ColorPrimary   = "#DA7756"
	ColorSecondary = "#7C3AED"
	ColorSuccess   = "#10B981"
	ColorWarning   = "#F59E0B"
	ColorError     = "#EF4444"
	ColorText      = "#E5E7EB"
	ColorMuted     = "#6B7280"
	ColorBorder    = "#4B5563"
)

// Sentinel errors for UI operations.
var (
	// ErrCancelled is returned when the user aborts a form.
	ErrCancelled = errors.New("ui: cancelled by user")

	// ErrHeadlessNoDefaults is returned when a prompt runs headless without
	// any value to fall back to.
	ErrHeadlessNoDefaults = errors.New("ui: headless mode requires default values")

	// ErrNotNumeric is returned when a form field does not hold a number.
	ErrNotNumeric = errors.New("ui: value must be numeric")
)

// Theme holds the colors used by all UI components.
type Theme struct {
	NoColor bool
	Colors  ThemeColors
}

// ThemeColors is the palette of a Theme.
type ThemeColors struct {
	Primary, Secondary, Success, Warning, Error, Text, Muted, Border string
}

// NewTheme returns the default theme. noColor disables all styling.
func NewTheme(noColor bool) *Theme {
	return &Theme{
		NoColor: noColor,
		Colors: ThemeColors{
			Primary:   ColorPrimary,
			Secondary: ColorSecondary,
			Success:   ColorSuccess,
			Warning:   ColorWarning,
			Error:     ColorError,
			Text:      ColorText,
			Muted:     ColorMuted,
			Border:    ColorBorder,
		},
	}
}

func (t *Theme) style(dark, light string) lipgloss.Style {
	if t.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: light, Dark: dark})
}

func (t *Theme) primary() lipgloss.Style { return t.style(t.Colors.Primary, "#C45A3C") }
func (t *Theme) success() lipgloss.Style { return t.style(t.Colors.Success, "#059669") }
func (t *Theme) warning() lipgloss.Style { return t.style(t.Colors.Warning, "#B45309") }
func (t *Theme) failure() lipgloss.Style { return t.style(t.Colors.Error, "#DC2626") }
func (t *Theme) muted() lipgloss.Style   { return t.style(t.Colors.Muted, "#9CA3AF") }

// huhTheme maps the palette onto a huh form theme.
func (t *Theme) huhTheme() *huh.Theme {
	if t.NoColor {
		return huh.ThemeBase()
	}
	h := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: t.Colors.Primary}
	secondary := lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: t.Colors.Secondary}
	green := lipgloss.AdaptiveColor{Light: "#059669", Dark: t.Colors.Success}
	red := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: t.Colors.Error}
	text := lipgloss.AdaptiveColor{Light: "#111827", Dark: t.Colors.Text}
	muted := lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: t.Colors.Muted}
	border := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: t.Colors.Border}

	h.Focused.Base = h.Focused.Base.BorderForeground(border)
	h.Focused.Title = h.Focused.Title.Foreground(primary).Bold(true)
	h.Focused.Description = h.Focused.Description.Foreground(muted)
	h.Focused.ErrorIndicator = h.Focused.ErrorIndicator.Foreground(red)
	h.Focused.ErrorMessage = h.Focused.ErrorMessage.Foreground(red)
	h.Focused.SelectSelector = h.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	h.Focused.Option = h.Focused.Option.Foreground(text)
	h.Focused.SelectedOption = h.Focused.SelectedOption.Foreground(green)
	h.Focused.TextInput.Cursor = h.Focused.TextInput.Cursor.Foreground(primary)
	h.Focused.TextInput.Placeholder = h.Focused.TextInput.Placeholder.Foreground(muted)
	h.Focused.TextInput.Prompt = h.Focused.TextInput.Prompt.Foreground(secondary)
	h.Focused.FocusedButton = h.Focused.FocusedButton.
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
		Background(primary)

	h.Blurred = h.Focused
	h.Blurred.Base = h.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	h.Group.Title = h.Focused.Title
	h.Group.Description = h.Focused.Description
	return h
}
