package ui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/geolab/footing/internal/batch"
	"github.com/geolab/footing/internal/sizing"
	"github.com/geolab/footing/pkg/models"
)

// Field labels, in form order.
const (
	LabelAxialLoad         = "Axial load P (kN)"
	LabelMomentX           = "Moment Mx (kN·m)"
	LabelMomentY           = "Moment My (kN·m)"
	LabelAllowablePressure = "Allowable soil pressure q_allow (kN/m²)"
)

// ParseNumber parses a form field with the same rules as the batch reader.
// A comma that could be digit grouping is rejected. NaN and infinities are
// rejected.
func ParseNumber(s string) (float64, error) {
	v, err := batch.ParseDecimal(s)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	return v, nil
}

// FormValues holds the raw text of the four form fields.
type FormValues struct {
	AxialLoad         string
	MomentX           string
	MomentY           string
	AllowablePressure string
}

// ValuesFrom formats defaults as field text.
func ValuesFrom(d models.FormDefaults) FormValues {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return FormValues{
		AxialLoad:         f(d.AxialLoad),
		MomentX:           f(d.MomentX),
		MomentY:           f(d.MomentY),
		AllowablePressure: f(d.AllowablePressure),
	}
}

// Input parses all fields. The first field that is not numeric is
// reported by label.
func (v FormValues) Input() (sizing.Input, error) {
	var in sizing.Input
	fields := []struct {
		label string
		raw   string
		dst   *float64
	}{
		{LabelAxialLoad, v.AxialLoad, &in.AxialLoad},
		{LabelMomentX, v.MomentX, &in.MomentX},
		{LabelMomentY, v.MomentY, &in.MomentY},
		{LabelAllowablePressure, v.AllowablePressure, &in.AllowablePressure},
	}
	for _, f := range fields {
		n, err := ParseNumber(f.raw)
		if err != nil {
			return sizing.Input{}, fmt.Errorf("%s: %w", f.label, err)
		}
		*f.dst = n
	}
	return in, nil
}

// Form collects the design inputs.
type Form struct {
	theme    *Theme
	headless *HeadlessManager
}

// NewForm creates a Form backed by the given theme and headless manager.
func NewForm(theme *Theme, hm *HeadlessManager) *Form {
	return &Form{theme: theme, headless: hm}
}

// Ask returns the design inputs. In headless mode the stored headless
// defaults overlay defaults without prompting. Interactively, every field
// is validated as it is typed, so a non-numeric value never reaches the
// sizing engine.
func (f *Form) Ask(ctx context.Context, defaults models.FormDefaults) (sizing.Input, error) {
	if err := ctx.Err(); err != nil {
		return sizing.Input{}, err
	}

	if f.headless.IsHeadless() {
		d, err := f.headless.FormDefaults(defaults)
		if err != nil {
			return sizing.Input{}, err
		}
		return ValuesFrom(d).Input()
	}

	vals := ValuesFrom(defaults)
	validate := func(s string) error {
		_, err := ParseNumber(s)
		return err
	}
	field := func(title string, dst *string) *huh.Input {
		return huh.NewInput().
			Title(title).
			Placeholder(*dst).
			Value(dst).
			Validate(validate)
	}

	form := huh.NewForm(huh.NewGroup(
		field(LabelAxialLoad, &vals.AxialLoad),
		field(LabelMomentX, &vals.MomentX),
		field(LabelMomentY, &vals.MomentY),
		field(LabelAllowablePressure, &vals.AllowablePressure),
	).Title("Isolated footing design")).
		WithTheme(f.theme.huhTheme()).
		WithAccessible(false)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return sizing.Input{}, ErrCancelled
		}
		return sizing.Input{}, fmt.Errorf("form error: %w", err)
	}
	return vals.Input()
}
