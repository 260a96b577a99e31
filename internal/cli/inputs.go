package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/geolab/footing/internal/report"
	"github.com/geolab/footing/internal/sizing"
	"github.com/geolab/footing/internal/ui"
	"github.com/geolab/footing/pkg/models"
)

// Flag names shared by design and report.
const (
	flagLoad      = "load"
	flagMomentX   = "mx"
	flagMomentY   = "my"
	flagAllowable = "q-allow"
	flagMaxIter   = "max-iter"
	flagScaleStep = "scale-step"
	flagLang      = "lang"
)

var inputFlags = []string{flagLoad, flagMomentX, flagMomentY, flagAllowable}

// addInputFlags registers the design input and engine tuning flags.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().Float64(flagLoad, 0, "Axial load P (kN)")
	cmd.Flags().Float64(flagMomentX, 0, "Moment Mx (kN·m)")
	cmd.Flags().Float64(flagMomentY, 0, "Moment My (kN·m)")
	cmd.Flags().Float64(flagAllowable, 0, "Allowable soil pressure q_allow (kN/m²)")
	cmd.Flags().Int(flagMaxIter, 0, "Iteration cap (default: engine.max_iterations)")
	cmd.Flags().Float64(flagScaleStep, 0, "Per-iteration growth factor (default: engine.scale_step)")
	cmd.Flags().String(flagLang, "", "Report language: en or es (default: report.language)")
}

// resolveInput assembles the design input. Flags that were set win; the
// rest come from the configured form defaults. When any input flag is
// missing and the terminal is interactive, the form opens prefilled with
// the merged values.
func resolveInput(ctx context.Context, cmd *cobra.Command) (sizing.Input, error) {
	merged := deps.cfg().Form
	fields := map[string]*float64{
		flagLoad:      &merged.AxialLoad,
		flagMomentX:   &merged.MomentX,
		flagMomentY:   &merged.MomentY,
		flagAllowable: &merged.AllowablePressure,
	}
	missing := false
	for _, name := range inputFlags {
		if !cmd.Flags().Changed(name) {
			missing = true
			continue
		}
		v, err := cmd.Flags().GetFloat64(name)
		if err != nil {
			return sizing.Input{}, err
		}
		*fields[name] = v
	}

	if missing && !deps.Headless.IsHeadless() {
		return ui.NewForm(deps.Theme, deps.Headless).Ask(ctx, merged)
	}
	return inputFrom(merged), nil
}

func inputFrom(d models.FormDefaults) sizing.Input {
	return sizing.Input{
		AxialLoad:         d.AxialLoad,
		MomentX:           d.MomentX,
		MomentY:           d.MomentY,
		AllowablePressure: d.AllowablePressure,
	}
}

// engineOptions returns the configured engine options overridden by the
// tuning flags.
func engineOptions(cmd *cobra.Command) []sizing.Option {
	opts := deps.engineOptions()
	if cmd.Flags().Changed(flagMaxIter) {
		n, _ := cmd.Flags().GetInt(flagMaxIter)
		opts = append(opts, sizing.WithMaxIterations(n))
	}
	if cmd.Flags().Changed(flagScaleStep) {
		s, _ := cmd.Flags().GetFloat64(flagScaleStep)
		opts = append(opts, sizing.WithScaleStep(s))
	}
	return opts
}

// languageFor returns the --lang language, or the configured one.
func languageFor(cmd *cobra.Command) report.Language {
	if tag := getStringFlag(cmd, flagLang); tag != "" {
		return report.ParseLanguage(tag)
	}
	return deps.language()
}
