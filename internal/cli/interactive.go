package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/geolab/footing/internal/report"
	"github.com/geolab/footing/internal/ui"
)

func newInteractiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"ui"},
		Short:   "Run the compute / save report session",
		Long: `Open the input form, compute designs and save the report of the
last computed design. Without a terminal the session computes once from
the configured defaults and saves to --out when given. --load, --mx, --my
and --q-allow replace the configured form defaults; a comma decimal such
as 12,5 is accepted.`,
		Args: cobra.NoArgs,
		RunE: runInteractive,
	}
	cmd.Flags().String(flagLang, "", "Report language: en or es (default: report.language)")
	cmd.Flags().String("out", "", "Report path used without a terminal")
	cmd.Flags().String(flagLoad, "", "Axial load P (kN)")
	cmd.Flags().String(flagMomentX, "", "Moment Mx (kN·m)")
	cmd.Flags().String(flagMomentY, "", "Moment My (kN·m)")
	cmd.Flags().String(flagAllowable, "", "Allowable soil pressure q_allow (kN/m²)")
	return cmd
}

// sessionDefaultKeys maps input flags to HeadlessManager keys.
var sessionDefaultKeys = map[string]string{
	flagLoad:      ui.KeyAxialLoad,
	flagMomentX:   ui.KeyMomentX,
	flagMomentY:   ui.KeyMomentY,
	flagAllowable: ui.KeyAllowablePressure,
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	cfg := deps.cfg()
	given := make(map[string]string)
	if out := getStringFlag(cmd, "out"); out != "" {
		given[ui.KeyReportPath] = out
	}
	for name, key := range sessionDefaultKeys {
		if cmd.Flags().Changed(name) {
			given[key] = getStringFlag(cmd, name)
		}
	}
	deps.Headless.SetDefaults(given)

	defaults := cfg.Form
	if deps.Headless.HasDefaults() {
		var err error
		if defaults, err = deps.Headless.FormDefaults(cfg.Form); err != nil {
			return err
		}
	}

	session := ui.NewSession(
		ui.NewFormPrompter(deps.Theme, deps.Headless),
		deps.Theme,
		cmd.OutOrStdout(),
		ui.SessionConfig{
			Defaults:   defaults,
			Options:    deps.engineOptions(),
			Language:   languageFor(cmd),
			Meta:       report.Meta{Project: cfg.Report.Project, Author: cfg.Report.Author, Date: time.Now()},
			ReportPath: cfg.Report.DefaultPath,
			Logger:     deps.Logger,
		},
	)
	return session.Run(cmd.Context())
}
