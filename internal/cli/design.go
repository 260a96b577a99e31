package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geolab/footing/internal/report"
	"github.com/geolab/footing/internal/sizing"
)

func newDesignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "design",
		Short: "Size a footing and print the text report",
		Long: `Size a square isolated footing and print the text report.

Inputs missing from the flags are taken from the form defaults in
.footing/footing.yaml; on an interactive terminal the input form opens
prefilled with them instead.

Examples:
  footing design --load 300 --mx 20 --my 10 --q-allow 150
  footing design --load 300 --mx 20 --my 10 --q-allow 150 --json
  footing design --load 300 --q-allow 150 --trace --lang es`,
		Args: cobra.NoArgs,
		RunE: runDesign,
	}
	addInputFlags(cmd)
	cmd.Flags().Bool("trace", false, "Print every iteration of the sizing loop")
	cmd.Flags().Bool("json", false, "Print the result as JSON")
	return cmd
}

func runDesign(cmd *cobra.Command, _ []string) error {
	res, err := computeDesign(cmd, getBoolFlag(cmd, "trace"))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if getBoolFlag(cmd, "json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	lang := languageFor(cmd)
	_, _ = fmt.Fprintln(out, report.FormatText(res, lang))
	if trace := report.FormatTrace(res, lang); trace != "" {
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprint(out, trace)
	}
	return nil
}

// computeDesign resolves inputs and options from cmd and runs the engine.
func computeDesign(cmd *cobra.Command, trace bool) (*sizing.Result, error) {
	in, err := resolveInput(cmd.Context(), cmd)
	if err != nil {
		return nil, err
	}
	opts := engineOptions(cmd)
	if trace {
		opts = append(opts, sizing.WithTrace())
	}
	res, err := sizing.Design(in, opts...)
	if err != nil {
		return nil, err
	}
	deps.Logger.Debug("design computed",
		"status", res.Status, "iterations", res.Iterations, "bx", res.Bx, "by", res.By)
	return res, nil
}
