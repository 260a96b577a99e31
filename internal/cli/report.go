package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/geolab/footing/internal/report"
	"github.com/geolab/footing/pkg/models"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Size a footing and export the design document",
		Long: `Size a footing and export the design document.

The document is written as Markdown unless the output path ends in .pdf
(PDF) or .txt (text report). A path without extension gets ".md".

Examples:
  footing report --load 300 --mx 20 --my 10 --q-allow 150 --out design
  footing report --load 300 --q-allow 150 --out design.pdf --project "Warehouse A"
  footing report --load 300 --q-allow 150 --render`,
		Args: cobra.NoArgs,
		RunE: runReport,
	}
	addInputFlags(cmd)
	cmd.Flags().String("out", "", "Output path (default: report.default_path)")
	cmd.Flags().Bool("render", false, "Print the rendered document instead of writing a file")
	cmd.Flags().String("style", "", "Render style: dark, light, notty, ascii (default: auto)")
	cmd.Flags().Int("width", report.DefaultRenderWidth, "Render word-wrap width")
	cmd.Flags().String("project", "", "Project name (default: report.project)")
	cmd.Flags().String("author", "", "Author (default: report.author)")
	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	res, err := computeDesign(cmd, false)
	if err != nil {
		return err
	}
	lang := languageFor(cmd)
	meta := metaFor(cmd)
	out := cmd.OutOrStdout()

	if getBoolFlag(cmd, "render") {
		width, _ := cmd.Flags().GetInt("width")
		rendered, err := report.Render(report.Markdown(res, meta, lang), width, getStringFlag(cmd, "style"))
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(out, rendered)
		return nil
	}

	path := getStringFlag(cmd, "out")
	if path == "" {
		path = deps.cfg().Report.DefaultPath
	}
	written, err := report.Export(path, res, meta, lang)
	if err != nil {
		return err
	}
	deps.Logger.Info("report exported",
		"path", written, "status", res.Status, "language", models.GetLanguageName(lang.Code()))
	_, _ = fmt.Fprintf(out, "Report written to %s (%s)\n", written, res.Status)
	return nil
}

// metaFor merges the document metadata flags with the report section.
func metaFor(cmd *cobra.Command) report.Meta {
	rs := deps.cfg().Report
	meta := report.Meta{Project: rs.Project, Author: rs.Author, Date: time.Now()}
	if v := getStringFlag(cmd, "project"); v != "" {
		meta.Project = v
	}
	if v := getStringFlag(cmd, "author"); v != "" {
		meta.Author = v
	}
	return meta
}
