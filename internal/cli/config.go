package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/geolab/footing/internal/config"
	"github.com/geolab/footing/pkg/models"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage .footing/footing.yaml",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to footing.yaml",
		Long: `Write the effective configuration (defaults, file values and
environment overrides) to .footing/footing.yaml. An existing file is kept
unless --force is given. --project, --author and --lang set the report
section before writing.`,
		Args: cobra.NoArgs,
		RunE: runConfigInit,
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing footing.yaml")
	initCmd.Flags().String("project", "", "Project name printed in reports")
	initCmd.Flags().String("author", "", "Author printed in reports")
	initCmd.Flags().String(flagLang, "", "Report language: en or es")

	showCmd := &cobra.Command{
		Use:       "show [section]",
		Short:     "Print the effective configuration as YAML",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: config.SectionNames(),
		RunE:      runConfigShow,
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	root := getStringFlag(cmd, "root")
	if root == "" {
		root = "."
	}
	path := filepath.Join(config.ConfigDir(root), config.FileName)
	if _, err := os.Stat(path); err == nil && !getBoolFlag(cmd, "force") {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	if err := setReportSection(cmd); err != nil {
		return err
	}
	written, err := deps.Config.Save()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", written)
	return nil
}

// setReportSection applies the report flags that were given.
func setReportSection(cmd *cobra.Command) error {
	section, err := deps.Config.GetSection("report")
	if err != nil {
		return err
	}
	rep, ok := section.(models.ReportSettings)
	if !ok {
		return fmt.Errorf("%w: report", config.ErrSectionTypeMismatch)
	}
	changed := false
	for name, dst := range map[string]*string{
		"project": &rep.Project,
		"author":  &rep.Author,
		flagLang:  &rep.Language,
	} {
		if cmd.Flags().Changed(name) {
			*dst = getStringFlag(cmd, name)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return deps.Config.SetSection("report", rep)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	var v any = deps.cfg()
	if len(args) == 1 {
		section, err := deps.Config.GetSection(args[0])
		if err != nil {
			return fmt.Errorf("section %q: %w", args[0], err)
		}
		v = section
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
