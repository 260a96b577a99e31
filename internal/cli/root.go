package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/geolab/footing/pkg/version"
)

// NewRootCmd builds the footing command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "footing",
		Short: "Isolated footing sizing under axial load and biaxial moments",
		Long: `footing sizes a square isolated footing for an axial load P and
bending moments Mx, My so that the peak corner soil pressure stays within
the allowable soil pressure.

It prints a text report, exports a Markdown or PDF design document, runs
spreadsheet batches and serves the calculation over HTTP.`,
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireDeps(); err != nil {
				return err
			}
			dir := getStringFlag(cmd, "root")
			if dir == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("get working directory: %w", err)
				}
				dir = cwd
			}
			_, err := deps.configure(dir, cmd.ErrOrStderr(),
				getBoolFlag(cmd, "no-color"), getBoolFlag(cmd, "non-interactive"))
			return err
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("footing %s\n", version.GetFullVersion()))

	root.PersistentFlags().String("root", "", "Working directory holding .footing/ (default: current directory)")
	root.PersistentFlags().Bool("no-color", false, "Disable colored output")
	root.PersistentFlags().Bool("non-interactive", false, "Never open forms; use flags and configured defaults")

	root.AddCommand(
		newDesignCmd(),
		newReportCmd(),
		newInteractiveCmd(),
		newBatchCmd(),
		newServeCmd(),
		newConfigCmd(),
	)
	return root
}

// Execute initializes dependencies and runs the root command.
func Execute() error {
	InitDependencies()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}
