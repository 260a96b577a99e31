package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geolab/footing/internal/batch"
	"github.com/geolab/footing/internal/ui"
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch INPUT.xlsx",
		Short: "Size every row of a spreadsheet",
		Long: `Size every row of an .xlsx workbook and write a results workbook.

The first sheet is read; its first row is a header. Columns are
P, Mx, My, q_allow with an optional leading label column. Rows that fail
to parse or size are reported in the error column and do not stop the run.`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}
	cmd.Flags().String("out", "", "Results workbook (default: INPUT-results.xlsx)")
	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	in := args[0]
	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("open %s: %w", in, err)
	}
	rows, err := batch.ReadWorkbook(f)
	_ = f.Close()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	bar := ui.NewProgressBar(deps.Theme, deps.Headless, "Sizing footings", out)
	outcomes, runErr := batch.Run(cmd.Context(), rows, deps.engineOptions(), ui.BatchProgress(bar))
	bar.Done()

	path := getStringFlag(cmd, "out")
	if path == "" {
		path = strings.TrimSuffix(in, filepath.Ext(in)) + "-results.xlsx"
	}
	if err := writeWorkbookFile(path, outcomes); err != nil {
		return err
	}

	sum := batch.Summarize(outcomes)
	deps.Logger.Info("batch finished",
		"rows", sum.Total, "ok", sum.OK, "not_ok", sum.NotOK, "failed", sum.Failed, "out", path)
	_, _ = fmt.Fprintf(out, "%d rows: %d OK, %d NOT_OK, %d failed. Results written to %s\n",
		sum.Total, sum.OK, sum.NotOK, sum.Failed, path)
	return runErr
}

func writeWorkbookFile(path string, outcomes []batch.Outcome) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return batch.WriteWorkbook(f, outcomes)
}
