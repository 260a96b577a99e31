// Package batch sizes many footings from a spreadsheet and writes the
// results back as a workbook.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/geolab/footing/internal/sizing"
)

// Sentinel errors for batch operations.
var (
	// ErrEmptySheet indicates the workbook has no data rows.
	ErrEmptySheet = errors.New("batch: sheet has no data rows")

	// ErrBadRow indicates a row that could not be parsed.
	ErrBadRow = errors.New("batch: bad row")
)

// ResultSheet is the sheet name used by WriteWorkbook.
const ResultSheet = "Sheet1"

// Row is one spreadsheet row. Err is set when the row could not be
// parsed; Input is then the zero value.
type Row struct {
	Line  int
	Label string
	Input sizing.Input
	Err   error
}

// Outcome pairs a row with its sizing result or error.
type Outcome struct {
	Row    Row
	Result *sizing.Result
	Err    error
}

// ProgressFunc is called after each row is processed.
type ProgressFunc func(done, total int)

// ReadWorkbook reads the first sheet of an .xlsx workbook. The first row is
// a header and is skipped. Columns are P, Mx, My, q_allow; when the first
// cell of a row is not a number it is taken as a label and the numeric
// columns shift right by one. Blank rows are skipped.
func ReadWorkbook(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	out := make([]Row, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		out = append(out, parseRow(i+1, rows[i]))
	}
	if len(out) == 0 {
		return nil, ErrEmptySheet
	}
	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseRow expects: [label,] P, Mx, My, q_allow.
func parseRow(line int, row []string) Row {
	r := Row{Line: line}
	cells := row
	if len(cells) > 0 {
		if _, err := ParseDecimal(cells[0]); err != nil {
			r.Label = strings.TrimSpace(cells[0])
			cells = cells[1:]
		}
	}
	if len(cells) < 4 {
		r.Err = fmt.Errorf("%w %d: expected 4 numeric columns (P, Mx, My, q_allow), got %d", ErrBadRow, line, len(cells))
		return r
	}

	vals := make([]float64, 4)
	names := []string{"P", "Mx", "My", "q_allow"}
	for i := range vals {
		v, err := ParseDecimal(cells[i])
		if err != nil {
			r.Err = fmt.Errorf("%w %d: column %s: %q is not a number", ErrBadRow, line, names[i], cells[i])
			return r
		}
		vals[i] = v
	}
	r.Input = sizing.Input{AxialLoad: vals[0], MomentX: vals[1], MomentY: vals[2], AllowablePressure: vals[3]}
	return r
}

// ParseDecimal parses s with either "." or "," as decimal separator. A
// comma is read as a decimal point only when it has no other reading: the
// text must hold no dot, a single comma, and the comma must not be followed
// by exactly three digits ("1,500" is digit grouping, not 1.5).
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		if strings.Contains(s, ".") || strings.Count(s, ",") > 1 || grouped(s[i+1:]) {
			return 0, strconv.ErrSyntax
		}
		s = s[:i] + "." + s[i+1:]
	}
	return strconv.ParseFloat(s, 64)
}

func grouped(frac string) bool {
	if len(frac) != 3 {
		return false
	}
	for _, c := range frac {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Run sizes every row. Row parse errors and engine errors are recorded in
// the outcome and do not stop the batch. Cancellation stops the batch
// between rows and returns the outcomes so far with ctx.Err().
func Run(ctx context.Context, rows []Row, opts []sizing.Option, progress ProgressFunc) ([]Outcome, error) {
	out := make([]Outcome, 0, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		o := Outcome{Row: row}
		if row.Err != nil {
			o.Err = row.Err
		} else {
			o.Result, o.Err = sizing.Design(row.Input, opts...)
		}
		out = append(out, o)
		if progress != nil {
			progress(i+1, len(rows))
		}
	}
	return out, nil
}

// Summary counts outcomes by status.
type Summary struct {
	Total, OK, NotOK, Failed int
}

// Summarize counts outcomes by status.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			s.Failed++
		case o.Result.Status.IsOK():
			s.OK++
		default:
			s.NotOK++
		}
	}
	return s
}

var resultHeader = []any{
	"line", "label", "P_kN", "Mx_kNm", "My_kNm", "q_allow_kN_m2",
	"ex_m", "ey_m", "Bx_m", "By_m", "Area_m2", "p_max_kN_m2",
	"iterations", "kern_check_x", "kern_check_y", "status", "error",
}

// WriteWorkbook writes one result row per outcome to w as an .xlsx
// workbook.
func WriteWorkbook(w io.Writer, outcomes []Outcome) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetRow(ResultSheet, "A1", &resultHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, o := range outcomes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := outcomeRow(o)
		if err := f.SetSheetRow(ResultSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// NonFiniteNote is written to the error column when a result holds NaN or
// an infinity; those cells are left empty.
const NonFiniteNote = "non-finite result (check q_allow > 0)"

func outcomeRow(o Outcome) []any {
	in := o.Row.Input
	row := []any{o.Row.Line, o.Row.Label, cellValue(in.AxialLoad), cellValue(in.MomentX), cellValue(in.MomentY), cellValue(in.AllowablePressure)}
	if o.Err != nil || o.Result == nil {
		msg := ""
		if o.Err != nil {
			msg = o.Err.Error()
		}
		return append(row, nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, msg)
	}
	r := o.Result
	note := ""
	values := []float64{r.EccentricityX, r.EccentricityY, r.Bx, r.By, r.Area, r.PeakPressure}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			note = NonFiniteNote
		}
		row = append(row, cellValue(v))
	}
	return append(row, r.Iterations, r.KernX, r.KernY, string(r.Status), note)
}

// cellValue maps NaN and infinities to an empty cell.
func cellValue(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
