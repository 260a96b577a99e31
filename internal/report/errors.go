// Package report renders sizing results as a plain-text report, a
// Markdown document, a PDF document, or terminal-styled Markdown, and
// exports documents to disk.
package report

import (
	"errors"
	"fmt"
)

// Sentinel errors for report operations.
var (
	// ErrNoResult indicates an export was requested before any design was
	// computed. Nothing is written.
	ErrNoResult = errors.New("report: no design result to export, compute a design first")

	// ErrEmptyPath indicates an export was requested without a file path.
	ErrEmptyPath = errors.New("report: empty export path")
)

// ExportError reports a failure to write a report file.
type ExportError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	return fmt.Sprintf("report: write %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *ExportError) Unwrap() error {
	return e.Err
}
