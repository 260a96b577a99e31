package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/geolab/footing/internal/sizing"
)

// DefaultExtension is appended to export paths without an extension.
const DefaultExtension = ".md"

// Format identifies an export document format.
type Format string

const (
	MarkdownFormat Format = "md"
	PDFFormat      Format = "pdf"
	TextFormat     Format = "text"
)

// ResolvePath applies the default extension and reports the format the
// path selects.
func ResolvePath(path string) (string, Format) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case "":
		return path + DefaultExtension, MarkdownFormat
	case ".pdf":
		return path, PDFFormat
	case ".txt":
		return path, TextFormat
	default:
		return path, MarkdownFormat
	}
}

// Encode renders res in the given format.
func Encode(f Format, res *sizing.Result, meta Meta, lang Language) ([]byte, error) {
	if res == nil {
		return nil, ErrNoResult
	}
	switch f {
	case PDFFormat:
		var buf bytes.Buffer
		if err := PDF(&buf, res, meta, lang); err != nil {
			return nil, fmt.Errorf("render pdf: %w", err)
		}
		return buf.Bytes(), nil
	case TextFormat:
		return []byte(FormatText(res, lang) + "\n"), nil
	case MarkdownFormat, "":
		return []byte(Markdown(res, meta, lang)), nil
	default:
		return nil, fmt.Errorf("report: unknown format %q", f)
	}
}

// Export writes the document for res to path and returns the path
// actually written. A path without an extension gets ".md"; ".pdf" writes
// a PDF and ".txt" the text report.
func Export(path string, res *sizing.Result, meta Meta, lang Language) (string, error) {
	if res == nil {
		return "", ErrNoResult
	}
	if strings.TrimSpace(path) == "" {
		return "", ErrEmptyPath
	}

	path, format := ResolvePath(path)
	data, err := Encode(format, res, meta, lang)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", &ExportError{Path: path, Err: err}
	}
	return path, nil
}

// ParseFormat maps a format name ("md", "markdown", "pdf", "text", "txt")
// to a Format. An empty name selects Markdown.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "md", "markdown":
		return MarkdownFormat, nil
	case "pdf":
		return PDFFormat, nil
	case "text", "txt":
		return TextFormat, nil
	}
	return "", fmt.Errorf("report: unknown format %q", name)
}

// ContentType returns the MIME type of documents in format f.
func (f Format) ContentType() string {
	switch f {
	case PDFFormat:
		return "application/pdf"
	case TextFormat:
		return "text/plain; charset=utf-8"
	default:
		return "text/markdown; charset=utf-8"
	}
}
