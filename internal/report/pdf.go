package report

import (
	"io"
	"strings"

	"github.com/phpdave11/gofpdf"

	"github.com/geolab/footing/internal/sizing"
)

// PDF renders res as an A4 PDF document and writes it to w.
func PDF(w io.Writer, res *sizing.Result, meta Meta, lang Language) error {
	if res == nil {
		return ErrNoResult
	}
	doc := buildDocument(res, meta, lang)

	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; accented words and unit symbols need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(doc.title, true)
	if meta.Author != "" {
		pdf.SetAuthor(meta.Author, true)
	}
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(doc.title))
	pdf.Ln(12)

	for _, s := range doc.sections {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, tr(s.heading))
		pdf.Ln(9)

		pdf.SetFont("Helvetica", "", 11)
		if s.paragraph != "" {
			pdf.MultiCell(0, 6, tr(s.paragraph), "", "L", false)
		}
		if s.formula {
			pdf.SetFont("Courier", "", 11)
			pdf.MultiCell(0, 6, formulaPlain, "", "L", false)
			pdf.SetFont("Helvetica", "", 11)
		}
		for i, item := range s.bullets {
			prefix := "- "
			if s.numbered {
				prefix = lang.sprintf("%d. ", i+1)
			}
			pdf.MultiCell(0, 6, tr(prefix+stripCode(item)), "", "L", false)
		}
		pdf.Ln(3)
	}

	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, tr(doc.footer))

	return pdf.Output(w)
}

// stripCode removes Markdown inline code markers.
func stripCode(s string) string {
	return strings.ReplaceAll(s, "`", "")
}
