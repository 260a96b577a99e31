package report

import (
	"strings"
	"time"

	"github.com/geolab/footing/internal/sizing"
)

// Meta carries document metadata. Empty fields are omitted.
type Meta struct {
	Project string
	Author  string
	Date    time.Time
}

func (m Meta) empty() bool {
	return m.Project == "" && m.Author == "" && m.Date.IsZero()
}

const (
	formulaTeX   = `p_{max} = \frac{P}{A} \left(1 + 6 \frac{|e_x|}{B_x} + 6 \frac{|e_y|}{B_y} \right)`
	formulaPlain = "p_max = (P / A) * (1 + 6 |ex| / Bx + 6 |ey| / By)"
)

type section struct {
	heading   string
	paragraph string
	bullets   []string
	numbered  bool
	formula   bool
}

type document struct {
	title    string
	sections []section
	footer   string
}

// buildDocument assembles the document shared by the Markdown and PDF
// renderers.
func buildDocument(res *sizing.Result, meta Meta, lang Language) document {
	w := lang.words()
	in := res.Input

	doc := document{title: w.Title, footer: w.Footer}

	doc.sections = append(doc.sections,
		section{heading: w.DescriptionHeading, paragraph: w.Description},
		section{heading: w.AssumptionsHeading, bullets: w.Assumptions},
		section{heading: w.FormulaIntro, formula: true},
	)

	if !meta.empty() {
		var items []string
		if meta.Project != "" {
			items = append(items, w.Project+": "+meta.Project)
		}
		if meta.Author != "" {
			items = append(items, w.Author+": "+meta.Author)
		}
		if !meta.Date.IsZero() {
			items = append(items, w.Date+": "+meta.Date.Format("2006-01-02"))
		}
		doc.sections = append(doc.sections, section{heading: w.ProjectHeading, bullets: items})
	}

	doc.sections = append(doc.sections,
		section{heading: w.InputsHeading, bullets: []string{
			lang.sprintf("P = %.2f kN", in.AxialLoad),
			lang.sprintf("Mx = %.2f kN·m", in.MomentX),
			lang.sprintf("My = %.2f kN·m", in.MomentY),
			lang.sprintf("q_allow = %.2f kN/m^2", in.AllowablePressure),
		}},
		section{heading: w.ResultsHeading, bullets: []string{
			lang.sprintf("ex = %.4f m, ey = %.4f m", res.EccentricityX, res.EccentricityY),
			lang.sprintf("Bx = %.3f m", res.Bx),
			lang.sprintf("By = %.3f m", res.By),
			lang.sprintf("%s = %.3f m^2", w.Area, res.Area),
			lang.sprintf("%s = %.2f kN/m^2", w.PeakPressure, res.PeakPressure),
			lang.sprintf("%s: %s %s, %s %s", w.KernCheck, w.KernX, lang.yesNo(res.KernX), w.KernY, lang.yesNo(res.KernY)),
			lang.sprintf("%s: %s (%s = %d)", w.Status, string(res.Status), w.Iterations, res.Iterations),
		}},
		section{heading: w.UsageHeading, bullets: w.Usage, numbered: true},
		section{heading: w.WarningsHeading, bullets: w.Warnings},
	)
	return doc
}

// Markdown renders res as a Markdown document.
func Markdown(res *sizing.Result, meta Meta, lang Language) string {
	if res == nil {
		return ""
	}
	doc := buildDocument(res, meta, lang)

	var b strings.Builder
	b.WriteString("# " + doc.title + "\n")
	for _, s := range doc.sections {
		b.WriteString("\n## " + s.heading + "\n\n")
		if s.paragraph != "" {
			b.WriteString(s.paragraph + "\n")
		}
		if s.formula {
			b.WriteString("```math\n" + formulaTeX + "\n```\n")
		}
		for i, item := range s.bullets {
			if s.numbered {
				b.WriteString(lang.sprintf("%d. %s\n", i+1, item))
				continue
			}
			b.WriteString("- " + item + "\n")
		}
	}
	b.WriteString("\n---\n\n" + doc.footer + "\n")
	return b.String()
}
