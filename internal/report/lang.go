package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/geolab/footing/pkg/models"
)

var supportedTags = []language.Tag{language.English, language.Spanish}

var matcher = language.NewMatcher(supportedTags)

// Language selects report wording and number formatting.
type Language struct {
	code    string
	printer *message.Printer
}

// ParseLanguage resolves a BCP 47 tag ("es", "es-MX", "en-GB") to the
// closest supported report language. Unknown or malformed tags fall back
// to English.
func ParseLanguage(tag string) Language {
	t, err := language.Parse(tag)
	if err != nil {
		t = language.English
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No {
		idx = 0
	}
	code := models.SupportedLanguages()[idx]
	return Language{code: code, printer: message.NewPrinter(supportedTags[idx])}
}

// English is the default report language.
func English() Language {
	return ParseLanguage(models.DefaultLanguage)
}

// Code returns the short language code ("en" or "es").
func (l Language) Code() string {
	if l.code == "" {
		return models.DefaultLanguage
	}
	return l.code
}

func (l Language) p() *message.Printer {
	if l.printer == nil {
		return message.NewPrinter(language.English)
	}
	return l.printer
}

func (l Language) sprintf(format string, args ...any) string {
	return l.p().Sprintf(format, args...)
}

func (l Language) words() labels {
	return catalog[l.Code()]
}

func (l Language) yesNo(b bool) string {
	w := l.words()
	if b {
		return w.Yes
	}
	return w.No
}

type labels struct {
	Yes, No string

	// text report
	Load, Moments, Eccentricities, Dimensions, Area  string
	PeakPressure, Allowable, KernCheck, KernX, KernY string
	Status, Iterations                               string

	// document
	Title, DescriptionHeading, Description                       string
	AssumptionsHeading                                           string
	Assumptions                                                  []string
	FormulaIntro                                                 string
	ProjectHeading, Project, Author, Date                        string
	InputsHeading, ResultsHeading, UsageHeading, WarningsHeading string
	Usage, Warnings                                              []string
	Footer                                                       string
}

var catalog = map[string]labels{
	"en": {
		Yes: "yes", No: "no",

		Load:           "Axial load P",
		Moments:        "Moments",
		Eccentricities: "Eccentricities",
		Dimensions:     "Footing dimensions",
		Area:           "Area",
		PeakPressure:   "Estimated peak pressure p_max",
		Allowable:      "Allowable pressure q_allow",
		KernCheck:      "Kern check",
		KernX:          "ex within B/6?",
		KernY:          "ey within B/6?",
		Status:         "Status",
		Iterations:     "iterations",

		Title:              "Basic isolated footing design",
		DescriptionHeading: "Description",
		Description: "Simplified design of an isolated footing under an axial load and moments about two axes. " +
			"The estimated peak corner pressure is checked against the allowable soil pressure.",
		AssumptionsHeading: "Assumptions and method",
		Assumptions: []string{
			"Homogeneous material and linearised contact pressure under the footing.",
			"The footing starts square and both dimensions are scaled together until the peak pressure condition holds.",
			"Eccentricities: ex = Mx/P, ey = My/P.",
			"Approximate criterion used for the corner pressure p_max:",
		},
		FormulaIntro:    "Governing pressure",
		ProjectHeading:  "Project",
		Project:         "Project",
		Author:          "Author",
		Date:            "Date",
		InputsHeading:   "Inputs",
		ResultsHeading:  "Results",
		UsageHeading:    "How to use",
		WarningsHeading: "Warnings",
		Usage: []string{
			"Run `footing design` (or `footing interactive` for the form).",
			"Enter P, Mx, My and q_allow and compute the design.",
			"Review the results and save the report if needed (`footing report --out README.md`).",
		},
		Warnings: []string{
			"This tool is approximate and intended for academic use. Check local codes before a final design.",
			"The peak pressure expression is simplified and only valid while both eccentricities stay within the kern (B/6); use a more rigorous analysis or geotechnical software for complex cases.",
		},
		Footer: "Generated by footing",
	},
	"es": {
		Yes: "sí", No: "no",

		Load:           "Carga axial P",
		Moments:        "Momentos",
		Eccentricities: "Excentricidades",
		Dimensions:     "Dimensiones zapata",
		Area:           "Área",
		PeakPressure:   "Presión máxima estimada p_max",
		Allowable:      "Tensión admisible q_allow",
		KernCheck:      "Comprobación núcleo",
		KernX:          "¿ex dentro de B/6?",
		KernY:          "¿ey dentro de B/6?",
		Status:         "Estado",
		Iterations:     "iteraciones",

		Title:              "Diseño básico de zapata aislada",
		DescriptionHeading: "Descripción",
		Description: "Diseño simplificado de una zapata aislada considerando carga axial y momentos en dos direcciones. " +
			"Se verifica que la presión máxima estimada no exceda la tensión admisible del suelo.",
		AssumptionsHeading: "Supuestos y método",
		Assumptions: []string{
			"Material homogéneo y presión de contacto linealizada bajo la zapata.",
			"Se parte de una zapata cuadrada y, si es necesario, se escalan las dimensiones hasta cumplir la condición de presión máxima.",
			"Excentricidades: ex = Mx/P, ey = My/P.",
			"Criterio aproximado usado para p_max (esquina):",
		},
		FormulaIntro:    "Presión determinante",
		ProjectHeading:  "Proyecto",
		Project:         "Proyecto",
		Author:          "Autor",
		Date:            "Fecha",
		InputsHeading:   "Entradas usadas",
		ResultsHeading:  "Resultados",
		UsageHeading:    "Cómo usar",
		WarningsHeading: "Advertencias",
		Usage: []string{
			"Ejecuta `footing design` (o `footing interactive` para el formulario).",
			"Introduce P, Mx, My y q_allow y calcula el diseño.",
			"Revisa los resultados y guarda el informe si lo deseas (`footing report --out README.md`).",
		},
		Warnings: []string{
			"Esta herramienta es aproximada y destinada a fines académicos. Verifica con normas locales para un diseño definitivo.",
			"El método de presión máxima utilizado es simplificado y solo es válido mientras las excentricidades queden dentro del núcleo (B/6); para casos complejos usar análisis más riguroso o software geotécnico.",
		},
		Footer: "Generado por footing",
	},
}
