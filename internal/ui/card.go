package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/geolab/footing/internal/report"
	"github.com/geolab/footing/internal/sizing"
)

// ResultCard renders res as the text report inside a rounded card whose
// border reflects the status.
func ResultCard(theme *Theme, res *sizing.Result, lang report.Language) string {
	body := report.FormatText(res, lang)
	if res == nil {
		return body
	}

	title := "✓ Design OK"
	style := theme.success()
	border := theme.Colors.Success
	if !res.Status.IsOK() {
		title = "✗ Design NOT OK"
		style = theme.failure()
		border = theme.Colors.Error
	}

	var sb strings.Builder
	sb.WriteString(style.Bold(true).Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(body)
	if !res.WithinKern() {
		sb.WriteString("\n")
		sb.WriteString(theme.warning().Render("! Resultant outside the kern; the linear pressure estimate is approximate."))
	}
	sb.WriteString("\n")
	sb.WriteString(theme.muted().Render(fmt.Sprintf("Area %.3f m² after %d iterations", res.Area, res.Iterations)))

	if theme.NoColor {
		return sb.String()
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(0, 1).
		Render(sb.String())
}
