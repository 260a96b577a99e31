package report

import (
	"strings"

	"github.com/geolab/footing/internal/sizing"
)

// FormatText renders res as the fixed multi-line text report.
func FormatText(res *sizing.Result, lang Language) string {
	if res == nil {
		return ""
	}
	w := lang.words()
	in := res.Input

	lines := []string{
		lang.sprintf("%s = %.2f kN", w.Load, in.AxialLoad),
		lang.sprintf("%s Mx = %.2f kN·m, My = %.2f kN·m", w.Moments, in.MomentX, in.MomentY),
		lang.sprintf("%s: ex = %.4f m, ey = %.4f m", w.Eccentricities, res.EccentricityX, res.EccentricityY),
		lang.sprintf("%s: Bx = %.3f m, By = %.3f m", w.Dimensions, res.Bx, res.By),
		lang.sprintf("%s = %.3f m^2", w.Area, res.Area),
		lang.sprintf("%s = %.2f kN/m^2", w.PeakPressure, res.PeakPressure),
		lang.sprintf("%s = %.2f kN/m^2", w.Allowable, in.AllowablePressure),
		lang.sprintf("%s: %s %s, %s %s", w.KernCheck, w.KernX, lang.yesNo(res.KernX), w.KernY, lang.yesNo(res.KernY)),
		lang.sprintf("%s: %s (%s = %d)", w.Status, string(res.Status), w.Iterations, res.Iterations),
	}
	return strings.Join(lines, "\n")
}

// FormatTrace renders the recorded iterations of res as a table, one
// iteration per line. It returns an empty string when no trace was
// recorded.
func FormatTrace(res *sizing.Result, lang Language) string {
	if res == nil || len(res.Trace) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(lang.sprintf("%5s  %9s  %9s  %12s\n", "#", "Bx (m)", "By (m)", "p_max"))
	for _, s := range res.Trace {
		b.WriteString(lang.sprintf("%5d  %9.4f  %9.4f  %12.3f\n", s.Iteration, s.Bx, s.By, s.PeakPressure))
	}
	return b.String()
}
