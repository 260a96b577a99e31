// Package sizing sizes isolated square footings under an axial load and
// biaxial bending so that the estimated peak corner soil pressure stays
// within the allowable soil pressure.
//
// Units are not converted anywhere: loads in kN, moments in kN·m and
// pressures in kN/m² yield dimensions in m.
package sizing

import (
	"errors"
	"math"
)

// Engine defaults.
const (
	// DefaultMaxIterations caps the number of scaling steps.
	DefaultMaxIterations = 2000

	// DefaultScaleStep is the multiplicative growth applied to both plan
	// dimensions per iteration (1% growth).
	DefaultScaleStep = 1.01

	// Tolerance is the absolute slack allowed when comparing the peak
	// pressure with the allowable pressure.
	Tolerance = 1e-6
)

// Sentinel errors for sizing operations.
var (
	// ErrInvalidLoad indicates a non-positive axial load. Eccentricity is
	// undefined in that case.
	ErrInvalidLoad = errors.New("sizing: axial load P must be greater than 0 kN")

	// ErrInvalidOption indicates an engine option outside its usable range.
	ErrInvalidOption = errors.New("sizing: invalid engine option")
)

// Status reports whether the sizing loop converged.
type Status string

const (
	// StatusOK means the peak pressure is within the allowable pressure.
	StatusOK Status = "OK"
	// StatusNotOK means the iteration cap was reached without convergence.
	StatusNotOK Status = "NOT_OK"
)

// IsOK reports whether s is StatusOK.
func (s Status) IsOK() bool {
	return s == StatusOK
}

// Input holds the loads and soil capacity for one footing.
type Input struct {
	AxialLoad         float64 `json:"axial_load_kn" yaml:"axial_load_kn"`
	MomentX           float64 `json:"moment_x_knm" yaml:"moment_x_knm"`
	MomentY           float64 `json:"moment_y_knm" yaml:"moment_y_knm"`
	AllowablePressure float64 `json:"allowable_pressure_kn_m2" yaml:"allowable_pressure_kn_m2"`
}

// Validate checks the axial load. The allowable pressure is assumed
// positive and is not checked.
func (in Input) Validate() error {
	if !(in.AxialLoad > 0) {
		return ErrInvalidLoad
	}
	return nil
}

// Step is one evaluated iteration of the sizing loop.
type Step struct {
	Iteration    int     `json:"iteration"`
	Bx           float64 `json:"bx_m"`
	By           float64 `json:"by_m"`
	PeakPressure float64 `json:"p_max_kn_m2"`
}

// Result is the outcome of a sizing run.
type Result struct {
	Input Input `json:"input"`

	EccentricityX float64 `json:"ex_m"`
	EccentricityY float64 `json:"ey_m"`

	Bx   float64 `json:"bx_m"`
	By   float64 `json:"by_m"`
	Area float64 `json:"area_m2"`

	PeakPressure float64 `json:"p_max_kn_m2"`
	Iterations   int     `json:"iterations"`

	// KernX and KernY report whether each eccentricity lies within one
	// sixth of the corresponding plan dimension.
	KernX bool `json:"kern_check_x"`
	KernY bool `json:"kern_check_y"`

	Status Status `json:"status"`

	Trace []Step `json:"trace,omitempty"`
}

// WithinKern reports whether both kern checks hold.
func (r *Result) WithinKern() bool {
	return r.KernX && r.KernY
}

// withinAllowable is the convergence test shared by the loop and the
// final status.
func withinAllowable(peak, allowable float64) bool {
	return peak <= allowable+Tolerance
}

// peakPressure estimates the peak corner pressure under biaxial
// eccentricity with a linear contact pressure distribution. The
// expression is only valid while both eccentricities stay inside the kern.
func peakPressure(load, ex, ey, bx, by float64) float64 {
	uniform := load / (bx * by)
	return uniform * (1 + 6*math.Abs(ex)/bx + 6*math.Abs(ey)/by)
}
