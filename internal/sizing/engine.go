package sizing

import (
	"fmt"
	"math"
)

// Option configures a sizing run.
type Option func(*settings)

type settings struct {
	maxIterations int
	scaleStep     float64
	trace         bool
}

// WithMaxIterations sets the iteration cap. It must be positive.
func WithMaxIterations(n int) Option {
	return func(s *settings) {
		s.maxIterations = n
	}
}

// WithScaleStep sets the multiplicative growth per iteration. It must be
// greater than 1 so that dimensions never shrink.
func WithScaleStep(step float64) Option {
	return func(s *settings) {
		s.scaleStep = step
	}
}

// WithTrace records every evaluated iteration in Result.Trace.
func WithTrace() Option {
	return func(s *settings) {
		s.trace = true
	}
}

func newSettings(opts []Option) (settings, error) {
	s := settings{
		maxIterations: DefaultMaxIterations,
		scaleStep:     DefaultScaleStep,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.maxIterations <= 0 {
		return s, fmt.Errorf("%w: max iterations must be positive (got %d)", ErrInvalidOption, s.maxIterations)
	}
	if !(s.scaleStep > 1) || math.IsInf(s.scaleStep, 0) {
		return s, fmt.Errorf("%w: scale step must be greater than 1 (got %g)", ErrInvalidOption, s.scaleStep)
	}
	return s, nil
}

// Design sizes a square footing for the given loads.
//
// Both plan dimensions start at sqrt(P/q_allow) and are scaled together by
// the scale step until the estimated peak corner pressure is within the
// allowable pressure or the iteration cap is reached. The result is
// returned in both cases; Status tells them apart. Kern checks are
// reported, not enforced.
func Design(in Input, opts ...Option) (*Result, error) {
	b, err := InitialSide(in)
	if err != nil {
		return nil, err
	}
	s, err := newSettings(opts)
	if err != nil {
		return nil, err
	}

	P := in.AxialLoad
	ex := in.MomentX / P
	ey := in.MomentY / P

	bx, by := b, b

	res := &Result{
		Input:         in,
		EccentricityX: ex,
		EccentricityY: ey,
	}
	if s.trace {
		res.Trace = make([]Step, 0, 16)
	}

	var pmax float64
	iter := 0
	for iter < s.maxIterations {
		pmax = peakPressure(P, ex, ey, bx, by)
		if s.trace {
			res.Trace = append(res.Trace, Step{Iteration: iter, Bx: bx, By: by, PeakPressure: pmax})
		}
		if withinAllowable(pmax, in.AllowablePressure) {
			break
		}
		bx *= s.scaleStep
		by *= s.scaleStep
		iter++
	}

	res.Bx = bx
	res.By = by
	res.Area = bx * by
	res.PeakPressure = pmax
	res.Iterations = iter
	res.KernX = KernCheck(ex, bx)
	res.KernY = KernCheck(ey, by)
	res.Status = StatusNotOK
	if withinAllowable(pmax, in.AllowablePressure) {
		res.Status = StatusOK
	}
	return res, nil
}

// InitialSide returns the side of the square footing that carries the
// axial load at uniform allowable pressure, ignoring moments.
func InitialSide(in Input) (float64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	return math.Sqrt(in.AxialLoad / in.AllowablePressure), nil
}

// KernCheck reports whether eccentricity e lies within one sixth of the
// plan dimension side. The boundary is inclusive.
func KernCheck(e, side float64) bool {
	return math.Abs(e) <= side/6
}
