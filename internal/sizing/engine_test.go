package sizing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesign_RejectsNonPositiveLoad(t *testing.T) {
	t.Parallel()

	loads := []float64{0, -1, -300, -1e9, math.NaN()}
	others := []Input{
		{MomentX: 20, MomentY: 10, AllowablePressure: 150},
		{MomentX: 0, MomentY: 0, AllowablePressure: 1},
		{MomentX: -500, MomentY: 500, AllowablePressure: 0},
		{AllowablePressure: -10},
	}

	for _, p := range loads {
		for _, o := range others {
			in := o
			in.AxialLoad = p
			res, err := Design(in)
			assert.ErrorIs(t, err, ErrInvalidLoad, "load %v", p)
			assert.Nil(t, res)
		}
	}
}

func TestDesign_ZeroMomentsConvergeImmediately(t *testing.T) {
	t.Parallel()

	cases := []struct {
		load, q float64
	}{
		{300, 150},
		{1, 1},
		{1000, 75},
		{12.5, 300},
		{4500, 250},
		{0.001, 1000},
	}

	for _, tc := range cases {
		res, err := Design(Input{AxialLoad: tc.load, AllowablePressure: tc.q})
		require.NoError(t, err)

		b := math.Sqrt(tc.load / tc.q)
		uniform := tc.load / (b * b)

		assert.Equal(t, 0.0, res.EccentricityX)
		assert.Equal(t, 0.0, res.EccentricityY)
		assert.Equal(t, 0, res.Iterations)
		assert.Equal(t, b, res.Bx)
		assert.Equal(t, b, res.By)
		assert.Equal(t, uniform, res.PeakPressure, "peak must equal uniform pressure")
		assert.Equal(t, StatusOK, res.Status)
		assert.True(t, res.KernX)
		assert.True(t, res.KernY)
	}
}

func TestDesign_TypicalColumnScenario(t *testing.T) {
	t.Parallel()

	in := Input{AxialLoad: 300, MomentX: 20, MomentY: 10, AllowablePressure: 150}
	side, err := InitialSide(in)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, side, 1e-12)

	res, err := Design(in)
	require.NoError(t, err)

	assert.InDelta(t, 0.0667, res.EccentricityX, 1e-4)
	assert.InDelta(t, 0.0333, res.EccentricityY, 1e-4)
	assert.Equal(t, StatusOK, res.Status)
	assert.True(t, res.KernX)
	assert.True(t, res.KernY)
	assert.Greater(t, res.Iterations, 0)
	assert.Less(t, res.Iterations, 50)
	assert.Greater(t, res.Bx, side)
	assert.Equal(t, res.Bx, res.By)
	assert.InDelta(t, res.Bx*res.By, res.Area, 1e-12)
	assert.LessOrEqual(t, res.PeakPressure, in.AllowablePressure+Tolerance)
}

func TestDesign_LargeEccentricityStillTerminates(t *testing.T) {
	t.Parallel()

	in := Input{AxialLoad: 100, MomentX: 500, MomentY: 0, AllowablePressure: 100}
	res, err := Design(in)
	require.NoError(t, err)

	assert.Equal(t, 5.0, res.EccentricityX)
	assert.False(t, res.KernX, "ex=5 m cannot sit inside the kern of a ~3 m footing")
	assert.True(t, res.KernY)
	assert.LessOrEqual(t, res.Iterations, DefaultMaxIterations)
	assert.Contains(t, []Status{StatusOK, StatusNotOK}, res.Status)
}

func TestDesign_IterationCap(t *testing.T) {
	t.Parallel()

	in := Input{AxialLoad: 100, MomentX: 500, MomentY: 0, AllowablePressure: 100}
	res, err := Design(in, WithMaxIterations(10), WithTrace())
	require.NoError(t, err)

	assert.Equal(t, StatusNotOK, res.Status)
	assert.Equal(t, 10, res.Iterations)
	assert.Len(t, res.Trace, 10)
	assert.Greater(t, res.PeakPressure, in.AllowablePressure)

	last := res.Trace[len(res.Trace)-1]
	assert.Equal(t, last.PeakPressure, res.PeakPressure)
	assert.InDelta(t, last.Bx*DefaultScaleStep, res.Bx, 1e-12)
}

func TestDesign_NeverExceedsCap(t *testing.T) {
	t.Parallel()

	for _, n := range []int{1, 2, 7, 50} {
		res, err := Design(Input{AxialLoad: 10, MomentX: 1e6, MomentY: -1e6, AllowablePressure: 5}, WithMaxIterations(n))
		require.NoError(t, err)
		assert.Equal(t, n, res.Iterations)
		assert.Equal(t, StatusNotOK, res.Status)
	}
}

func TestDesign_MonotonicTrace(t *testing.T) {
	t.Parallel()

	inputs := []Input{
		{AxialLoad: 300, MomentX: 20, MomentY: 10, AllowablePressure: 150},
		{AxialLoad: 100, MomentX: 500, MomentY: 0, AllowablePressure: 100},
		{AxialLoad: 850, MomentX: -120, MomentY: 95, AllowablePressure: 200},
		{AxialLoad: 40, MomentX: 3, MomentY: -60, AllowablePressure: 80},
	}

	for _, in := range inputs {
		res, err := Design(in, WithTrace())
		require.NoError(t, err)
		require.NotEmpty(t, res.Trace)

		for i := 1; i < len(res.Trace); i++ {
			prev, cur := res.Trace[i-1], res.Trace[i]
			assert.Equal(t, prev.Iteration+1, cur.Iteration)
			assert.GreaterOrEqual(t, cur.Bx, prev.Bx)
			assert.GreaterOrEqual(t, cur.By, prev.By)
			assert.LessOrEqual(t, cur.PeakPressure, prev.PeakPressure)
		}
		assert.GreaterOrEqual(t, res.Bx, res.Trace[len(res.Trace)-1].Bx)
	}
}

func TestDesign_Idempotent(t *testing.T) {
	t.Parallel()

	in := Input{AxialLoad: 612.4, MomentX: 41.7, MomentY: -18.2, AllowablePressure: 180}
	a, err := Design(in, WithTrace())
	require.NoError(t, err)
	b, err := Design(in, WithTrace())
	require.NoError(t, err)

	assert.Equal(t, math.Float64bits(a.Bx), math.Float64bits(b.Bx))
	assert.Equal(t, math.Float64bits(a.PeakPressure), math.Float64bits(b.PeakPressure))
	assert.Equal(t, a, b)
}

func TestDesign_ScaleStepChangesIterations(t *testing.T) {
	t.Parallel()

	in := Input{AxialLoad: 300, MomentX: 20, MomentY: 10, AllowablePressure: 150}
	fine, err := Design(in)
	require.NoError(t, err)
	coarse, err := Design(in, WithScaleStep(1.05))
	require.NoError(t, err)

	assert.Equal(t, StatusOK, coarse.Status)
	assert.Less(t, coarse.Iterations, fine.Iterations)
}

func TestDesign_InvalidOptions(t *testing.T) {
	t.Parallel()

	in := Input{AxialLoad: 300, MomentX: 20, MomentY: 10, AllowablePressure: 150}
	tests := []struct {
		name string
		opt  Option
	}{
		{"zero iterations", WithMaxIterations(0)},
		{"negative iterations", WithMaxIterations(-3)},
		{"unit step", WithScaleStep(1)},
		{"shrinking step", WithScaleStep(0.99)},
		{"nan step", WithScaleStep(math.NaN())},
		{"infinite step", WithScaleStep(math.Inf(1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Design(in, tt.opt)
			if !errors.Is(err, ErrInvalidOption) {
				t.Errorf("Design() error = %v, want ErrInvalidOption", err)
			}
		})
	}
}

func TestDesign_KernBoundaryInResult(t *testing.T) {
	t.Parallel()

	// B0 = sqrt(144/4) = 6; one doubling gives Bx = By = 12, so B/6 = 2.
	opts := []Option{WithMaxIterations(1), WithScaleStep(2)}
	tests := []struct {
		name         string
		mx, my       float64
		kernX, kernY bool
	}{
		{"ex on boundary", 288, 360, true, false},
		{"negative ex on boundary", -288, 0, true, true},
		{"ey on boundary", 0, 288, true, true},
		{"both past boundary", 289, -289, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Design(Input{AxialLoad: 144, MomentX: tt.mx, MomentY: tt.my, AllowablePressure: 4}, opts...)
			require.NoError(t, err)
			require.Equal(t, 1, res.Iterations)
			require.Equal(t, 12.0, res.Bx)
			require.Equal(t, 12.0, res.By)
			assert.Equal(t, tt.kernX, res.KernX, "KernX for ex=%v", res.EccentricityX)
			assert.Equal(t, tt.kernY, res.KernY, "KernY for ey=%v", res.EccentricityY)
			assert.Equal(t, StatusNotOK, res.Status)
		})
	}
}

func TestKernCheck_InclusiveBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		e, side float64
		want    bool
	}{
		{1, 6, true},
		{-1, 6, true},
		{0.5, 3, true},
		{1.0000001, 6, false},
		{0, 0.1, true},
		{5, 3.2, false},
	}
	for _, tt := range tests {
		if got := KernCheck(tt.e, tt.side); got != tt.want {
			t.Errorf("KernCheck(%v, %v) = %v, want %v", tt.e, tt.side, got, tt.want)
		}
	}
}

func TestStatus_IsOK(t *testing.T) {
	t.Parallel()

	if !StatusOK.IsOK() {
		t.Error("StatusOK.IsOK() = false")
	}
	if StatusNotOK.IsOK() {
		t.Error("StatusNotOK.IsOK() = true")
	}
}
