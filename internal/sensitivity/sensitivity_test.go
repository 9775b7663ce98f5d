package sensitivity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lcoe-calculator/internal/lcoe"
	"lcoe-calculator/internal/model"
)

func baseProject() model.ProjectInputs {
	return model.ProjectInputs{
		Capacity:         1.0,
		EnergyGeneration: 1627.53,
		CapexPerMW:       34400000,
		OpexPercent:      1.0,
		InterestRate:     8.25,
		LoanTenure:       20,
		ProjectLifetime:  20,
		DiscountRate:     9.0,
	}
}

func TestDiscountRateSweep_Monotonic(t *testing.T) {
	points, err := DiscountRateSweep(baseProject(), 5, 15, 0.5)
	require.NoError(t, err)
	require.Len(t, points, 21)

	assert.InDelta(t, 5.0, points[0].Value, 1e-12)
	assert.InDelta(t, 15.0, points[20].Value, 1e-12)

	for i, p := range points {
		require.True(t, p.OK(), "point %d", i)
		v := p.LCOEPerKWh()
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		assert.Greater(t, v, 0.0)
		if i > 0 {
			// Costs all fall after year 0 and energy is undiscounted, so a
			// higher rate can only lower the present value of costs.
			assert.LessOrEqual(t, v, points[i-1].LCOEPerKWh(), "rate %.1f", p.Value)
		}
	}

	// 9% is the reference case.
	assert.InEpsilon(t, 2.0881031405391193, points[8].LCOEPerKWh(), 1e-9)
}

func TestSweep_MatchesSequentialEvaluation(t *testing.T) {
	values, err := Linspace(0.5, 3, 20)
	require.NoError(t, err)

	points, err := Sweep(baseProject(), model.ParamOpexPercent, values)
	require.NoError(t, err)
	require.Len(t, points, len(values))

	for i, v := range values {
		in := baseProject()
		in.OpexPercent = v
		want, err := lcoe.Evaluate(in)
		require.NoError(t, err)

		assert.Equal(t, v, points[i].Value)
		assert.Equal(t, want, points[i].Result)
	}
}

func TestSweep_InvalidTrialIsRecorded(t *testing.T) {
	points, err := Sweep(baseProject(), model.ParamCapacity, []float64{0, 1, 2})
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.ErrorIs(t, points[0].Err, lcoe.ErrInvalidInput)
	assert.False(t, points[0].OK())
	assert.Zero(t, points[0].LCOEPerKWh())
	assert.True(t, points[1].OK())
	assert.True(t, points[2].OK())
}

func TestSweep_UnknownParameter(t *testing.T) {
	_, err := Sweep(baseProject(), model.Parameter("weather"), []float64{1})
	assert.Error(t, err)
}

func TestSweep_IntegerParameterRounds(t *testing.T) {
	points, err := Sweep(baseProject(), model.ParamProjectLifetime, []float64{9.6})
	require.NoError(t, err)
	require.True(t, points[0].OK())
	assert.Len(t, points[0].Result.AnnualCashFlows, 10)
}

func TestLinspace(t *testing.T) {
	v, err := Linspace(0, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, v)

	v, err = Linspace(3, 9, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, v)

	_, err = Linspace(0, 1, 0)
	assert.Error(t, err)
	_, err = Linspace(0, 1, MaxTrials+1)
	assert.ErrorIs(t, err, ErrTooManyTrials)
}

func TestStepRange(t *testing.T) {
	v, err := StepRange(0, 0.3, 0.1)
	require.NoError(t, err)
	require.Len(t, v, 4)
	assert.InDelta(t, 0.3, v[3], 1e-12)

	_, err = StepRange(0, 1, 0)
	assert.Error(t, err)
	_, err = StepRange(2, 1, 0.5)
	assert.Error(t, err)
}

func TestRangeGenerators_RejectOverflowingSpans(t *testing.T) {
	cases := []struct {
		name string
		gen  func() ([]float64, error)
	}{
		{"step range span overflows int", func() ([]float64, error) { return StepRange(0, 1e308, 1e-300) }},
		{"step range span is infinite", func() ([]float64, error) { return StepRange(-1e308, 1e308, 1) }},
		{"step range infinite end", func() ([]float64, error) { return StepRange(0, math.Inf(1), 1) }},
		{"step range nan start", func() ([]float64, error) { return StepRange(math.NaN(), 1, 0.5) }},
		{"linspace spacing overflows", func() ([]float64, error) { return Linspace(-1e308, 1e308, 3) }},
		{"linspace infinite end", func() ([]float64, error) { return Linspace(0, math.Inf(1), 3) }},
		{"linspace nan start", func() ([]float64, error) { return Linspace(math.NaN(), 1, 2) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var (
				v   []float64
				err error
			)
			require.NotPanics(t, func() { v, err = tc.gen() })
			assert.Error(t, err)
			assert.Nil(t, v)
		})
	}

	_, err := StepRange(0, 1e308, 1e-300)
	assert.ErrorIs(t, err, ErrTooManyTrials)
}

func TestDiscountRateSweep_HugeRange(t *testing.T) {
	var err error
	require.NotPanics(t, func() {
		_, err = DiscountRateSweep(baseProject(), 0, 1e308, 1e-300)
	})
	assert.ErrorIs(t, err, ErrTooManyTrials)
}

func TestSweep_OutOfRangeLifetimeIsRecorded(t *testing.T) {
	values := []float64{20, float64(model.MaxYears + 1), 1e300, -1e300, math.NaN()}
	points, err := Sweep(baseProject(), model.ParamProjectLifetime, values)
	require.NoError(t, err)
	require.Len(t, points, len(values))
	assert.True(t, points[0].OK())
	for _, p := range points[1:] {
		assert.ErrorIs(t, p.Err, lcoe.ErrInvalidInput, "value %v", p.Value)
	}
}

func TestTornado_RanksWidestSpreadFirst(t *testing.T) {
	params := model.AllParameters()
	bars, baseLCOE, err := Tornado(baseProject(), params, 20)
	require.NoError(t, err)
	require.Len(t, bars, len(params))
	assert.InEpsilon(t, 2.0881031405391193, baseLCOE, 1e-9)

	for i := 1; i < len(bars); i++ {
		assert.GreaterOrEqual(t, bars[i-1].Spread, bars[i].Spread)
	}

	// Independently find the widest spread.
	widest := model.Parameter("")
	best := -1.0
	for _, p := range params {
		v, _ := baseProject().Get(p)
		lo, hi := evalKWh(t, p, v*0.8), evalKWh(t, p, v*1.2)
		if s := math.Abs(hi - lo); s > best {
			best, widest = s, p
		}
	}
	assert.Equal(t, widest, bars[0].Parameter)

	// Reversed input order must not change the winner.
	reversed := make([]model.Parameter, len(params))
	for i, p := range params {
		reversed[len(params)-1-i] = p
	}
	rbars, _, err := Tornado(baseProject(), reversed, 20)
	require.NoError(t, err)
	assert.Equal(t, bars[0].Parameter, rbars[0].Parameter)
}

func TestTornado_TiesKeepInputOrder(t *testing.T) {
	in := baseProject()
	in.OpexPercent = 0
	in.InterestRate = 0

	// Both parameters are zero, so both spreads are zero.
	bars, _, err := Tornado(in, []model.Parameter{model.ParamInterestRate, model.ParamOpexPercent}, 10)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, model.ParamInterestRate, bars[0].Parameter)
	assert.Equal(t, model.ParamOpexPercent, bars[1].Parameter)

	bars, _, err = Tornado(in, []model.Parameter{model.ParamOpexPercent, model.ParamInterestRate}, 10)
	require.NoError(t, err)
	assert.Equal(t, model.ParamOpexPercent, bars[0].Parameter)
}

func TestTornado_RejectsBadDelta(t *testing.T) {
	for _, d := range []float64{0, -5, 100, 150} {
		_, _, err := Tornado(baseProject(), nil, d)
		assert.Error(t, err, "delta %v", d)
	}
}

func TestTornado_RejectsInvalidBase(t *testing.T) {
	in := baseProject()
	in.Capacity = 0
	_, _, err := Tornado(in, nil, 10)
	assert.ErrorIs(t, err, lcoe.ErrInvalidInput)

	in = baseProject()
	in.EnergyGeneration = 0
	_, _, err = Tornado(in, nil, 10)
	assert.ErrorIs(t, err, lcoe.ErrDegenerateResult)
}

func TestHeatmap(t *testing.T) {
	xs := []float64{5, 7, 9, 11, 13}
	ys := []float64{20000000, 30000000, 40000000, 50000000, 60000000}

	grid, err := Heatmap(baseProject(), model.ParamDiscountRate, xs, model.ParamCapexPerMW, ys)
	require.NoError(t, err)
	require.Len(t, grid.Cells, len(ys))

	for y, row := range grid.Cells {
		require.Len(t, row, len(xs))
		for x, c := range row {
			require.True(t, c.OK())
			in := baseProject()
			in.DiscountRate = xs[x]
			in.CapexPerMW = ys[y]
			want, err := lcoe.Evaluate(in)
			require.NoError(t, err)
			assert.Equal(t, want.LCOEPerKWh, c.LCOEPerKWh())
		}
	}

	// Cheapest corner: lowest capex, highest discount rate.
	assert.Equal(t, grid.Cells[0][4].LCOEPerKWh(), grid.Min())
	assert.Equal(t, grid.Cells[4][0].LCOEPerKWh(), grid.Max())
}

func TestHeatmap_Validation(t *testing.T) {
	_, err := Heatmap(baseProject(), model.ParamDiscountRate, []float64{1}, model.ParamDiscountRate, []float64{1})
	assert.Error(t, err)

	_, err = Heatmap(baseProject(), model.ParamDiscountRate, nil, model.ParamCapacity, []float64{1})
	assert.Error(t, err)
}

func evalKWh(t *testing.T, p model.Parameter, v float64) float64 {
	t.Helper()
	in, err := baseProject().With(p, v)
	require.NoError(t, err)
	res, err := lcoe.Evaluate(in)
	require.NoError(t, err)
	return res.LCOEPerKWh
}

func TestRangeAround(t *testing.T) {
	v, err := RangeAround(baseProject(), model.ParamDiscountRate, 50, 3)
	require.NoError(t, err)
	require.Len(t, v, 3)
	assert.InDelta(t, 4.5, v[0], 1e-12)
	assert.InDelta(t, 9.0, v[1], 1e-12)
	assert.InDelta(t, 13.5, v[2], 1e-12)

	_, err = RangeAround(baseProject(), model.ParamDiscountRate, 0, 3)
	assert.Error(t, err)
	_, err = RangeAround(baseProject(), model.Parameter("x"), 10, 3)
	assert.Error(t, err)
}
