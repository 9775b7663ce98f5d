package lcoe

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lcoe-calculator/internal/model"
)

// referenceProject is the 1 MW reference plant used as a regression fixture.
func referenceProject() model.ProjectInputs {
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

func TestEvaluate_ReferenceProject(t *testing.T) {
	res, err := Evaluate(referenceProject())
	require.NoError(t, err)
	require.NoError(t, res.Err())

	assert.Equal(t, 34400000.0, res.TotalCapex)
	assert.InDelta(t, 2838000.0, res.AnnualFinancingPayment, 1e-6)
	assert.InDelta(t, 344000.0, res.AnnualOpexYear0, 1e-6)

	assert.InEpsilon(t, 11374688.211393615, res.TotalOperatingCost, 1e-9)
	assert.InEpsilon(t, 56760000.0, res.TotalFinancingCost, 1e-9)
	assert.InEpsilon(t, 68134688.21139361, res.TotalCost, 1e-9)
	assert.InEpsilon(t, 30435312.283544794, res.PresentValueOfCosts, 1e-9)
	assert.InEpsilon(t, 31049.861007730306, res.TotalEnergyGenerated, 1e-9)
	assert.InEpsilon(t, 2088.103140539119, res.LCOEPerMWh, 1e-9)
	assert.InEpsilon(t, 2.0881031405391193, res.LCOEPerKWh, 1e-9)
	assert.InEpsilon(t, 1627.53/8760, res.CapacityUtilization, 1e-12)

	assert.False(t, res.Degenerate)
	assert.Empty(t, res.Warnings)
}

func TestEvaluate_SeriesProperties(t *testing.T) {
	cases := []struct {
		name string
		mod  func(*model.ProjectInputs)
	}{
		{"reference", func(*model.ProjectInputs) {}},
		{"short loan", func(p *model.ProjectInputs) { p.LoanTenure = 7 }},
		{"no loan", func(p *model.ProjectInputs) { p.LoanTenure = 0 }},
		{"loan longer than project", func(p *model.ProjectInputs) { p.LoanTenure = 30; p.ProjectLifetime = 12 }},
		{"large plant", func(p *model.ProjectInputs) { p.Capacity = 50; p.EnergyGeneration = 90000 }},
		{"zero rates", func(p *model.ProjectInputs) { p.InterestRate = 0; p.DiscountRate = 0 }},
		{"single year", func(p *model.ProjectInputs) { p.ProjectLifetime = 1 }},
		{"amortizing", func(p *model.ProjectInputs) { p.Financing = model.FinancingAmortizing }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := referenceProject()
			tc.mod(&in)

			res, err := Evaluate(in)
			require.NoError(t, err)

			assert.Equal(t, res.LCOEPerMWh/1000, res.LCOEPerKWh)
			assert.Equal(t, res.TotalOperatingCost+res.TotalFinancingCost, res.TotalCost)
			assert.Len(t, res.AnnualCashFlows, in.ProjectLifetime)
			assert.Len(t, res.Ledger, in.ProjectLifetime)

			for i, row := range res.Ledger {
				if i >= in.LoanTenure {
					assert.Zero(t, row.Financing, "year %d", row.Year)
					assert.Equal(t, row.Opex, res.AnnualCashFlows[i])
				}
				assert.Equal(t, res.AnnualCashFlows[i], row.CashFlow)
				if i > 0 {
					assert.Greater(t, row.Opex, res.Ledger[i-1].Opex)
					assert.Less(t, row.EnergyMWh, res.Ledger[i-1].EnergyMWh)
				}
			}
			assert.False(t, math.IsNaN(res.LCOEPerMWh))
			assert.False(t, math.IsInf(res.LCOEPerMWh, 0))
		})
	}
}

func TestEvaluate_ZeroDiscountRateIsPlainSum(t *testing.T) {
	in := referenceProject()
	in.DiscountRate = 0

	res, err := Evaluate(in)
	require.NoError(t, err)

	sum := 0.0
	for _, cf := range res.AnnualCashFlows {
		sum += cf
	}
	assert.Equal(t, sum, res.PresentValueOfCosts)
	assert.InEpsilon(t, res.TotalCost, res.PresentValueOfCosts, 1e-12)
}

func TestEvaluate_ZeroInterestHasNoFinancing(t *testing.T) {
	in := referenceProject()
	in.InterestRate = 0

	res, err := Evaluate(in)
	require.NoError(t, err)
	assert.Zero(t, res.AnnualFinancingPayment)
	assert.Zero(t, res.TotalFinancingCost)
	assert.InEpsilon(t, res.TotalOperatingCost, res.TotalCost, 1e-12)
}

func TestEvaluate_InvalidInput(t *testing.T) {
	cases := []struct {
		name  string
		field string
		mod   func(*model.ProjectInputs)
	}{
		{"zero capacity", "capacity", func(p *model.ProjectInputs) { p.Capacity = 0 }},
		{"negative capacity", "capacity", func(p *model.ProjectInputs) { p.Capacity = -1 }},
		{"nan capacity", "capacity", func(p *model.ProjectInputs) { p.Capacity = math.NaN() }},
		{"zero lifetime", "project_lifetime", func(p *model.ProjectInputs) { p.ProjectLifetime = 0 }},
		{"negative lifetime", "project_lifetime", func(p *model.ProjectInputs) { p.ProjectLifetime = -5 }},
		{"negative discount", "discount_rate", func(p *model.ProjectInputs) { p.DiscountRate = -1 }},
		{"negative interest", "interest_rate", func(p *model.ProjectInputs) { p.InterestRate = -0.5 }},
		{"negative opex", "opex_percent", func(p *model.ProjectInputs) { p.OpexPercent = -2 }},
		{"negative tenure", "loan_tenure", func(p *model.ProjectInputs) { p.LoanTenure = -1 }},
		{"infinite capex", "capex_per_mw", func(p *model.ProjectInputs) { p.CapexPerMW = math.Inf(1) }},
		{"unknown financing", "financing_model", func(p *model.ProjectInputs) { p.Financing = "balloon" }},
		{"lifetime above limit", "project_lifetime", func(p *model.ProjectInputs) { p.ProjectLifetime = model.MaxYears + 1 }},
		{"huge lifetime", "project_lifetime", func(p *model.ProjectInputs) { p.ProjectLifetime = 2000000000 }},
		{"tenure above limit", "loan_tenure", func(p *model.ProjectInputs) { p.LoanTenure = model.MaxYears + 1 }},
		{"capex rate overflows", "capex_per_mw", func(p *model.ProjectInputs) { p.CapexPerMW = 1e308; p.Capacity = 0.5 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := referenceProject()
			tc.mod(&in)

			res, err := Evaluate(in)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var inputErr *model.InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tc.field, inputErr.Field)
		})
	}
}

func TestEvaluate_TinyCapacityIsRejected(t *testing.T) {
	in := referenceProject()
	in.Capacity = math.SmallestNonzeroFloat64

	var err error
	assert.NotPanics(t, func() {
		_, err = Evaluate(in)
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEvaluate_DegenerateEnergy(t *testing.T) {
	for _, energy := range []float64{0, -100} {
		in := referenceProject()
		in.EnergyGeneration = energy

		res, err := Evaluate(in)
		require.NoError(t, err)
		require.NotNil(t, res)

		assert.True(t, res.Degenerate)
		assert.ErrorIs(t, res.Err(), ErrDegenerateResult)
		assert.Zero(t, res.LCOEPerMWh)
		assert.Zero(t, res.LCOEPerKWh)
		assert.NotEmpty(t, res.Warnings)
		assert.Len(t, res.AnnualCashFlows, in.ProjectLifetime)
	}
}

func TestEvaluate_ImplausibleUtilizationIsReported(t *testing.T) {
	in := referenceProject()
	in.EnergyGeneration = 10000 // > 8760 MWh from 1 MW

	res, err := Evaluate(in)
	require.NoError(t, err)
	assert.Greater(t, res.CapacityUtilization, 1.0)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "capacity utilization")
}

func TestEvaluate_Deterministic(t *testing.T) {
	a, err := Evaluate(referenceProject())
	require.NoError(t, err)
	b, err := New().Evaluate(referenceProject())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEvaluate_AmortizingFinancing(t *testing.T) {
	in := referenceProject()
	in.Financing = model.FinancingAmortizing

	res, err := Evaluate(in)
	require.NoError(t, err)

	r := 0.0825
	want := 34400000 * r / (1 - math.Pow(1+r, -20))
	assert.InEpsilon(t, want, res.AnnualFinancingPayment, 1e-12)
	assert.InEpsilon(t, want*20, res.TotalFinancingCost, 1e-12)
}

func TestEvaluate_NumericLimits(t *testing.T) {
	cases := []struct {
		name    string
		mod     func(*model.ProjectInputs)
		wantErr bool
	}{
		{"longest lifetime", func(p *model.ProjectInputs) { p.ProjectLifetime = model.MaxYears; p.LoanTenure = model.MaxYears }, false},
		{"longest lifetime, extreme discount", func(p *model.ProjectInputs) { p.ProjectLifetime = model.MaxYears; p.DiscountRate = 100000 }, false},
		{"longest lifetime, zero discount", func(p *model.ProjectInputs) { p.ProjectLifetime = model.MaxYears; p.DiscountRate = 0 }, false},
		{"total cost overflows", func(p *model.ProjectInputs) { p.CapexPerMW = 1e308 }, true},
		{"opex escalates past range", func(p *model.ProjectInputs) { p.OpexPercent = 1e300; p.ProjectLifetime = model.MaxYears }, true},
		{"simple interest payment overflows", func(p *model.ProjectInputs) { p.InterestRate = 1e308 }, true},
		{"amortized payment overflows", func(p *model.ProjectInputs) {
			p.InterestRate = 1e308
			p.Financing = model.FinancingAmortizing
		}, true},
		{"energy overflows", func(p *model.ProjectInputs) { p.EnergyGeneration = 1e308; p.ProjectLifetime = 10 }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := referenceProject()
			tc.mod(&in)

			res, err := Evaluate(in)
			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.Nil(t, res)
				return
			}
			require.NoError(t, err)
			assert.Len(t, res.Ledger, in.ProjectLifetime)
			assertFinite(t, res)
		})
	}
}

func assertFinite(t *testing.T, res *Result) {
	t.Helper()
	ok := func(name string, v float64) {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "%s = %v", name, v)
	}
	ok("total_capex", res.TotalCapex)
	ok("annual_opex_year0", res.AnnualOpexYear0)
	ok("annual_financing_payment", res.AnnualFinancingPayment)
	ok("total_operating_cost", res.TotalOperatingCost)
	ok("total_financing_cost", res.TotalFinancingCost)
	ok("total_cost", res.TotalCost)
	ok("present_value_of_costs", res.PresentValueOfCosts)
	ok("total_energy_generated", res.TotalEnergyGenerated)
	ok("lcoe_per_mwh", res.LCOEPerMWh)
	ok("lcoe_per_kwh", res.LCOEPerKWh)
	ok("capacity_utilization", res.CapacityUtilization)
	for _, r := range res.Ledger {
		ok("opex", r.Opex)
		ok("cash_flow", r.CashFlow)
		ok("discount_factor", r.DiscountFactor)
		ok("present_value", r.PresentValue)
		ok("energy_mwh", r.EnergyMWh)
	}
}
