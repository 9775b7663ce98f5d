package lcoe

import "lcoe-calculator/internal/model"

// YearRow is one row of the per-year cash-flow breakdown.
// Year is 1-based: the first row is discounted as the end of year 1.
type YearRow struct {
	Year int `json:"year"`

	Opex      float64 `json:"opex"`
	Financing float64 `json:"financing"`
	CashFlow  float64 `json:"cash_flow"`

	DiscountFactor float64 `json:"discount_factor"`
	PresentValue   float64 `json:"present_value"`

	EnergyMWh float64 `json:"energy_mwh"`
}

// Result is the output of one evaluation. It is never mutated after Evaluate returns.
type Result struct {
	Inputs model.ProjectInputs `json:"inputs"`

	TotalCapex             float64 `json:"total_capex"`
	AnnualOpexYear0        float64 `json:"annual_opex_year0"`
	AnnualFinancingPayment float64 `json:"annual_financing_payment"`

	TotalOperatingCost  float64 `json:"total_operating_cost"`
	TotalFinancingCost  float64 `json:"total_financing_cost"`
	TotalCost           float64 `json:"total_cost"`
	PresentValueOfCosts float64 `json:"present_value_of_costs"`

	TotalEnergyGenerated float64 `json:"total_energy_generated"`

	LCOEPerMWh float64 `json:"lcoe_per_mwh"`
	LCOEPerKWh float64 `json:"lcoe_per_kwh"`

	CapacityUtilization float64 `json:"capacity_utilization"`

	AnnualCashFlows []float64 `json:"annual_cash_flows"`
	Ledger          []YearRow `json:"ledger"`

	// Degenerate is set when total energy is not positive; the LCOE fields hold 0.
	Degenerate bool     `json:"degenerate"`
	Warnings   []string `json:"warnings,omitempty"`
}

// Err returns ErrDegenerateResult for degenerate results and nil otherwise.
func (r *Result) Err() error {
	if r != nil && r.Degenerate {
		return ErrDegenerateResult
	}
	return nil
}
