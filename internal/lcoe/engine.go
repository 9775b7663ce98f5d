package lcoe

import (
	"fmt"
	"math"

	"lcoe-calculator/internal/model"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Evaluate runs the full pipeline for a single project.
func (e *Engine) Evaluate(in model.ProjectInputs) (*Result, error) {
	return Evaluate(in)
}

// Evaluate validates in and computes capex normalization, financing, escalated
// opex, degraded energy, discounting and the levelized cost.
// Validation failures wrap ErrInvalidInput and no partial result is returned.
func Evaluate(in model.ProjectInputs) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, wrapInvalid(err)
	}

	capex, err := TotalCapex(in.CapexPerMW, in.Capacity)
	if err != nil {
		return nil, err
	}

	var payment float64
	switch in.FinancingOrDefault() {
	case model.FinancingAmortizing:
		payment = AmortizedPayment(capex, in.InterestRate, in.LoanTenure)
	default:
		payment = AnnualFinancingPayment(capex, in.InterestRate)
	}

	baseOpex := in.OpexPercent / 100 * capex
	opex, totalOpex := OpexSeries(baseOpex, in.ProjectLifetime)

	// Energy is normalized by capacity the same way capex is.
	energy, totalEnergy := EnergySeries(in.EnergyGeneration/in.Capacity, in.ProjectLifetime)

	flows := CashFlows(opex, payment, in.LoanTenure)
	pv := PresentValue(flows, in.DiscountRate)

	financedYears := in.LoanTenure
	if financedYears > in.ProjectLifetime {
		financedYears = in.ProjectLifetime
	}
	totalFinancing := payment * float64(financedYears)

	ledger := make([]YearRow, len(flows))
	for i, cf := range flows {
		df := DiscountFactor(in.DiscountRate, i)
		financing := 0.0
		if i < in.LoanTenure {
			financing = payment
		}
		ledger[i] = YearRow{
			Year:           i + 1,
			Opex:           opex[i],
			Financing:      financing,
			CashFlow:       cf,
			DiscountFactor: df,
			PresentValue:   cf * df,
			EnergyMWh:      energy[i],
		}
	}

	res := &Result{
		Inputs:                 in,
		TotalCapex:             capex,
		AnnualOpexYear0:        baseOpex,
		AnnualFinancingPayment: payment,
		TotalOperatingCost:     totalOpex,
		TotalFinancingCost:     totalFinancing,
		TotalCost:              totalOpex + totalFinancing,
		PresentValueOfCosts:    pv,
		TotalEnergyGenerated:   totalEnergy,
		CapacityUtilization:    CapacityUtilization(in.EnergyGeneration, in.Capacity),
		AnnualCashFlows:        flows,
		Ledger:                 ledger,
	}

	if err := checkFinite(res); err != nil {
		return nil, err
	}

	if totalEnergy <= 0 {
		res.Degenerate = true
		res.Warnings = append(res.Warnings, ErrDegenerateResult.Error())
	} else {
		res.LCOEPerMWh = LevelizedCost(capex, pv, totalEnergy)
		res.LCOEPerKWh = res.LCOEPerMWh / KWhPerMWh
	}

	if !isFinite(res.LCOEPerMWh) {
		return nil, invalid("project", "levelized cost overflows float64 range")
	}

	if res.CapacityUtilization > 1 {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("capacity utilization %.3f exceeds 1: energy_generation is implausible for the stated capacity", res.CapacityUtilization))
	}
	if in.LoanTenure > in.ProjectLifetime {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("loan_tenure %d exceeds project_lifetime %d: payments after the final year are ignored", in.LoanTenure, in.ProjectLifetime))
	}

	return res, nil
}

// checkFinite rejects inputs whose derived figures leave float64 range, for
// example a huge capex or a high escalation compounded over many years.
func checkFinite(res *Result) error {
	derived := []struct {
		name string
		v    float64
	}{
		{"total_capex", res.TotalCapex},
		{"annual_financing_payment", res.AnnualFinancingPayment},
		{"total_operating_cost", res.TotalOperatingCost},
		{"total_financing_cost", res.TotalFinancingCost},
		{"total_cost", res.TotalCost},
		{"present_value_of_costs", res.PresentValueOfCosts},
		{"total_energy_generated", res.TotalEnergyGenerated},
		{"capacity_utilization", res.CapacityUtilization},
	}
	for _, d := range derived {
		if !isFinite(d.v) {
			return invalid("project", d.name+" overflows float64 range")
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
