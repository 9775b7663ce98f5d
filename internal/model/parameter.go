package model

import (
	"fmt"
	"math"
)

// Parameter names one sweepable field of ProjectInputs.
// Keep these values stable; they are used in API payloads and CSV headers.
type Parameter string

const (
	ParamCapacity         Parameter = "capacity"
	ParamEnergyGeneration Parameter = "energy_generation"
	ParamCapexPerMW       Parameter = "capex_per_mw"
	ParamOpexPercent      Parameter = "opex_percent"
	ParamInterestRate     Parameter = "interest_rate"
	ParamLoanTenure       Parameter = "loan_tenure"
	ParamProjectLifetime  Parameter = "project_lifetime"
	ParamDiscountRate     Parameter = "discount_rate"
)

// AllParameters lists every parameter in input order. Tornado ties fall back to this order.
func AllParameters() []Parameter {
	return []Parameter{
		ParamCapacity,
		ParamEnergyGeneration,
		ParamCapexPerMW,
		ParamOpexPercent,
		ParamInterestRate,
		ParamLoanTenure,
		ParamProjectLifetime,
		ParamDiscountRate,
	}
}

func ParseParameter(s string) (Parameter, error) {
	for _, p := range AllParameters() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown parameter %q", s)
}

// IsInteger reports whether the parameter is stored as whole years.
func (p Parameter) IsInteger() bool {
	return p == ParamLoanTenure || p == ParamProjectLifetime
}

// Get returns the current value of param in p.
func (p ProjectInputs) Get(param Parameter) (float64, error) {
	switch param {
	case ParamCapacity:
		return p.Capacity, nil
	case ParamEnergyGeneration:
		return p.EnergyGeneration, nil
	case ParamCapexPerMW:
		return p.CapexPerMW, nil
	case ParamOpexPercent:
		return p.OpexPercent, nil
	case ParamInterestRate:
		return p.InterestRate, nil
	case ParamLoanTenure:
		return float64(p.LoanTenure), nil
	case ParamProjectLifetime:
		return float64(p.ProjectLifetime), nil
	case ParamDiscountRate:
		return p.DiscountRate, nil
	default:
		return 0, fmt.Errorf("unknown parameter %q", param)
	}
}

// With returns a copy of p with param set to v. Integer parameters are rounded
// to the nearest whole year.
func (p ProjectInputs) With(param Parameter, v float64) (ProjectInputs, error) {
	out := p
	switch param {
	case ParamCapacity:
		out.Capacity = v
	case ParamEnergyGeneration:
		out.EnergyGeneration = v
	case ParamCapexPerMW:
		out.CapexPerMW = v
	case ParamOpexPercent:
		out.OpexPercent = v
	case ParamInterestRate:
		out.InterestRate = v
	case ParamLoanTenure:
		out.LoanTenure = roundYears(v)
	case ParamProjectLifetime:
		out.ProjectLifetime = roundYears(v)
	case ParamDiscountRate:
		out.DiscountRate = v
	default:
		return p, fmt.Errorf("unknown parameter %q", param)
	}
	return out, nil
}

// roundYears rounds v to whole years, clamped just outside the valid range so
// Validate still rejects it without an out-of-range int conversion.
func roundYears(v float64) int {
	r := math.Round(v)
	switch {
	case math.IsNaN(r) || r < -1:
		return -1
	case r > MaxYears+1:
		return MaxYears + 1
	}
	return int(r)
}
