package model

import (
	"fmt"
	"math"
)

// FinancingModel selects how the annual debt-service payment is derived.
type FinancingModel string

const (
	// FinancingSimpleInterest charges capex × rate every loan year. This is the canonical model.
	FinancingSimpleInterest FinancingModel = "simple_interest"
	// FinancingAmortizing uses a level annuity (EMI) over the loan tenure.
	FinancingAmortizing FinancingModel = "amortizing"
)

// ProjectInputs defines the financial and technical parameters of a solar project.
// Units:
// - Capacity: MW
// - EnergyGeneration: MWh/year (year-1 output)
// - CapexPerMW: currency
// - OpexPercent, InterestRate, DiscountRate: percent (8.25 means 8.25%)
// - LoanTenure, ProjectLifetime: years
type ProjectInputs struct {
	Capacity         float64        `json:"capacity" yaml:"capacity"`
	EnergyGeneration float64        `json:"energy_generation" yaml:"energy_generation"`
	CapexPerMW       float64        `json:"capex_per_mw" yaml:"capex_per_mw"`
	OpexPercent      float64        `json:"opex_percent" yaml:"opex_percent"`
	InterestRate     float64        `json:"interest_rate" yaml:"interest_rate"`
	LoanTenure       int            `json:"loan_tenure" yaml:"loan_tenure"`
	ProjectLifetime  int            `json:"project_lifetime" yaml:"project_lifetime"`
	DiscountRate     float64        `json:"discount_rate" yaml:"discount_rate"`
	Financing        FinancingModel `json:"financing_model,omitempty" yaml:"financing_model,omitempty"`
}

// MaxYears bounds ProjectLifetime and LoanTenure. It keeps the per-year series
// inside float64 range for ordinary rates and caps the work one evaluation does.
const MaxYears = 1000

// InputError reports a single rejected field.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate rejects values that make the calculation meaningless.
// A non-positive EnergyGeneration is deliberately not rejected here; the engine
// reports it as a degenerate result instead.
func (p ProjectInputs) Validate() error {
	finite := []struct {
		field string
		v     float64
	}{
		{"capacity", p.Capacity},
		{"energy_generation", p.EnergyGeneration},
		{"capex_per_mw", p.CapexPerMW},
		{"opex_percent", p.OpexPercent},
		{"interest_rate", p.InterestRate},
		{"discount_rate", p.DiscountRate},
	}
	for _, f := range finite {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return &InputError{Field: f.field, Reason: "must be a finite number"}
		}
	}
	if p.Capacity <= 0 {
		return &InputError{Field: "capacity", Reason: "must be > 0"}
	}
	if p.ProjectLifetime <= 0 {
		return &InputError{Field: "project_lifetime", Reason: "must be >= 1"}
	}
	if p.ProjectLifetime > MaxYears {
		return &InputError{Field: "project_lifetime", Reason: fmt.Sprintf("must be <= %d", MaxYears)}
	}
	if p.CapexPerMW < 0 {
		return &InputError{Field: "capex_per_mw", Reason: "must be >= 0"}
	}
	if p.OpexPercent < 0 {
		return &InputError{Field: "opex_percent", Reason: "must be >= 0"}
	}
	if p.InterestRate < 0 {
		return &InputError{Field: "interest_rate", Reason: "must be >= 0"}
	}
	if p.LoanTenure < 0 {
		return &InputError{Field: "loan_tenure", Reason: "must be >= 0"}
	}
	if p.LoanTenure > MaxYears {
		return &InputError{Field: "loan_tenure", Reason: fmt.Sprintf("must be <= %d", MaxYears)}
	}
	if p.DiscountRate < 0 {
		return &InputError{Field: "discount_rate", Reason: "must be >= 0"}
	}
	switch p.Financing {
	case "", FinancingSimpleInterest, FinancingAmortizing:
	default:
		return &InputError{Field: "financing_model", Reason: fmt.Sprintf("unsupported value %q", p.Financing)}
	}
	return nil
}

// FinancingOrDefault returns the configured financing model, defaulting to simple interest.
func (p ProjectInputs) FinancingOrDefault() FinancingModel {
	if p.Financing == "" {
		return FinancingSimpleInterest
	}
	return p.Financing
}
