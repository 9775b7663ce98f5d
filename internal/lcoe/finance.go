package lcoe

import (
	"math"
)

const (
	// OpexEscalationRate is the fixed annual growth of operating cost.
	OpexEscalationRate = 0.05
	// DegradationRate is the fixed annual decline of energy output.
	DegradationRate = 0.005
	// HoursPerYear is used for capacity utilization.
	HoursPerYear = 8760.0
	// KWhPerMWh converts a per-MWh cost into a per-kWh cost.
	KWhPerMWh = 1000.0

	minPlausibleCapacity = 1e-6 // MW
)

// TotalCapex normalizes the CAPEX rate by plant capacity.
//
// The supplied rate is already scaled for the plant, so it is divided by
// capacity rather than multiplied. Published results depend on this convention.
func TotalCapex(capexRate, capacity float64) (float64, error) {
	if capacity <= 0 || math.IsNaN(capacity) {
		return 0, invalid("capacity", "must be > 0")
	}
	capex := capexRate / capacity
	if math.IsInf(capex, 0) {
		// Below a 1 W plant the capacity is the implausible input; otherwise the rate is.
		if capacity >= minPlausibleCapacity {
			return 0, invalid("capex_per_mw", "capex_per_mw/capacity overflows float64 range")
		}
		return 0, invalid("capacity", "too small to normalize capex: capex_per_mw/capacity overflows float64 range")
	}
	return capex, nil
}

// AnnualFinancingPayment is simple interest on the full principal:
// capex × rate/100, paid every year the loan is active.
func AnnualFinancingPayment(capex, interestRatePct float64) float64 {
	return capex * (interestRatePct / 100)
}

// AmortizedPayment is the level annual payment that retires capex over tenure
// years at interestRatePct.
func AmortizedPayment(capex, interestRatePct float64, tenure int) float64 {
	if tenure <= 0 {
		return 0
	}
	r := interestRatePct / 100
	n := float64(tenure)
	if r == 0 {
		return capex / n
	}
	return capex * r / (1 - math.Pow(1+r, -n))
}

// OpexSeries escalates base geometrically from year 0:
// cost_i = base × 1.05^i for i in [0, lifetime).
// It returns the per-year series and its undiscounted sum.
func OpexSeries(base float64, lifetime int) ([]float64, float64) {
	return geometricSeries(base, 1+OpexEscalationRate, lifetime)
}

// EnergySeries degrades base geometrically from year 0:
// energy_i = base × 0.995^i for i in [0, lifetime).
func EnergySeries(base float64, lifetime int) ([]float64, float64) {
	return geometricSeries(base, 1-DegradationRate, lifetime)
}

func geometricSeries(base, factor float64, n int) ([]float64, float64) {
	if n <= 0 {
		return []float64{}, 0
	}
	out := make([]float64, n)
	sum := 0.0
	for i := 0; i < n; i++ {
		out[i] = base * math.Pow(factor, float64(i))
		sum += out[i]
	}
	return out, sum
}

// CashFlows assembles the annual outflows: opex[i] plus payment while i < tenure.
// The returned slice always has len(opex) entries.
func CashFlows(opex []float64, payment float64, tenure int) []float64 {
	out := make([]float64, len(opex))
	for i, o := range opex {
		out[i] = o
		if i < tenure {
			out[i] += payment
		}
	}
	return out
}

// DiscountFactor returns 1/(1+r)^(i+1) for the flow at index i.
// The first flow sits at the end of year 1; year 0 carries an implicit zero flow.
func DiscountFactor(ratePct float64, i int) float64 {
	if ratePct == 0 {
		return 1
	}
	return 1 / math.Pow(1+ratePct/100, float64(i+1))
}

// PresentValue discounts flows at ratePct. A zero rate is a plain sum.
func PresentValue(flows []float64, ratePct float64) float64 {
	pv := 0.0
	for i, cf := range flows {
		pv += cf * DiscountFactor(ratePct, i)
	}
	return pv
}

// LevelizedCost returns (capex + pv) / energy per MWh, or 0 when energy is not positive.
func LevelizedCost(capex, pv, totalEnergy float64) float64 {
	if totalEnergy <= 0 {
		return 0
	}
	return (capex + pv) / totalEnergy
}

// CapacityUtilization is energy / (capacity × 8760). Values above 1 are returned as-is.
func CapacityUtilization(energyGeneration, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	u := energyGeneration / (capacity * HoursPerYear)
	if u < 0 {
		return 0
	}
	return u
}
