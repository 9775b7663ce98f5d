package main

import (
	"flag"
	"fmt"
	"os"

	"lcoe-calculator/internal/config"
	"lcoe-calculator/internal/lcoe"
	"lcoe-calculator/internal/model"
)

// Demo:
// - Build a project (reference 1 MW defaults, or --config)
// - Walk the finance steps one at a time to show how they compose
// - Cross-check against the engine and optionally write the ledger CSV
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	years := flag.Int("n", 5, "Number of ledger years to print")
	outCSV := flag.String("out", "", "Optional path to write ledger CSV (e.g. results/cashflows.csv)")
	flag.Parse()

	// Defaults (can be overridden via --config).
	in := model.ProjectInputs{
		Capacity:         1.0,
		EnergyGeneration: 1627.53,
		CapexPerMW:       34400000,
		OpexPercent:      1.0,
		InterestRate:     8.25,
		LoanTenure:       20,
		ProjectLifetime:  20,
		DiscountRate:     9.0,
	}
	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		in = cfg.Project.ToModelInputs()
	}

	steps, err := walkThrough(in)
	if err != nil {
		panic(err)
	}
	fmt.Printf("capex=%s payment=%s/yr (%s) opex(total)=%s\n",
		lcoe.FormatMoney(steps.capex), lcoe.FormatMoney(steps.payment), in.FinancingOrDefault(), lcoe.FormatMoney(steps.totalOpex))
	fmt.Printf("pv=%s energy=%s MWh\n", lcoe.FormatMoney(steps.pv), lcoe.FormatEnergy(steps.totalEnergy))
	fmt.Printf("lcoe(step-by-step)=%.4f per MWh\n", steps.lcoe)

	res, err := lcoe.Evaluate(in)
	if err != nil {
		panic(err)
	}
	fmt.Printf("lcoe(engine)=%.4f per MWh, %.4f per kWh\n\n", res.LCOEPerMWh, res.LCOEPerKWh)

	n := *years
	if n > len(res.Ledger) {
		n = len(res.Ledger)
	}
	for _, r := range res.Ledger[:n] {
		fmt.Printf("year=%2d opex=%s financing=%s df=%.5f pv=%s energy=%s\n",
			r.Year,
			lcoe.FormatMoney(r.Opex),
			lcoe.FormatMoney(r.Financing),
			r.DiscountFactor,
			lcoe.FormatMoney(r.PresentValue),
			lcoe.FormatEnergy(r.EnergyMWh),
		)
	}
	for _, w := range res.Warnings {
		fmt.Printf("warning: %s\n", w)
	}

	if *outCSV != "" {
		if err := lcoe.WriteLedgerCSV(*outCSV, res.Ledger); err != nil {
			fmt.Fprintf(os.Stderr, "write csv: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nWrote %d rows to %s\n", len(res.Ledger), *outCSV)
	}
}

type walk struct {
	capex, payment, totalOpex, pv, totalEnergy, lcoe float64
}

// walkThrough composes the finance functions by hand, picking the payment the
// same way the engine does.
func walkThrough(in model.ProjectInputs) (walk, error) {
	if err := in.Validate(); err != nil {
		return walk{}, err
	}
	capex, err := lcoe.TotalCapex(in.CapexPerMW, in.Capacity)
	if err != nil {
		return walk{}, err
	}
	var payment float64
	switch in.FinancingOrDefault() {
	case model.FinancingAmortizing:
		payment = lcoe.AmortizedPayment(capex, in.InterestRate, in.LoanTenure)
	default:
		payment = lcoe.AnnualFinancingPayment(capex, in.InterestRate)
	}
	opex, totalOpex := lcoe.OpexSeries(in.OpexPercent/100*capex, in.ProjectLifetime)
	_, totalEnergy := lcoe.EnergySeries(in.EnergyGeneration/in.Capacity, in.ProjectLifetime)
	flows := lcoe.CashFlows(opex, payment, in.LoanTenure)
	pv := lcoe.PresentValue(flows, in.DiscountRate)
	return walk{
		capex:       capex,
		payment:     payment,
		totalOpex:   totalOpex,
		pv:          pv,
		totalEnergy: totalEnergy,
		lcoe:        lcoe.LevelizedCost(capex, pv, totalEnergy),
	}, nil
}
