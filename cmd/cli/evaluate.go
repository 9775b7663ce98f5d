package main

import (
	"fmt"
	"io"

	"lcoe-calculator/internal/lcoe"

	"github.com/spf13/cobra"
)

func newEvaluateCmd(opts *rootOptions) *cobra.Command {
	var showLedger bool
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Compute LCOE for one project",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _, err := opts.loadProject(cmd)
			if err != nil {
				return err
			}
			res, err := lcoe.Evaluate(in)
			if err != nil {
				return err
			}
			if opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			printSummary(cmd.OutOrStdout(), res)
			if showLedger {
				fmt.Fprintln(cmd.OutOrStdout())
				printLedger(cmd.OutOrStdout(), res.Ledger)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showLedger, "ledger", false, "Also print the per-year cash-flow ledger")
	return cmd
}

func printSummary(w io.Writer, res *lcoe.Result) {
	fmt.Fprintf(w, "Project\n")
	fmt.Fprintf(w, "=======\n")
	fmt.Fprintf(w, "  Capacity:            %g MW\n", res.Inputs.Capacity)
	fmt.Fprintf(w, "  Lifetime:            %d years\n", res.Inputs.ProjectLifetime)
	fmt.Fprintf(w, "  Financing:           %s\n", res.Inputs.FinancingOrDefault())
	fmt.Fprintf(w, "\nCosts\n")
	fmt.Fprintf(w, "=====\n")
	fmt.Fprintf(w, "  Total capex:         %s\n", lcoe.FormatMoney(res.TotalCapex))
	fmt.Fprintf(w, "  Total operating:     %s\n", lcoe.FormatMoney(res.TotalOperatingCost))
	fmt.Fprintf(w, "  Total financing:     %s\n", lcoe.FormatMoney(res.TotalFinancingCost))
	fmt.Fprintf(w, "  Total cost:          %s\n", lcoe.FormatMoney(res.TotalCost))
	fmt.Fprintf(w, "  PV of annual costs:  %s\n", lcoe.FormatMoney(res.PresentValueOfCosts))
	fmt.Fprintf(w, "\nEnergy\n")
	fmt.Fprintf(w, "======\n")
	fmt.Fprintf(w, "  Lifetime energy:     %s MWh\n", lcoe.FormatEnergy(res.TotalEnergyGenerated))
	fmt.Fprintf(w, "  Utilization:         %.2f%%\n", res.CapacityUtilization*100)
	fmt.Fprintf(w, "\nLCOE\n")
	fmt.Fprintf(w, "====\n")
	if res.Degenerate {
		fmt.Fprintf(w, "  undefined (no energy generated)\n")
	} else {
		fmt.Fprintf(w, "  %.2f per MWh\n", res.LCOEPerMWh)
		fmt.Fprintf(w, "  %.4f per kWh\n", res.LCOEPerKWh)
	}
	if len(res.Warnings) > 0 {
		fmt.Fprintf(w, "\nWarnings:\n")
		for _, warn := range res.Warnings {
			fmt.Fprintf(w, "  - %s\n", warn)
		}
	}
}

func printLedger(w io.Writer, ledger []lcoe.YearRow) {
	fmt.Fprintf(w, "%-5s %-16s %-16s %-16s %-9s %-16s %-12s\n",
		"year", "opex", "financing", "cash_flow", "discount", "present_value", "energy_mwh")
	for _, r := range ledger {
		fmt.Fprintf(w, "%-5d %-16s %-16s %-16s %-9.5f %-16s %-12s\n",
			r.Year,
			lcoe.FormatMoney(r.Opex),
			lcoe.FormatMoney(r.Financing),
			lcoe.FormatMoney(r.CashFlow),
			r.DiscountFactor,
			lcoe.FormatMoney(r.PresentValue),
			lcoe.FormatEnergy(r.EnergyMWh),
		)
	}
}
