package main

import (
	"fmt"

	"lcoe-calculator/internal/model"
	"lcoe-calculator/internal/sensitivity"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newTornadoCmd(opts *rootOptions) *cobra.Command {
	var (
		params []string
		delta  float64
	)
	cmd := &cobra.Command{
		Use:   "tornado",
		Short: "Rank parameters by their effect on LCOE",
		Long: `Tornado moves each parameter down and up by --delta percent of its value and
ranks parameters by the spread of the resulting LCOE, widest first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, sens, err := opts.loadProject(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("params") {
				params = sens.Parameters
			}
			if !cmd.Flags().Changed("delta") {
				delta = sens.TornadoDeltaPct
			}
			ps := make([]model.Parameter, 0, len(params))
			for _, name := range params {
				p, err := model.ParseParameter(name)
				if err != nil {
					return err
				}
				ps = append(ps, p)
			}

			bars, baseLCOE, err := sensitivity.Tornado(in, lo.Uniq(ps), delta)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(w, map[string]any{
					"base_lcoe_per_kwh": baseLCOE,
					"delta_pct":         delta,
					"bars":              bars,
				})
			}
			fmt.Fprintf(w, "Base LCOE: %.4f per kWh (±%g%%)\n\n", baseLCOE, delta)
			fmt.Fprintf(w, "%-4s %-18s %-12s %-12s %-10s\n", "rank", "parameter", "low", "high", "spread")
			for i, b := range bars {
				fmt.Fprintf(w, "%-4d %-18s %-12.4f %-12.4f %-10.4f\n", i+1, b.Parameter, b.LowLCOE, b.HighLCOE, b.Spread)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&params, "params", nil, "Parameters to rank (default: all)")
	cmd.Flags().Float64Var(&delta, "delta", 0, "Perturbation in percent of each value (default 20)")
	return cmd
}
