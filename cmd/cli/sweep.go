package main

import (
	"errors"
	"fmt"
	"io"

	"lcoe-calculator/internal/model"
	"lcoe-calculator/internal/sensitivity"

	"github.com/spf13/cobra"
)

const defaultRangePct = 50.0

func newSweepCmd(opts *rootOptions) *cobra.Command {
	var (
		param    string
		values   []float64
		from, to float64
		points   int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate LCOE across a range of one parameter",
		Long: `Sweep varies one parameter and evaluates LCOE at each value.

Values come from --values, or --from/--to/--points, or default to ±50% of the
project's value for the parameter.

Example:
  lcoe sweep --config examples/config.yaml --param capex_per_mw --points 11`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, sens, err := opts.loadProject(cmd)
			if err != nil {
				return err
			}
			if err := in.Validate(); err != nil {
				return err
			}
			p, err := model.ParseParameter(param)
			if err != nil {
				return err
			}
			n := points
			if !cmd.Flags().Changed("points") {
				n = sens.SweepPoints
			}
			xs, err := axis(in, p, values, from, to, n, cmd.Flags().Changed("from") || cmd.Flags().Changed("to"))
			if err != nil {
				return err
			}
			pts, err := sensitivity.Sweep(in, p, xs)
			if err != nil {
				return err
			}
			return renderPoints(cmd.OutOrStdout(), opts.jsonOutput, p, pts)
		},
	}
	cmd.Flags().StringVarP(&param, "param", "p", "", "Parameter to vary (see 'lcoe sweep --help')")
	cmd.Flags().Float64SliceVar(&values, "values", nil, "Explicit comma-separated values")
	cmd.Flags().Float64Var(&from, "from", 0, "Range start")
	cmd.Flags().Float64Var(&to, "to", 0, "Range end")
	cmd.Flags().IntVar(&points, "points", 0, "Number of evenly spaced points")
	_ = cmd.MarkFlagRequired("param")
	return cmd
}

func newDiscountCmd(opts *rootOptions) *cobra.Command {
	var from, to, step float64
	cmd := &cobra.Command{
		Use:   "discount",
		Short: "Sweep the discount rate in fixed steps",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, sens, err := opts.loadProject(cmd)
			if err != nil {
				return err
			}
			if err := in.Validate(); err != nil {
				return err
			}
			f := cmd.Flags()
			if !f.Changed("from") {
				from = sens.DiscountFrom
			}
			if !f.Changed("to") {
				to = sens.DiscountTo
			}
			if !f.Changed("step") {
				step = sens.DiscountStep
			}
			pts, err := sensitivity.DiscountRateSweep(in, from, to, step)
			if err != nil {
				return err
			}
			return renderPoints(cmd.OutOrStdout(), opts.jsonOutput, model.ParamDiscountRate, pts)
		},
	}
	cmd.Flags().Float64Var(&from, "from", 0, "First discount rate in percent (default from config, else 5)")
	cmd.Flags().Float64Var(&to, "to", 0, "Last discount rate in percent (default from config, else 15)")
	cmd.Flags().Float64Var(&step, "step", 0, "Step in percentage points (default from config, else 0.5)")
	return cmd
}

// axis picks sweep values: explicit values, then an explicit range, then ±50% of base.
func axis(in model.ProjectInputs, p model.Parameter, values []float64, from, to float64, n int, ranged bool) ([]float64, error) {
	switch {
	case len(values) > 0:
		return values, nil
	case ranged:
		if to < from {
			return nil, errors.New("--to must be >= --from")
		}
		return sensitivity.Linspace(from, to, n)
	default:
		return sensitivity.RangeAround(in, p, defaultRangePct, n)
	}
}

type pointJSON struct {
	Value      float64 `json:"value"`
	Status     string  `json:"status"`
	LCOEPerMWh float64 `json:"lcoe_per_mwh"`
	LCOEPerKWh float64 `json:"lcoe_per_kwh"`
	Error      string  `json:"error,omitempty"`
}

func toPointJSON(pt sensitivity.Point) pointJSON {
	out := pointJSON{Value: pt.Value}
	switch {
	case pt.Err != nil:
		out.Status, out.Error = "invalid", pt.Err.Error()
	case pt.Result.Degenerate:
		out.Status = "degenerate"
	default:
		out.Status = "computed"
		out.LCOEPerMWh = pt.Result.LCOEPerMWh
		out.LCOEPerKWh = pt.Result.LCOEPerKWh
	}
	return out
}

func renderPoints(w io.Writer, jsonOut bool, p model.Parameter, pts []sensitivity.Point) error {
	rows := make([]pointJSON, len(pts))
	for i, pt := range pts {
		rows[i] = toPointJSON(pt)
	}
	if jsonOut {
		return writeJSON(w, map[string]any{"parameter": p, "points": rows})
	}

	fmt.Fprintf(w, "%-18s %-12s %-14s %-10s\n", p, "status", "lcoe/MWh", "lcoe/kWh")
	for _, r := range rows {
		if r.Status != "computed" {
			fmt.Fprintf(w, "%-18g %-12s %s\n", r.Value, r.Status, r.Error)
			continue
		}
		fmt.Fprintf(w, "%-18g %-12s %-14.2f %-10.4f\n", r.Value, r.Status, r.LCOEPerMWh, r.LCOEPerKWh)
	}
	return nil
}
