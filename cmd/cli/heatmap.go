package main

import (
	"fmt"

	"lcoe-calculator/internal/model"
	"lcoe-calculator/internal/sensitivity"

	"github.com/spf13/cobra"
)

func newHeatmapCmd(opts *rootOptions) *cobra.Command {
	var (
		xName, yName     string
		xValues, yValues []float64
		points           int
	)
	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Evaluate LCOE over a grid of two parameters",
		Long: `Heatmap evaluates LCOE for every pair of --x and --y values. Axes without
explicit values span ±50% of the project's value.

Example:
  lcoe heatmap --config examples/config.yaml --x discount_rate --y capex_per_mw --points 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, sens, err := opts.loadProject(cmd)
			if err != nil {
				return err
			}
			if err := in.Validate(); err != nil {
				return err
			}
			xp, err := model.ParseParameter(xName)
			if err != nil {
				return err
			}
			yp, err := model.ParseParameter(yName)
			if err != nil {
				return err
			}
			n := points
			if !cmd.Flags().Changed("points") {
				n = sens.SweepPoints
			}
			xs, err := axis(in, xp, xValues, 0, 0, n, false)
			if err != nil {
				return err
			}
			ys, err := axis(in, yp, yValues, 0, 0, n, false)
			if err != nil {
				return err
			}

			grid, err := sensitivity.Heatmap(in, xp, xs, yp, ys)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if opts.jsonOutput {
				cells := make([][]pointJSON, len(grid.Cells))
				for y, row := range grid.Cells {
					cells[y] = make([]pointJSON, len(row))
					for x, c := range row {
						cells[y][x] = toPointJSON(c)
					}
				}
				return writeJSON(w, map[string]any{
					"x_parameter": grid.XParam,
					"y_parameter": grid.YParam,
					"x_values":    grid.XValues,
					"y_values":    grid.YValues,
					"cells":       cells,
					"min":         grid.Min(),
					"max":         grid.Max(),
				})
			}

			fmt.Fprintf(w, "LCOE per kWh; rows %s, columns %s\n\n", grid.YParam, grid.XParam)
			fmt.Fprintf(w, "%-14s", "")
			for _, x := range grid.XValues {
				fmt.Fprintf(w, " %-10.4g", x)
			}
			fmt.Fprintln(w)
			for y, row := range grid.Cells {
				fmt.Fprintf(w, "%-14.6g", grid.YValues[y])
				for _, c := range row {
					if c.OK() {
						fmt.Fprintf(w, " %-10.4f", c.LCOEPerKWh())
					} else {
						fmt.Fprintf(w, " %-10s", "-")
					}
				}
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "\nmin %.4f  max %.4f\n", grid.Min(), grid.Max())
			return nil
		},
	}
	cmd.Flags().StringVar(&xName, "x", "", "Column parameter")
	cmd.Flags().StringVar(&yName, "y", "", "Row parameter")
	cmd.Flags().Float64SliceVar(&xValues, "x-values", nil, "Explicit column values")
	cmd.Flags().Float64SliceVar(&yValues, "y-values", nil, "Explicit row values")
	cmd.Flags().IntVar(&points, "points", 0, "Points per axis when values are not given")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")
	return cmd
}
