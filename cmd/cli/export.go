package main

import (
	"fmt"
	"os"
	"path/filepath"

	"lcoe-calculator/internal/lcoe"

	"github.com/spf13/cobra"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the per-year cash-flow ledger to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _, err := opts.loadProject(cmd)
			if err != nil {
				return err
			}
			res, err := lcoe.Evaluate(in)
			if err != nil {
				return err
			}
			// ensure output dir exists
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return err
			}
			if err := lcoe.WriteLedgerCSV(outPath, res.Ledger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(res.Ledger), outPath)
			if !res.Degenerate {
				fmt.Fprintf(cmd.OutOrStdout(), "LCOE=%.4f per kWh\n", res.LCOEPerKWh)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "results/cashflows.csv", "Output CSV path")
	return cmd
}
