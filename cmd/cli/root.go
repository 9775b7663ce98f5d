package main

import (
	"encoding/json"
	"errors"
	"io"

	"lcoe-calculator/internal/config"
	"lcoe-calculator/internal/data"
	"lcoe-calculator/internal/model"

	"github.com/spf13/cobra"
)

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	configPath string
	inputPath  string
	jsonOutput bool

	project projectFlags
}

// projectFlags override individual project fields. Only flags the user set
// are applied, so an explicit zero replaces a non-zero file value.
type projectFlags struct {
	capacity         float64
	energyGeneration float64
	capexPerMW       float64
	opexPercent      float64
	interestRate     float64
	loanTenure       int
	projectLifetime  int
	discountRate     float64
	financing        string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "lcoe",
		Short: "Levelized cost of energy calculator for solar projects",
		Long: `lcoe evaluates the levelized cost of energy of a solar project and runs
sensitivity analyses around it.

Project inputs come from --config (YAML), --input (JSON) or individual flags.
Flags override values read from either file.

Example:
  lcoe evaluate --config examples/config.yaml
  lcoe tornado --input project.json --delta 10 --json`,
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "Path to YAML config")
	pf.StringVarP(&opts.inputPath, "input", "i", "", "Path to JSON project inputs")
	pf.BoolVar(&opts.jsonOutput, "json", false, "Output JSON instead of human-readable text")

	pf.Float64Var(&opts.project.capacity, "capacity", 0, "Capacity in MW")
	pf.Float64Var(&opts.project.energyGeneration, "energy", 0, "First-year energy generation in MWh")
	pf.Float64Var(&opts.project.capexPerMW, "capex", 0, "Capex rate (divided by capacity)")
	pf.Float64Var(&opts.project.opexPercent, "opex", 0, "First-year opex as percent of capex")
	pf.Float64Var(&opts.project.interestRate, "interest", 0, "Loan interest rate in percent")
	pf.IntVar(&opts.project.loanTenure, "tenure", 0, "Loan tenure in years")
	pf.IntVar(&opts.project.projectLifetime, "lifetime", 0, "Project lifetime in years")
	pf.Float64Var(&opts.project.discountRate, "discount", 0, "Discount rate in percent")
	pf.StringVar(&opts.project.financing, "financing", "", "Financing model: simple_interest or amortizing")

	cmd.AddCommand(
		newEvaluateCmd(opts),
		newSweepCmd(opts),
		newDiscountCmd(opts),
		newTornadoCmd(opts),
		newHeatmapCmd(opts),
		newExportCmd(opts),
	)
	return cmd
}

// loadProject resolves project inputs and sensitivity defaults for cmd.
func (o *rootOptions) loadProject(cmd *cobra.Command) (model.ProjectInputs, config.SensitivityConfig, error) {
	var (
		in   model.ProjectInputs
		sens config.SensitivityConfig
	)
	switch {
	case o.configPath != "" && o.inputPath != "":
		return in, sens, errors.New("--config and --input are mutually exclusive")
	case o.configPath != "":
		cfg, err := config.LoadUnchecked(o.configPath)
		if err != nil {
			return in, sens, err
		}
		in = cfg.Project.ToModelInputs()
		sens = cfg.Sensitivity
	case o.inputPath != "":
		p, err := data.LoadProjectJSON(o.inputPath)
		if err != nil {
			return in, sens, err
		}
		in = *p
	}

	f := cmd.Flags()
	p := o.project
	if f.Changed("capacity") {
		in.Capacity = p.capacity
	}
	if f.Changed("energy") {
		in.EnergyGeneration = p.energyGeneration
	}
	if f.Changed("capex") {
		in.CapexPerMW = p.capexPerMW
	}
	if f.Changed("opex") {
		in.OpexPercent = p.opexPercent
	}
	if f.Changed("interest") {
		in.InterestRate = p.interestRate
	}
	if f.Changed("tenure") {
		in.LoanTenure = p.loanTenure
	}
	if f.Changed("lifetime") {
		in.ProjectLifetime = p.projectLifetime
	}
	if f.Changed("discount") {
		in.DiscountRate = p.discountRate
	}
	if f.Changed("financing") {
		in.Financing = model.FinancingModel(p.financing)
	}
	return in, sens.WithDefaults(), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
