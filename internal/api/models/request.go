package models

// ProjectRequest carries project parameters. Omitted (null) fields fall back to
// the preset named by PresetFile, when one is given; an explicit 0 overrides it.
type ProjectRequest struct {
	Name             string   `json:"name,omitempty"`
	Capacity         *float64 `json:"capacity,omitempty"`
	EnergyGeneration *float64 `json:"energy_generation,omitempty"`
	CapexPerMW       *float64 `json:"capex_per_mw,omitempty"`
	OpexPercent      *float64 `json:"opex_percent,omitempty"`
	InterestRate     *float64 `json:"interest_rate,omitempty"`
	LoanTenure       *int     `json:"loan_tenure,omitempty" binding:"omitempty,gte=0,lte=1000"`
	ProjectLifetime  *int     `json:"project_lifetime,omitempty" binding:"omitempty,gte=0,lte=1000"`
	DiscountRate     *float64 `json:"discount_rate,omitempty"`
	FinancingModel   string   `json:"financing_model,omitempty" binding:"omitempty,oneof=simple_interest amortizing"`
}

// EvaluateRequest represents the request body for a single LCOE evaluation
type EvaluateRequest struct {
	PresetFile    string         `json:"preset_file,omitempty"`
	Project       ProjectRequest `json:"project"`
	IncludeLedger bool           `json:"include_ledger,omitempty"`
}

// AxisRequest describes the values for one swept parameter. Values wins over
// Start/End/Points; when all are empty the axis spans ±50% of the base value.
type AxisRequest struct {
	Parameter string    `json:"parameter" binding:"required"`
	Values    []float64 `json:"values,omitempty" binding:"omitempty,max=10000"`
	Start     float64   `json:"start,omitempty"`
	End       float64   `json:"end,omitempty"`
	Points    int       `json:"points,omitempty" binding:"omitempty,min=1,max=10000"`
}

// SweepRequest runs a single-parameter range sweep
type SweepRequest struct {
	PresetFile string         `json:"preset_file,omitempty"`
	Project    ProjectRequest `json:"project"`
	Axis       AxisRequest    `json:"axis"`
}

// DiscountSweepRequest sweeps the discount rate in fixed steps
type DiscountSweepRequest struct {
	PresetFile string         `json:"preset_file,omitempty"`
	Project    ProjectRequest `json:"project"`
	From       float64        `json:"from"`
	To         float64        `json:"to"`
	Step       float64        `json:"step" binding:"omitempty,gt=0"`
}

// TornadoRequest ranks parameters by their ±DeltaPct effect on LCOE
type TornadoRequest struct {
	PresetFile string         `json:"preset_file,omitempty"`
	Project    ProjectRequest `json:"project"`
	Parameters []string       `json:"parameters,omitempty"`
	DeltaPct   float64        `json:"delta_pct,omitempty" binding:"omitempty,gt=0,lt=100"`
}

// HeatmapRequest evaluates a two-parameter grid
type HeatmapRequest struct {
	PresetFile string         `json:"preset_file,omitempty"`
	Project    ProjectRequest `json:"project"`
	X          AxisRequest    `json:"x"`
	Y          AxisRequest    `json:"y"`
}
