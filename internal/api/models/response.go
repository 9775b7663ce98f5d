package models

// Result status values.
const (
	StatusComputed   = "computed"
	StatusDegenerate = "degenerate"
	StatusInvalid    = "invalid"
)

// LCOEResponse represents the response from a single evaluation
type LCOEResponse struct {
	ID              string      `json:"id"`
	Status          string      `json:"status"`
	Degenerate      bool        `json:"degenerate"`
	Summary         LCOESummary `json:"summary"`
	AnnualCashFlows []float64   `json:"annual_cash_flows"`
	Ledger          []YearRow   `json:"ledger,omitempty"`
	Warnings        []string    `json:"warnings,omitempty"`
}

// LCOESummary contains the headline figures. Currency totals are rounded to cents.
type LCOESummary struct {
	TotalCapex             float64 `json:"total_capex"`
	AnnualOpexYear0        float64 `json:"annual_opex_year0"`
	AnnualFinancingPayment float64 `json:"annual_financing_payment"`
	TotalOperatingCost     float64 `json:"total_operating_cost"`
	TotalFinancingCost     float64 `json:"total_financing_cost"`
	TotalCost              float64 `json:"total_cost"`
	PresentValueOfCosts    float64 `json:"present_value_of_costs"`
	TotalEnergyGenerated   float64 `json:"total_energy_generated"`
	LCOEPerMWh             float64 `json:"lcoe_per_mwh"`
	LCOEPerKWh             float64 `json:"lcoe_per_kwh"`
	CapacityUtilization    float64 `json:"capacity_utilization"`
}

// YearRow represents one project year in the cash-flow ledger
type YearRow struct {
	Year           int     `json:"year"`
	Opex           float64 `json:"opex"`
	Financing      float64 `json:"financing"`
	CashFlow       float64 `json:"cash_flow"`
	DiscountFactor float64 `json:"discount_factor"`
	PresentValue   float64 `json:"present_value"`
	EnergyMWh      float64 `json:"energy_mwh"`
}

// LedgerResponse is returned by the cash-flow retrieval endpoint
type LedgerResponse struct {
	ID     string    `json:"id"`
	Ledger []YearRow `json:"ledger"`
}

// SweepPoint is one trial of a sweep
type SweepPoint struct {
	Value      float64 `json:"value"`
	Status     string  `json:"status"`
	LCOEPerMWh float64 `json:"lcoe_per_mwh"`
	LCOEPerKWh float64 `json:"lcoe_per_kwh"`
	Error      string  `json:"error,omitempty"`
}

// SweepResponse represents the response from a range or discount sweep
type SweepResponse struct {
	Parameter string       `json:"parameter"`
	Points    []SweepPoint `json:"points"`
}

// TornadoBar represents one ranked parameter
type TornadoBar struct {
	Rank      int     `json:"rank"`
	Parameter string  `json:"parameter"`
	BaseValue float64 `json:"base_value"`
	LowValue  float64 `json:"low_value"`
	HighValue float64 `json:"high_value"`
	LowLCOE   float64 `json:"low_lcoe_per_kwh"`
	HighLCOE  float64 `json:"high_lcoe_per_kwh"`
	Spread    float64 `json:"spread"`
}

// TornadoResponse represents the response from a tornado ranking
type TornadoResponse struct {
	BaseLCOEPerKWh float64      `json:"base_lcoe_per_kwh"`
	DeltaPct       float64      `json:"delta_pct"`
	Bars           []TornadoBar `json:"bars"`
}

// HeatmapCell is one grid cell
type HeatmapCell struct {
	Status     string  `json:"status"`
	LCOEPerKWh float64 `json:"lcoe_per_kwh"`
	Error      string  `json:"error,omitempty"`
}

// HeatmapResponse represents a two-parameter grid. Cells[y][x].
type HeatmapResponse struct {
	XParameter string          `json:"x_parameter"`
	YParameter string          `json:"y_parameter"`
	XValues    []float64       `json:"x_values"`
	YValues    []float64       `json:"y_values"`
	Cells      [][]HeatmapCell `json:"cells"`
	Min        float64         `json:"min_lcoe_per_kwh"`
	Max        float64         `json:"max_lcoe_per_kwh"`
}

// PresetInfo represents information about a project preset
type PresetInfo struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	File  string      `json:"file"`
	Specs PresetSpecs `json:"specs"`
}

// PresetSpecs contains preset highlights
type PresetSpecs struct {
	Capacity        float64 `json:"capacity"`
	ProjectLifetime int     `json:"project_lifetime"`
	DiscountRate    float64 `json:"discount_rate"`
}

// ParameterInfo describes a sweepable parameter
type ParameterInfo struct {
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	Integer     bool   `json:"integer"`
	Description string `json:"description"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
