package handlers

import (
	"fmt"
	"net/http"

	"lcoe-calculator/internal/api/models"
	"lcoe-calculator/internal/model"
	"lcoe-calculator/internal/sensitivity"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	defaultAxisPoints  = 20
	defaultAxisPercent = 50.0
	defaultTornadoPct  = 20.0
)

// SensitivityHandler serves sweeps, tornado rankings and heatmaps
type SensitivityHandler struct {
	presets *PresetHandler
	log     *zap.Logger
}

// NewSensitivityHandler creates a new sensitivity handler
func NewSensitivityHandler(presets *PresetHandler, log *zap.Logger) *SensitivityHandler {
	return &SensitivityHandler{presets: presets, log: log}
}

// Sweep handles POST /api/v1/sensitivity/sweep
func (h *SensitivityHandler) Sweep(c *gin.Context) {
	var req models.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}
	base, err := h.presets.Resolve(req.PresetFile, req.Project)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	if err := base.Validate(); err != nil {
		writeEngineError(c, err)
		return
	}
	param, values, err := axisValues(base, req.Axis)
	if err != nil {
		badRequest(c, "INVALID_AXIS", err)
		return
	}

	points, err := sensitivity.Sweep(base, param, values)
	if err != nil {
		badRequest(c, "INVALID_AXIS", err)
		return
	}
	c.JSON(http.StatusOK, models.SweepResponse{Parameter: string(param), Points: convertPoints(points)})
}

// DiscountSweep handles POST /api/v1/sensitivity/discount
func (h *SensitivityHandler) DiscountSweep(c *gin.Context) {
	var req models.DiscountSweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}
	base, err := h.presets.Resolve(req.PresetFile, req.Project)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	if err := base.Validate(); err != nil {
		writeEngineError(c, err)
		return
	}
	if req.Step == 0 {
		req.From, req.To, req.Step = 5, 15, 0.5
	}

	points, err := sensitivity.DiscountRateSweep(base, req.From, req.To, req.Step)
	if err != nil {
		badRequest(c, "INVALID_RANGE", err)
		return
	}
	c.JSON(http.StatusOK, models.SweepResponse{
		Parameter: string(model.ParamDiscountRate),
		Points:    convertPoints(points),
	})
}

// Tornado handles POST /api/v1/sensitivity/tornado
func (h *SensitivityHandler) Tornado(c *gin.Context) {
	var req models.TornadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}
	base, err := h.presets.Resolve(req.PresetFile, req.Project)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	params, err := parseParameters(req.Parameters)
	if err != nil {
		badRequest(c, "INVALID_PARAMETER", err)
		return
	}
	delta := req.DeltaPct
	if delta == 0 {
		delta = defaultTornadoPct
	}

	bars, baseLCOE, err := sensitivity.Tornado(base, params, delta)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TornadoResponse{
		BaseLCOEPerKWh: baseLCOE,
		DeltaPct:       delta,
		Bars: lo.Map(bars, func(b sensitivity.Bar, i int) models.TornadoBar {
			return models.TornadoBar{
				Rank:      i + 1,
				Parameter: string(b.Parameter),
				BaseValue: b.BaseValue,
				LowValue:  b.LowValue,
				HighValue: b.HighValue,
				LowLCOE:   b.LowLCOE,
				HighLCOE:  b.HighLCOE,
				Spread:    b.Spread,
			}
		}),
	})
}

// Heatmap handles POST /api/v1/sensitivity/heatmap
func (h *SensitivityHandler) Heatmap(c *gin.Context) {
	var req models.HeatmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}
	base, err := h.presets.Resolve(req.PresetFile, req.Project)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	if err := base.Validate(); err != nil {
		writeEngineError(c, err)
		return
	}
	xParam, xs, err := axisValues(base, req.X)
	if err != nil {
		badRequest(c, "INVALID_AXIS", err)
		return
	}
	yParam, ys, err := axisValues(base, req.Y)
	if err != nil {
		badRequest(c, "INVALID_AXIS", err)
		return
	}

	grid, err := sensitivity.Heatmap(base, xParam, xs, yParam, ys)
	if err != nil {
		badRequest(c, "INVALID_AXIS", err)
		return
	}

	cells := make([][]models.HeatmapCell, len(grid.Cells))
	for y, row := range grid.Cells {
		cells[y] = lo.Map(row, func(p sensitivity.Point, _ int) models.HeatmapCell {
			sp := convertPoint(p)
			return models.HeatmapCell{Status: sp.Status, LCOEPerKWh: sp.LCOEPerKWh, Error: sp.Error}
		})
	}

	c.JSON(http.StatusOK, models.HeatmapResponse{
		XParameter: string(grid.XParam),
		YParameter: string(grid.YParam),
		XValues:    grid.XValues,
		YValues:    grid.YValues,
		Cells:      cells,
		Min:        grid.Min(),
		Max:        grid.Max(),
	})
}

// axisValues turns an axis request into concrete values. Explicit values win,
// then start/end/points, then ±50% around the base value.
func axisValues(base model.ProjectInputs, axis models.AxisRequest) (model.Parameter, []float64, error) {
	param, err := model.ParseParameter(axis.Parameter)
	if err != nil {
		return "", nil, err
	}
	if len(axis.Values) > 0 {
		return param, axis.Values, nil
	}
	n := axis.Points
	if n == 0 {
		n = defaultAxisPoints
	}
	if axis.Start == 0 && axis.End == 0 {
		values, err := sensitivity.RangeAround(base, param, defaultAxisPercent, n)
		return param, values, err
	}
	if axis.End < axis.Start {
		return "", nil, fmt.Errorf("axis %s: end must be >= start", axis.Parameter)
	}
	values, err := sensitivity.Linspace(axis.Start, axis.End, n)
	return param, values, err
}

func parseParameters(names []string) ([]model.Parameter, error) {
	out := make([]model.Parameter, 0, len(names))
	for _, n := range names {
		p, err := model.ParseParameter(n)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return lo.Uniq(out), nil
}

func convertPoints(points []sensitivity.Point) []models.SweepPoint {
	return lo.Map(points, func(p sensitivity.Point, _ int) models.SweepPoint {
		return convertPoint(p)
	})
}

func convertPoint(p sensitivity.Point) models.SweepPoint {
	sp := models.SweepPoint{Value: p.Value}
	switch {
	case p.Err != nil:
		sp.Status = models.StatusInvalid
		sp.Error = p.Err.Error()
	case p.Result.Degenerate:
		sp.Status = models.StatusDegenerate
	default:
		sp.Status = models.StatusComputed
		sp.LCOEPerMWh = p.Result.LCOEPerMWh
		sp.LCOEPerKWh = p.Result.LCOEPerKWh
	}
	return sp
}
