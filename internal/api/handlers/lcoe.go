package handlers

import (
	"net/http"

	"lcoe-calculator/internal/api/models"
	"lcoe-calculator/internal/data"
	"lcoe-calculator/internal/lcoe"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LCOEHandler handles single-project evaluations
type LCOEHandler struct {
	presets *PresetHandler
	cache   *data.ResultCache
	log     *zap.Logger
}

// NewLCOEHandler creates a new LCOE handler
func NewLCOEHandler(presets *PresetHandler, cache *data.ResultCache, log *zap.Logger) *LCOEHandler {
	return &LCOEHandler{presets: presets, cache: cache, log: log}
}

// Evaluate handles POST /api/v1/lcoe
func (h *LCOEHandler) Evaluate(c *gin.Context) {
	var req models.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	in, err := h.presets.Resolve(req.PresetFile, req.Project)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	res, id, err := h.cache.Evaluate(in)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	if res.Degenerate {
		h.log.Warn("degenerate evaluation", zap.String("id", id), zap.Strings("warnings", res.Warnings))
	}

	c.JSON(http.StatusOK, buildResponse(id, res, req.IncludeLedger))
}

// GetCashFlows handles GET /api/v1/lcoe/:id/cashflows
// Pass ?format=csv for a CSV download.
func (h *LCOEHandler) GetCashFlows(c *gin.Context) {
	id := c.Param("id")
	res, ok := h.cache.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "RESULT_NOT_FOUND",
				Message: "No cached result for this id; it may have expired. Re-run the evaluation.",
			},
		})
		return
	}

	if c.Query("format") == "csv" {
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="cashflows-`+id[:12]+`.csv"`)
		c.Status(http.StatusOK)
		if err := lcoe.WriteLedger(c.Writer, res.Ledger); err != nil {
			h.log.Error("write ledger csv", zap.String("id", id), zap.Error(err))
		}
		return
	}

	c.JSON(http.StatusOK, models.LedgerResponse{ID: id, Ledger: convertLedger(res.Ledger)})
}

func buildResponse(id string, res *lcoe.Result, includeLedger bool) models.LCOEResponse {
	status := models.StatusComputed
	if res.Degenerate {
		status = models.StatusDegenerate
	}
	resp := models.LCOEResponse{
		ID:         id,
		Status:     status,
		Degenerate: res.Degenerate,
		Summary: models.LCOESummary{
			TotalCapex:             lcoe.RoundMoney(res.TotalCapex),
			AnnualOpexYear0:        lcoe.RoundMoney(res.AnnualOpexYear0),
			AnnualFinancingPayment: lcoe.RoundMoney(res.AnnualFinancingPayment),
			TotalOperatingCost:     lcoe.RoundMoney(res.TotalOperatingCost),
			TotalFinancingCost:     lcoe.RoundMoney(res.TotalFinancingCost),
			TotalCost:              lcoe.RoundMoney(res.TotalCost),
			PresentValueOfCosts:    lcoe.RoundMoney(res.PresentValueOfCosts),
			TotalEnergyGenerated:   res.TotalEnergyGenerated,
			LCOEPerMWh:             res.LCOEPerMWh,
			LCOEPerKWh:             res.LCOEPerKWh,
			CapacityUtilization:    res.CapacityUtilization,
		},
		AnnualCashFlows: res.AnnualCashFlows,
		Warnings:        res.Warnings,
	}
	if includeLedger {
		resp.Ledger = convertLedger(res.Ledger)
	}
	return resp
}

func convertLedger(ledger []lcoe.YearRow) []models.YearRow {
	out := make([]models.YearRow, len(ledger))
	for i, r := range ledger {
		out[i] = models.YearRow{
			Year:           r.Year,
			Opex:           r.Opex,
			Financing:      r.Financing,
			CashFlow:       r.CashFlow,
			DiscountFactor: r.DiscountFactor,
			PresentValue:   r.PresentValue,
			EnergyMWh:      r.EnergyMWh,
		}
	}
	return out
}
