package handlers

import (
	"net/http"

	"lcoe-calculator/internal/api/models"
	"lcoe-calculator/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

var parameterDocs = map[model.Parameter]struct{ unit, description string }{
	model.ParamCapacity:         {"MW", "Installed nameplate capacity"},
	model.ParamEnergyGeneration: {"MWh/yr", "First-year energy generation before degradation"},
	model.ParamCapexPerMW:       {"currency", "Capital expenditure rate; divided by capacity to give total capex"},
	model.ParamOpexPercent:      {"% of capex", "First-year operating cost, escalated 5% per year"},
	model.ParamInterestRate:     {"% per year", "Loan interest rate"},
	model.ParamLoanTenure:       {"years", "Years during which financing payments are charged"},
	model.ParamProjectLifetime:  {"years", "Number of operating years evaluated"},
	model.ParamDiscountRate:     {"% per year", "Rate used to discount annual cash flows"},
}

// ParameterHandler describes the parameters a sweep can vary
type ParameterHandler struct{}

// NewParameterHandler creates a new parameter handler
func NewParameterHandler() *ParameterHandler {
	return &ParameterHandler{}
}

// ListParameters handles GET /api/v1/parameters
func (h *ParameterHandler) ListParameters(c *gin.Context) {
	c.JSON(http.StatusOK, lo.Map(model.AllParameters(), func(p model.Parameter, _ int) models.ParameterInfo {
		doc := parameterDocs[p]
		return models.ParameterInfo{
			Name:        string(p),
			Unit:        doc.unit,
			Integer:     p.IsInteger(),
			Description: doc.description,
		}
	}))
}
