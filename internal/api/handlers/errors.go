package handlers

import (
	"errors"
	"net/http"

	"lcoe-calculator/internal/api/models"
	"lcoe-calculator/internal/lcoe"
	"lcoe-calculator/internal/model"

	"github.com/gin-gonic/gin"
)

var errPresetNotFound = errors.New("preset not found")

func badRequest(c *gin.Context, code string, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

// writeEngineError maps engine and resolution errors onto the API error envelope.
func writeEngineError(c *gin.Context, err error) {
	var inputErr *model.InputError
	switch {
	case errors.Is(err, errPresetNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "PRESET_NOT_FOUND", Message: err.Error()},
		})
	case errors.As(err, &inputErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_INPUT",
				Message: err.Error(),
				Details: map[string]interface{}{"field": inputErr.Field},
			},
		})
	case errors.Is(err, lcoe.ErrInvalidInput):
		badRequest(c, "INVALID_INPUT", err)
	case errors.Is(err, lcoe.ErrDegenerateResult):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "DEGENERATE_RESULT", Message: err.Error()},
		})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: err.Error()},
		})
	}
}
