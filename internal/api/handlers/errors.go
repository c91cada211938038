package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"bess-dashboard/internal/api/models"
	"bess-dashboard/internal/chart"
	"bess-dashboard/internal/dashboard"
	"bess-dashboard/internal/log"
	"bess-dashboard/internal/model"

	"github.com/gin-gonic/gin"
)

// Error codes returned in models.ErrorDetail.
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeUnknownResource = "UNKNOWN_RESOURCE"
	CodeUnknownStatus   = "UNKNOWN_STATUS"
	CodeNoData          = "NO_DATA"
	CodeReloadFailed    = "RELOAD_FAILED"
	CodeInternal        = "INTERNAL_ERROR"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// respondErr maps a pipeline error to its HTTP status and error code.
func respondErr(c *gin.Context, err error) {
	var statusErr *model.StatusError
	switch {
	case errors.Is(err, dashboard.ErrUnknownResource):
		respondError(c, http.StatusNotFound, CodeUnknownResource, err.Error())
	case errors.Is(err, dashboard.ErrUnknownKind):
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
	case errors.As(err, &statusErr):
		log.Ctx(c.Request.Context()).Error("unmapped resource status", slog.String("status", statusErr.Value))
		respondError(c, http.StatusInternalServerError, CodeUnknownStatus, err.Error())
	case errors.Is(err, chart.ErrNoData):
		respondError(c, http.StatusNotFound, CodeNoData, err.Error())
	default:
		log.Ctx(c.Request.Context()).Error("request failed", slog.Any("error", err))
		respondError(c, http.StatusInternalServerError, CodeInternal, fmt.Sprintf("failed: %v", err))
	}
}
