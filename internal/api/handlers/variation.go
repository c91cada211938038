package handlers

import (
	"net/http"

	"bess-dashboard/internal/analysis"
	"bess-dashboard/internal/api/models"
	"bess-dashboard/internal/dashboard"

	"github.com/gin-gonic/gin"
)

// VariationHandler serves the cross-battery price variation summaries
type VariationHandler struct {
	session *dashboard.Session
}

func NewVariationHandler(session *dashboard.Session) *VariationHandler {
	return &VariationHandler{session: session}
}

// bindKind reads the :kind path parameter.
func bindKind(c *gin.Context) (dashboard.VariationKind, bool) {
	var uri models.VariationURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return "", false
	}
	kind, err := dashboard.ParseVariationKind(uri.Kind)
	if err != nil {
		respondErr(c, err)
		return "", false
	}
	return kind, true
}

// GetVariation handles GET /api/v1/variation/:kind
func (h *VariationHandler) GetVariation(c *gin.Context) {
	kind, ok := bindKind(c)
	if !ok {
		return
	}
	series, err := h.session.Variation(kind)
	if err != nil {
		respondErr(c, err)
		return
	}

	summaries := analysis.SummarizeSeries(series...)
	out := make([]models.Summary, len(summaries))
	for i, s := range summaries {
		out[i] = models.Summary{
			Name:   s.Name,
			Count:  s.Count,
			Min:    models.Num(s.Min),
			P25:    models.Num(s.P25),
			Median: models.Num(s.Median),
			P75:    models.Num(s.P75),
			Max:    models.Num(s.Max),
			Mean:   models.Num(s.Mean),
		}
	}
	c.JSON(http.StatusOK, models.VariationResponse{Kind: string(kind), Series: out})
}
