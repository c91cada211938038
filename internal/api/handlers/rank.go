package handlers

import (
	"fmt"
	"net/http"

	"bess-dashboard/internal/api/models"
	"bess-dashboard/internal/dashboard"
	"bess-dashboard/internal/model"

	"github.com/gin-gonic/gin"
)

// RankHandler handles ranking-related requests
type RankHandler struct {
	session *dashboard.Session
}

// NewRankHandler creates a new rank handler
func NewRankHandler(session *dashboard.Session) *RankHandler {
	return &RankHandler{session: session}
}

// parseMode reads the revenue metric from ?mode=.
func parseMode(c *gin.Context) (model.RevenueMetric, bool) {
	var req models.RevenueQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return "", false
	}
	metric, ok := model.ParseRevenueMetric(req.Mode)
	if !ok {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest,
			fmt.Sprintf("mode must be total or per_mw, got %q", req.Mode))
		return "", false
	}
	return metric, true
}

// RankRevenue handles GET /api/v1/revenue
func (h *RankHandler) RankRevenue(c *gin.Context) {
	metric, ok := parseMode(c)
	if !ok {
		return
	}
	ranked, err := h.session.RankedRevenue(c.Request.Context(), metric)
	if err != nil {
		respondErr(c, err)
		return
	}

	rankings := make([]models.Ranking, len(ranked))
	for i, r := range ranked {
		rankings[i] = models.Ranking{
			Rank:       r.Rank,
			Battery:    r.Resource,
			Value:      models.Num(r.Value),
			Total:      models.Num(r.Total),
			MaxPowerMW: models.Num(r.MaxPowerMW),
			TotalPerMW: models.Num(r.TotalPerMW),
		}
	}
	c.JSON(http.StatusOK, models.RankResponse{
		Mode:     string(metric),
		Label:    metric.Label(),
		Unit:     metric.Unit(),
		Rankings: rankings,
	})
}
