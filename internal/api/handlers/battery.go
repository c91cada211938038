package handlers

import (
	"fmt"
	"net/http"

	"bess-dashboard/internal/api/models"
	"bess-dashboard/internal/chart"
	"bess-dashboard/internal/dashboard"
	"bess-dashboard/internal/model"

	"github.com/gin-gonic/gin"
)

// BatteryHandler handles battery-related requests
type BatteryHandler struct {
	session *dashboard.Session
}

// NewBatteryHandler creates a new battery handler
func NewBatteryHandler(session *dashboard.Session) *BatteryHandler {
	return &BatteryHandler{session: session}
}

// ListBatteries handles GET /api/v1/batteries
func (h *BatteryHandler) ListBatteries(c *gin.Context) {
	res, err := h.session.NewResources(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, models.BatteriesResponse{
		Batteries:    h.session.Resources(),
		Default:      h.session.DefaultResource(),
		NewBatteries: res.New,
		Unobserved:   res.Unobserved,
		OnlineSince:  res.OnlineSince,
	})
}

// GetStatus handles GET /api/v1/batteries/:name/status
func (h *BatteryHandler) GetStatus(c *gin.Context) {
	var uri models.BatteryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}
	runs, err := h.session.StatusTimeline(uri.Name)
	if err != nil {
		respondErr(c, err)
		return
	}

	out := make([]models.StatusRun, len(runs))
	for i, r := range runs {
		clr, err := chart.StatusColor(r.Status)
		if err != nil {
			respondErr(c, err)
			return
		}
		out[i] = models.StatusRun{
			Status: string(r.Status),
			Color:  fmt.Sprintf("#%02x%02x%02x", clr.R, clr.G, clr.B),
			Start:  r.Start,
			End:    r.End,
			Hours:  r.Hours,
		}
	}
	c.JSON(http.StatusOK, models.StatusResponse{Battery: uri.Name, Runs: out})
}

// GetRevenue handles GET /api/v1/batteries/:name/revenue
func (h *BatteryHandler) GetRevenue(c *gin.Context) {
	var uri models.BatteryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return
	}
	row, err := h.session.ResourceRevenue(c.Request.Context(), uri.Name)
	if err != nil {
		respondErr(c, err)
		return
	}

	items := make([]models.LineItem, 0, model.NumLineItems)
	for _, item := range model.LineItems {
		items = append(items, models.LineItem{Name: item.String(), Value: models.Num(row.Items[item])})
	}
	c.JSON(http.StatusOK, models.BatteryRevenueResponse{
		Battery:    row.Resource,
		Items:      items,
		Total:      models.Num(row.Total),
		MaxPowerMW: models.Num(row.MaxPowerMW),
		TotalPerMW: models.Num(row.TotalPerMW),
	})
}
