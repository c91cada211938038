package handlers

import (
	"bytes"
	"net/http"

	"bess-dashboard/internal/api/models"
	"bess-dashboard/internal/chart"
	"bess-dashboard/internal/dashboard"

	"github.com/gin-gonic/gin"
)

// ChartHandler renders the dashboard charts as PNG
type ChartHandler struct {
	session *dashboard.Session
}

func NewChartHandler(session *dashboard.Session) *ChartHandler {
	return &ChartHandler{session: session}
}

// writePNG renders into a buffer first so a failed render still gets a JSON
// error instead of a truncated image.
func writePNG(c *gin.Context, ch *chart.Chart, err error) {
	if err != nil {
		respondErr(c, err)
		return
	}
	var buf bytes.Buffer
	if err := ch.WritePNG(&buf); err != nil {
		respondErr(c, err)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func bindBattery(c *gin.Context) (string, bool) {
	var uri models.BatteryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
		return "", false
	}
	return uri.Name, true
}

// Status handles GET /charts/status/:name
func (h *ChartHandler) Status(c *gin.Context) {
	name, ok := bindBattery(c)
	if !ok {
		return
	}
	ch, err := h.session.StatusChart(name)
	writePNG(c, ch, err)
}

// Waterfall handles GET /charts/waterfall/:name
func (h *ChartHandler) Waterfall(c *gin.Context) {
	name, ok := bindBattery(c)
	if !ok {
		return
	}
	ch, err := h.session.WaterfallChart(c.Request.Context(), name)
	writePNG(c, ch, err)
}

// EnergyPrice handles GET /charts/energy-price
func (h *ChartHandler) EnergyPrice(c *gin.Context) {
	ch, err := h.session.EnergyPriceChart()
	writePNG(c, ch, err)
}

// Variation handles GET /charts/variation/:kind
func (h *ChartHandler) Variation(c *gin.Context) {
	kind, ok := bindKind(c)
	if !ok {
		return
	}
	ch, err := h.session.VariationChart(kind)
	writePNG(c, ch, err)
}

// Revenue handles GET /charts/revenue
func (h *ChartHandler) Revenue(c *gin.Context) {
	metric, ok := parseMode(c)
	if !ok {
		return
	}
	ch, err := h.session.RevenueChart(c.Request.Context(), metric)
	writePNG(c, ch, err)
}
