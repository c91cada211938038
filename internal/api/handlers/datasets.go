package handlers

import (
	"log/slog"
	"net/http"

	"bess-dashboard/internal/api/models"
	"bess-dashboard/internal/dashboard"
	"bess-dashboard/internal/log"

	"github.com/gin-gonic/gin"
)

// DatasetHandler describes and reloads the loaded datasets
type DatasetHandler struct {
	session *dashboard.Session
}

func NewDatasetHandler(session *dashboard.Session) *DatasetHandler {
	return &DatasetHandler{session: session}
}

// ListDatasets handles GET /api/v1/datasets
func (h *DatasetHandler) ListDatasets(c *gin.Context) {
	ds := h.session.Datasets()
	out := []models.DatasetInfo{}
	for _, name := range ds.Names() {
		f, err := ds.Get(name)
		if err != nil {
			respondErr(c, err)
			return
		}
		out = append(out, models.DatasetInfo{
			Name:      name,
			Rows:      f.Len(),
			Resources: len(f.Resources()),
			Columns:   f.Columns(),
		})
	}
	c.JSON(http.StatusOK, models.DatasetsResponse{
		Fingerprint: ds.Fingerprint,
		LoadedAt:    h.session.LoadedAt(),
		Datasets:    out,
	})
}

// Reload handles POST /api/v1/reload
func (h *DatasetHandler) Reload(c *gin.Context) {
	changed, err := h.session.Reload(c.Request.Context())
	if err != nil {
		log.Ctx(c.Request.Context()).Error("reload failed", slog.Any("error", err))
		respondError(c, http.StatusInternalServerError, CodeReloadFailed, err.Error())
		return
	}
	c.JSON(http.StatusOK, models.ReloadResponse{
		Changed:     changed,
		Fingerprint: h.session.Datasets().Fingerprint,
	})
}
