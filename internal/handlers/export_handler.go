package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campaignhq/campaign-studio-backend/internal/services"
)

type ExportHandler struct {
	campaignService *services.CampaignService
	exportService   *services.ExportService
}

func NewExportHandler(db *gorm.DB, artifacts *services.ArtifactService) *ExportHandler {
	return &ExportHandler{
		campaignService: services.NewCampaignService(db, artifacts),
		exportService:   services.NewExportService(artifacts),
	}
}

// ExportZip godoc
// @Summary Export the campaign as a zip bundle
// @Description Bundle the brief, all existing channel copy and a metadata summary into one archive.
// @Tags export
// @Produce application/zip
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {string} string
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/export.zip [get]
func (h *ExportHandler) ExportZip(c *gin.Context) {
	campaign, err := h.campaignService.GetCampaign(c.Param("id"))
	if err != nil {
		respondCampaignError(c, err)
		return
	}

	data, filename, err := h.exportService.BuildZip(campaign)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build export", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/zip", data)
}
