package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campaignhq/campaign-studio-backend/internal/models"
	"github.com/campaignhq/campaign-studio-backend/internal/services"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
}

func NewCampaignHandler(db *gorm.DB, artifacts *services.ArtifactService) *CampaignHandler {
	return &CampaignHandler{
		campaignService: services.NewCampaignService(db, artifacts),
	}
}

// CreateCampaign godoc
// @Summary Create a new campaign
// @Description Create a new campaign. Channel accepts aliases (mail, text, instagram, ...) and is normalized.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateCampaignRequest true "Create campaign request"
// @Success 201 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns [post]
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req models.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	campaign, err := h.campaignService.CreateCampaign(&req)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create campaign", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, services.ToResponse(campaign))
}

// ListCampaigns godoc
// @Summary List campaigns
// @Description List active campaigns, optionally filtered by a text query and channel. Archived campaigns are hidden.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param q query string false "Substring filter over name, audience and goal"
// @Param channel query string false "Channel filter"
// @Success 200 {array} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns [get]
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	campaigns, err := h.campaignService.ListCampaigns(c.Query("q"), c.Query("channel"))
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list campaigns", "details": err.Error()})
		return
	}

	responses := make([]*models.CampaignResponse, 0, len(campaigns))
	for _, campaign := range campaigns {
		responses = append(responses, services.ToResponse(campaign))
	}
	c.JSON(http.StatusOK, responses)
}

// GetCampaign godoc
// @Summary Get campaign by ID
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.CampaignResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [get]
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaign, err := h.campaignService.GetCampaign(c.Param("id"))
	if err != nil {
		respondCampaignError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.ToResponse(campaign))
}

// UpdateCampaign godoc
// @Summary Update a campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param request body models.UpdateCampaignRequest true "Update campaign request"
// @Success 200 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [put]
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	var req models.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	campaign, err := h.campaignService.UpdateCampaign(c.Param("id"), &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update campaign", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, services.ToResponse(campaign))
}

// ArchiveCampaign godoc
// @Summary Archive a campaign
// @Description Soft-delete a campaign. It disappears from listings but its data and artifacts are kept.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [delete]
func (h *CampaignHandler) ArchiveCampaign(c *gin.Context) {
	if err := h.campaignService.ArchiveCampaign(c.Param("id")); err != nil {
		respondCampaignError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign archived"})
}

// GetResults godoc
// @Summary Campaign results summary
// @Description Report which artifacts exist and how many publishes went out for the campaign.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.ResultsSummary
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/results [get]
func (h *CampaignHandler) GetResults(c *gin.Context) {
	summary, err := h.campaignService.Results(c.Param("id"))
	if err != nil {
		respondCampaignError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func respondCampaignError(c *gin.Context, err error) {
	if strings.Contains(err.Error(), "not found") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Request failed", "details": err.Error()})
}

func isValidationError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "required") ||
		strings.Contains(msg, "unknown channel") ||
		strings.Contains(msg, "must be")
}
