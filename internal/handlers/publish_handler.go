package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campaignhq/campaign-studio-backend/internal/models"
	"github.com/campaignhq/campaign-studio-backend/internal/services"
	"github.com/campaignhq/campaign-studio-backend/internal/services/publisher"
)

type PublishHandler struct {
	campaignService *services.CampaignService
	publishService  *services.PublishService
}

func NewPublishHandler(db *gorm.DB, artifacts *services.ArtifactService, copywriter *services.CopywriterService, pub publisher.Publisher) *PublishHandler {
	contentService := services.NewContentService(db, artifacts, copywriter)
	recipientService := services.NewRecipientService(artifacts)
	return &PublishHandler{
		campaignService: services.NewCampaignService(db, artifacts),
		publishService:  services.NewPublishService(pub, contentService, recipientService),
	}
}

// PublishChannel godoc
// @Summary Publish one channel
// @Description Send the campaign's copy for a channel through the configured publisher. Copy is generated first when none exists.
// @Tags publish
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param channel query string false "Channel (defaults to the campaign's default channel)"
// @Param tone query string false "Tone used if copy must be generated"
// @Success 200 {object} models.PublishResult
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/publish [post]
func (h *PublishHandler) PublishChannel(c *gin.Context) {
	campaign, ok := h.activeCampaign(c)
	if !ok {
		return
	}

	channel := c.Query("channel")
	if channel == "" {
		channel = campaign.DefaultChannel
	}

	result, err := h.publishService.PublishChannel(c.Request.Context(), campaign, channel, c.Query("tone"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// PublishAll godoc
// @Summary Publish every channel
// @Description Publish the campaign's copy for all channels. Failures are reported per channel.
// @Tags publish
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param tone query string false "Tone used if copy must be generated"
// @Success 200 {array} models.ChannelPublishResult
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/publish-all [post]
func (h *PublishHandler) PublishAll(c *gin.Context) {
	campaign, ok := h.activeCampaign(c)
	if !ok {
		return
	}

	results, err := h.publishService.PublishAll(c.Request.Context(), campaign, c.Query("tone"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, results)
}

// CheckEmailIntegration godoc
// @Summary Verify the email backend
// @Description Run a sandboxed connection check against the configured mail provider without delivering anything.
// @Tags publish
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/v1/integration/check-email [post]
func (h *PublishHandler) CheckEmailIntegration(c *gin.Context) {
	if err := h.publishService.CheckEmailIntegration(c.Request.Context()); err != nil {
		if h.publishService.Mode() != "sendgrid" {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "Email integration check failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email integration OK", "mode": h.publishService.Mode()})
}

func (h *PublishHandler) activeCampaign(c *gin.Context) (*models.Campaign, bool) {
	campaign, err := h.campaignService.GetActiveCampaign(c.Param("id"))
	if err != nil {
		respondCampaignError(c, err)
		return nil, false
	}
	return campaign, true
}
