package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campaignhq/campaign-studio-backend/internal/models"
	"github.com/campaignhq/campaign-studio-backend/internal/services"
)

type RecipientHandler struct {
	campaignService  *services.CampaignService
	recipientService *services.RecipientService
}

func NewRecipientHandler(db *gorm.DB, artifacts *services.ArtifactService) *RecipientHandler {
	return &RecipientHandler{
		campaignService:  services.NewCampaignService(db, artifacts),
		recipientService: services.NewRecipientService(artifacts),
	}
}

type saveRecipientsRequest struct {
	Text string `json:"text" binding:"required"`
}

// GetRecipients godoc
// @Summary Get the campaign's recipient list
// @Tags recipients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/recipients [get]
func (h *RecipientHandler) GetRecipients(c *gin.Context) {
	campaign, ok := h.activeCampaign(c)
	if !ok {
		return
	}

	emails := h.recipientService.Load(campaign.ID)
	c.JSON(http.StatusOK, gin.H{"campaign_id": campaign.ID, "recipients": emails, "count": len(emails)})
}

// SaveRecipients godoc
// @Summary Replace the campaign's recipient list
// @Description Accepts either JSON with free text or a multipart file upload (plain text, CSV or .xlsx). Addresses are validated and deduplicated.
// @Tags recipients
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param request body saveRecipientsRequest false "Free text with addresses"
// @Param file formData file false "Recipient file"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/recipients [post]
func (h *RecipientHandler) SaveRecipients(c *gin.Context) {
	campaign, ok := h.activeCampaign(c)
	if !ok {
		return
	}

	var emails []string
	var err error

	if file, ferr := c.FormFile("file"); ferr == nil {
		emails, err = h.recipientService.SaveUpload(campaign.ID, file)
	} else {
		var req saveRecipientsRequest
		if berr := c.ShouldBindJSON(&req); berr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Provide a 'file' upload or a 'text' field", "details": berr.Error()})
			return
		}
		emails, err = h.recipientService.Save(campaign.ID, req.Text)
	}

	if err != nil {
		if err.Error() == "no valid email addresses found" {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recipients", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaign_id": campaign.ID, "recipients": emails, "count": len(emails)})
}

func (h *RecipientHandler) activeCampaign(c *gin.Context) (*models.Campaign, bool) {
	campaign, err := h.campaignService.GetActiveCampaign(c.Param("id"))
	if err != nil {
		respondCampaignError(c, err)
		return nil, false
	}
	return campaign, true
}
