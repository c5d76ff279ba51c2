package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/campaignhq/campaign-studio-backend/internal/models"
	"github.com/campaignhq/campaign-studio-backend/internal/services"
)

type ContentHandler struct {
	campaignService *services.CampaignService
	contentService  *services.ContentService
	copywriter      *services.CopywriterService
	artifacts       *services.ArtifactService
}

func NewContentHandler(db *gorm.DB, artifacts *services.ArtifactService, copywriter *services.CopywriterService) *ContentHandler {
	return &ContentHandler{
		campaignService: services.NewCampaignService(db, artifacts),
		contentService:  services.NewContentService(db, artifacts, copywriter),
		copywriter:      copywriter,
		artifacts:       artifacts,
	}
}

type saveContentRequest struct {
	Channel string `json:"channel" binding:"required" example:"Email"`
	Text    string `json:"text" binding:"required"`
}

type chooseIdeaRequest struct {
	Channel string `json:"channel" binding:"required" example:"Email"`
	Tone    string `json:"tone" example:"friendly"`
	Idea    string `json:"idea" binding:"required"`
}

// GetBrief godoc
// @Summary Get the campaign brief
// @Description Return the stored brief, generating one on first access.
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/brief [get]
func (h *ContentHandler) GetBrief(c *gin.Context) {
	campaign, ok := h.activeCampaign(c)
	if !ok {
		return
	}

	brief, err := h.contentService.GetBrief(c.Request.Context(), campaign)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get brief", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaign_id": campaign.ID, "brief": brief})
}

// RegenerateBrief godoc
// @Summary Regenerate the campaign brief
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/brief [post]
func (h *ContentHandler) RegenerateBrief(c *gin.Context) {
	campaign, ok := h.activeCampaign(c)
	if !ok {
		return
	}

	brief, err := h.contentService.GenerateBrief(c.Request.Context(), campaign)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate brief", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaign_id": campaign.ID, "brief": brief})
}

// DownloadBrief godoc
// @Summary Download the brief as a text file
// @Tags content
// @Produce plain
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {string} string
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/brief/download [get]
func (h *ContentHandler) DownloadBrief(c *gin.Context) {
	campaign, ok := h.activeCampaign(c)
	if !ok {
		return
	}

	brief, ok := h.artifacts.ReadBrief(campaign.ID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No brief yet. Generate the brief first."})
		return
	}
	serveText(c, fmt.Sprintf("brief_%s.txt", campaign.ID), brief)
}

// GetContent godoc
// @Summary Get channel copy
// @Description Return stored copy for the channel, generating it on first access.
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param channel query string false "Channel (defaults to the campaign's default channel)"
// @Param tone query string false "Tone: professional, friendly, sharp, humorous or formal"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/content [get]
func (h *ContentHandler) GetContent(c *gin.Context) {
	campaign, ok := h.activeCampaign(c)
	if !ok {
		return
	}
	channel := h.channelOrDefault(c, campaign)

	text, err := h.contentService.GetContent(c.Request.Context(), campaign, channel, c.Query("tone"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get content", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaign_id": campaign.ID, "channel": channel, "content": text})
}

// RegenerateContent godoc
// @Summary Regenerate channel copy
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param channel query string false "Channel (defaults to the campaign's default channel)"
// @Param tone query string false "Tone"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/content/generate [post]
func (h *ContentHandler) RegenerateContent(c *gin.Context) {
	campaign, ok := h.activeCampaign(c)
	if !ok {
		return
	}
	channel := h.channelOrDefault(c, campaign)

	text, err := h.contentService.GenerateContent(c.Request.Context(), campaign, channel, c.Query("tone"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate content", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaign_id": campaign.ID, "channel": channel, "content": text})
}

// SaveContent godoc
// @Summary Save edited channel copy
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param request body saveContentRequest true "Channel and final text"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/content [post]
func (h *ContentHandler) SaveContent(c *gin.Context) {
	campaign, ok := h.activeCampaign(c)
	if !ok {
		return
	}

	var req saveContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if err := h.contentService.SaveContent(campaign, req.Channel, req.Text); err != nil {
		if strings.Contains(err.Error(), "unknown channel") || strings.Contains(err.Error(), "must not be empty") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save content", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Content saved", "campaign_id": campaign.ID})
}

// DownloadContent godoc
// @Summary Download channel copy as a text file
// @Tags content
// @Produce plain
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param channel query string false "Channel (defaults to the campaign's default channel)"
// @Success 200 {string} string
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/content/download [get]
func (h *ContentHandler) DownloadContent(c *gin.Context) {
	campaign, ok := h.activeCampaign(c)
	if !ok {
		return
	}
	channel := h.channelOrDefault(c, campaign)

	text, ok := h.artifacts.ReadContent(campaign.ID, channel)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No content for this channel yet. Generate it first."})
		return
	}
	serveText(c, fmt.Sprintf("content_%s_%s.txt", campaign.ID, strings.ToLower(channel)), text)
}

// GetIdeas godoc
// @Summary Suggest campaign angles
// @Description Return up to n campaign angle ideas for a channel, AI-assisted when configured.
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param channel query string false "Channel"
// @Param tone query string false "Tone"
// @Param n query int false "Number of ideas (1-10, default 3)"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/ideas [get]
func (h *ContentHandler) GetIdeas(c *gin.Context) {
	campaign, ok := h.activeCampaign(c)
	if !ok {
		return
	}
	channel := h.channelOrDefault(c, campaign)

	n, _ := strconv.Atoi(c.DefaultQuery("n", "3"))
	ideas := h.copywriter.GenerateIdeas(c.Request.Context(), campaign, channel, c.Query("tone"), n)
	c.JSON(http.StatusOK, gin.H{"campaign_id": campaign.ID, "channel": channel, "ideas": ideas})
}

// ChooseIdea godoc
// @Summary Turn a chosen angle into channel copy
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param request body chooseIdeaRequest true "Chosen idea"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/ideas/choose [post]
func (h *ContentHandler) ChooseIdea(c *gin.Context) {
	campaign, ok := h.activeCampaign(c)
	if !ok {
		return
	}

	var req chooseIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	text, err := h.contentService.ChooseIdea(c.Request.Context(), campaign, req.Channel, req.Tone, req.Idea)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build content from idea", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaign_id": campaign.ID, "channel": services.ChannelOrDefault(req.Channel), "content": text})
}

// GenerateAll godoc
// @Summary Generate the brief and copy for every channel
// @Tags content
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Param tone query string false "Tone"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/generate-all [post]
func (h *ContentHandler) GenerateAll(c *gin.Context) {
	campaign, ok := h.activeCampaign(c)
	if !ok {
		return
	}

	out, err := h.contentService.GenerateAll(c.Request.Context(), campaign, c.Query("tone"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate content", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaign_id": campaign.ID, "generated": out})
}

// CreateDemo godoc
// @Summary Create a demo campaign with generated content
// @Description Seed a ready-made campaign and generate its brief and copy for every channel.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/demo [post]
func (h *ContentHandler) CreateDemo(c *gin.Context) {
	campaign, err := h.campaignService.CreateDemoCampaign()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create demo campaign", "details": err.Error()})
		return
	}

	out, err := h.contentService.GenerateAll(c.Request.Context(), campaign, "friendly")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate demo content", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"campaign": services.ToResponse(campaign), "generated": out})
}

func (h *ContentHandler) activeCampaign(c *gin.Context) (*models.Campaign, bool) {
	campaign, err := h.campaignService.GetActiveCampaign(c.Param("id"))
	if err != nil {
		respondCampaignError(c, err)
		return nil, false
	}
	return campaign, true
}

// channelOrDefault resolves the channel query parameter, falling back to the
// campaign's default channel when absent.
func (h *ContentHandler) channelOrDefault(c *gin.Context, campaign *models.Campaign) string {
	if raw := c.Query("channel"); raw != "" {
		return services.ChannelOrDefault(raw)
	}
	return campaign.DefaultChannel
}

func serveText(c *gin.Context, filename, content string) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}
