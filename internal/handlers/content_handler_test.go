package handlers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/campaignhq/campaign-studio-backend/internal/config"
	"github.com/campaignhq/campaign-studio-backend/internal/models"
	"github.com/campaignhq/campaign-studio-backend/internal/services"
)

func newContentRouter(t *testing.T) (*gin.Engine, *models.Campaign) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Campaign{}, &models.Asset{}))

	artifacts := services.NewArtifactService(t.TempDir())
	copywriter := services.NewCopywriterService(services.NewOpenAIService(config.OpenAIConfig{Model: "gpt-4o-mini"}))
	h := NewContentHandler(db, artifacts, copywriter)

	campaignService := services.NewCampaignService(db, artifacts)
	campaign, err := campaignService.CreateCampaign(&models.CreateCampaignRequest{
		Name:     "Summer Pottery Workshop",
		Audience: "local families",
		Channel:  "email",
		Goal:     "fill the summer sessions",
	})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/campaigns/:id/brief", h.GetBrief)
	r.GET("/campaigns/:id/brief/download", h.DownloadBrief)
	r.GET("/campaigns/:id/content", h.GetContent)
	r.GET("/campaigns/:id/content/download", h.DownloadContent)
	return r, campaign
}

func doGet(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestDownloadBriefMissingReturnsNotFound(t *testing.T) {
	r, campaign := newContentRouter(t)

	w := doGet(r, "/campaigns/"+campaign.ID+"/brief/download")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Generate the brief first")

	// The download must not create the brief as a side effect.
	w = doGet(r, "/campaigns/"+campaign.ID+"/brief/download")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadBriefAfterGeneration(t *testing.T) {
	r, campaign := newContentRouter(t)

	w := doGet(r, "/campaigns/"+campaign.ID+"/brief")
	require.Equal(t, http.StatusOK, w.Code)

	w = doGet(r, "/campaigns/"+campaign.ID+"/brief/download")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "brief_"+campaign.ID+".txt")
	assert.Contains(t, w.Body.String(), "Summer Pottery Workshop")
}

func TestDownloadContentMissingReturnsNotFound(t *testing.T) {
	r, campaign := newContentRouter(t)

	w := doGet(r, "/campaigns/"+campaign.ID+"/content/download?channel=sms")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Generate it first")
}

func TestDownloadContentAfterGeneration(t *testing.T) {
	r, campaign := newContentRouter(t)

	w := doGet(r, "/campaigns/"+campaign.ID+"/content?channel=sms")
	require.Equal(t, http.StatusOK, w.Code)

	w = doGet(r, "/campaigns/"+campaign.ID+"/content/download?channel=sms")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "content_"+campaign.ID+"_sms.txt")
	assert.NotEmpty(t, w.Body.String())
}
