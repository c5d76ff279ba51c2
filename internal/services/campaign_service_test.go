package services

import (
	"fmt"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/campaignhq/campaign-studio-backend/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Campaign{}, &models.Asset{}))
	return db
}

func newTestCampaignService(t *testing.T) *CampaignService {
	t.Helper()
	return NewCampaignService(testDB(t), NewArtifactService(t.TempDir()))
}

func createRequest() *models.CreateCampaignRequest {
	return &models.CreateCampaignRequest{
		Name:     "Launch",
		Audience: "SMB owners",
		Channel:  "email",
		Goal:     "signup",
		Budget:   "500",
	}
}

func TestCampaignIDFormat(t *testing.T) {
	id := NewCampaignID()
	assert.Regexp(t, regexp.MustCompile(`^\d{20}$`), id)

	// Consecutive creates stay distinct thanks to the microsecond suffix.
	time.Sleep(time.Millisecond)
	assert.NotEqual(t, id, NewCampaignID())
}

func TestCreateCampaignNormalizesChannel(t *testing.T) {
	svc := newTestCampaignService(t)

	campaign, err := svc.CreateCampaign(createRequest())
	require.NoError(t, err)
	assert.Equal(t, models.ChannelEmail, campaign.DefaultChannel)
	assert.NotEmpty(t, campaign.ID)
}

func TestCreateCampaignValidation(t *testing.T) {
	svc := newTestCampaignService(t)

	cases := []struct {
		name string
		req  *models.CreateCampaignRequest
	}{
		{"missing name", &models.CreateCampaignRequest{Audience: "a", Channel: "email"}},
		{"missing audience", &models.CreateCampaignRequest{Name: "n", Channel: "email"}},
		{"bad channel", &models.CreateCampaignRequest{Name: "n", Audience: "a", Channel: "pigeon"}},
		{"bad budget", &models.CreateCampaignRequest{Name: "n", Audience: "a", Channel: "email", Budget: "1.2.3"}},
		{"non-numeric budget", &models.CreateCampaignRequest{Name: "n", Audience: "a", Channel: "email", Budget: "$500"}},
	}
	for _, tc := range cases {
		_, err := svc.CreateCampaign(tc.req)
		assert.Error(t, err, tc.name)
	}
}

func TestValidateBudget(t *testing.T) {
	assert.NoError(t, validateBudget(""))
	assert.NoError(t, validateBudget("500"))
	assert.NoError(t, validateBudget("99.50"))
	assert.Error(t, validateBudget("1.2.3"))
	assert.Error(t, validateBudget("500 NIS"))
}

func TestArchiveHidesFromListButKeepsFetch(t *testing.T) {
	svc := newTestCampaignService(t)

	campaign, err := svc.CreateCampaign(createRequest())
	require.NoError(t, err)

	require.NoError(t, svc.ArchiveCampaign(campaign.ID))

	list, err := svc.ListCampaigns("", "")
	require.NoError(t, err)
	assert.Empty(t, list)

	fetched, err := svc.GetCampaign(campaign.ID)
	require.NoError(t, err)
	assert.NotNil(t, fetched.ArchivedAt)

	_, err = svc.GetActiveCampaign(campaign.ID)
	assert.Error(t, err)
}

func TestArchiveTwiceIsNoOp(t *testing.T) {
	svc := newTestCampaignService(t)
	campaign, err := svc.CreateCampaign(createRequest())
	require.NoError(t, err)

	require.NoError(t, svc.ArchiveCampaign(campaign.ID))
	require.NoError(t, svc.ArchiveCampaign(campaign.ID))
}

func TestListFilters(t *testing.T) {
	svc := newTestCampaignService(t)

	for i, ch := range []string{"email", "sms"} {
		req := createRequest()
		req.Name = fmt.Sprintf("Campaign %d", i)
		req.Channel = ch
		_, err := svc.CreateCampaign(req)
		require.NoError(t, err)
	}

	all, err := svc.ListCampaigns("", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	emails, err := svc.ListCampaigns("", "email")
	require.NoError(t, err)
	require.Len(t, emails, 1)
	assert.Equal(t, models.ChannelEmail, emails[0].DefaultChannel)

	byName, err := svc.ListCampaigns("campaign 1", "")
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	_, err = svc.ListCampaigns("", "pigeon")
	assert.Error(t, err)
}

func TestUpdateCampaign(t *testing.T) {
	svc := newTestCampaignService(t)
	campaign, err := svc.CreateCampaign(createRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateCampaign(campaign.ID, &models.UpdateCampaignRequest{
		Name:     "Relaunch",
		Audience: "Everyone",
		Channel:  "sms",
	})
	require.NoError(t, err)
	assert.Equal(t, "Relaunch", updated.Name)
	assert.Equal(t, models.ChannelSMS, updated.DefaultChannel)
}

func TestGetCampaignNotFound(t *testing.T) {
	svc := newTestCampaignService(t)
	_, err := svc.GetCampaign("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCreateDemoCampaign(t *testing.T) {
	svc := newTestCampaignService(t)
	campaign, err := svc.CreateDemoCampaign()
	require.NoError(t, err)
	assert.NotEmpty(t, campaign.Name)
	assert.Equal(t, models.ChannelEmail, campaign.DefaultChannel)
}
