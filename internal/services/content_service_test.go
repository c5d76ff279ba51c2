package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/campaignhq/campaign-studio-backend/internal/database/repository"
	"github.com/campaignhq/campaign-studio-backend/internal/models"
)

type contentFixture struct {
	db        *gorm.DB
	artifacts *ArtifactService
	campaigns *CampaignService
	content   *ContentService
}

func newContentFixture(t *testing.T) *contentFixture {
	t.Helper()
	db := testDB(t)
	artifacts := NewArtifactService(t.TempDir())
	copywriter := NewCopywriterService(NewOpenAIService(testOpenAIConfig()))
	return &contentFixture{
		db:        db,
		artifacts: artifacts,
		campaigns: NewCampaignService(db, artifacts),
		content:   NewContentService(db, artifacts, copywriter),
	}
}

func (f *contentFixture) createCampaign(t *testing.T) *models.Campaign {
	t.Helper()
	campaign, err := f.campaigns.CreateCampaign(createRequest())
	require.NoError(t, err)
	return campaign
}

func TestGenerateBriefWritesFileAndAsset(t *testing.T) {
	f := newContentFixture(t)
	campaign := f.createCampaign(t)

	brief, err := f.content.GenerateBrief(context.Background(), campaign)
	require.NoError(t, err)
	assert.NotEmpty(t, brief)

	stored, ok := f.artifacts.ReadBrief(campaign.ID)
	require.True(t, ok)
	assert.Equal(t, brief, stored)

	asset, err := repository.NewAssetRepository(f.db).GetByCampaignAndKind(campaign.ID, models.AssetKindBrief)
	require.NoError(t, err)
	assert.Equal(t, brief, asset.Content)
	assert.Equal(t, campaign.ID+"_"+models.AssetKindBrief, asset.ID)
}

func TestGetBriefGeneratesOnFirstAccess(t *testing.T) {
	f := newContentFixture(t)
	campaign := f.createCampaign(t)

	first, err := f.content.GetBrief(context.Background(), campaign)
	require.NoError(t, err)

	second, err := f.content.GetBrief(context.Background(), campaign)
	require.NoError(t, err)
	assert.Equal(t, first, second, "second read returns the stored brief")
}

func TestGenerateContentPerChannel(t *testing.T) {
	f := newContentFixture(t)
	campaign := f.createCampaign(t)

	for _, ch := range models.AllChannels {
		text, err := f.content.GenerateContent(context.Background(), campaign, ch, "professional")
		require.NoError(t, err)
		assert.NotEmpty(t, text)

		stored, ok := f.artifacts.ReadContent(campaign.ID, ch)
		require.True(t, ok, "channel %s", ch)
		assert.Equal(t, text, stored)
	}
}

func TestSaveContentValidates(t *testing.T) {
	f := newContentFixture(t)
	campaign := f.createCampaign(t)

	assert.Error(t, f.content.SaveContent(campaign, "pigeon", "text"))
	assert.Error(t, f.content.SaveContent(campaign, "email", ""))

	require.NoError(t, f.content.SaveContent(campaign, "email", "Edited copy"))
	stored, ok := f.artifacts.ReadContent(campaign.ID, models.ChannelEmail)
	require.True(t, ok)
	assert.Equal(t, "Edited copy", stored)
}

func TestSaveContentTwiceUpdatesSingleAsset(t *testing.T) {
	f := newContentFixture(t)
	campaign := f.createCampaign(t)

	require.NoError(t, f.content.SaveContent(campaign, "email", "First draft"))
	require.NoError(t, f.content.SaveContent(campaign, "email", "Second draft"))

	var count int64
	require.NoError(t, f.db.Model(&models.Asset{}).
		Where("campaign_id = ? AND kind = ?", campaign.ID, "email").
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	asset, err := repository.NewAssetRepository(f.db).GetByCampaignAndKind(campaign.ID, "email")
	require.NoError(t, err)
	assert.Equal(t, "Second draft", asset.Content)

	stored, ok := f.artifacts.ReadContent(campaign.ID, models.ChannelEmail)
	require.True(t, ok)
	assert.Equal(t, "Second draft", stored)
}

func TestGenerateAllCoversEveryChannel(t *testing.T) {
	f := newContentFixture(t)
	campaign := f.createCampaign(t)

	out, err := f.content.GenerateAll(context.Background(), campaign, "friendly")
	require.NoError(t, err)

	assert.Contains(t, out, models.AssetKindBrief)
	for _, ch := range models.AllChannels {
		assert.Contains(t, out, ch)
	}

	summary := f.artifacts.Summary(campaign.ID)
	assert.True(t, summary.BriefExists)
	assert.Equal(t, len(models.AllChannels), summary.AssetsExist)
}

func TestChooseIdeaStoresCopy(t *testing.T) {
	f := newContentFixture(t)
	campaign := f.createCampaign(t)

	text, err := f.content.ChooseIdea(context.Background(), campaign, "social", "professional", "Show the kiln opening moment")
	require.NoError(t, err)
	assert.Contains(t, text, "Show the kiln opening moment")

	stored, ok := f.artifacts.ReadContent(campaign.ID, models.ChannelSocial)
	require.True(t, ok)
	assert.Equal(t, text, stored)
}

func TestSaveBumpsCampaignTimestamp(t *testing.T) {
	f := newContentFixture(t)
	campaign := f.createCampaign(t)
	before := campaign.UpdatedAt

	_, err := f.content.GenerateBrief(context.Background(), campaign)
	require.NoError(t, err)

	refreshed, err := f.campaigns.GetCampaign(campaign.ID)
	require.NoError(t, err)
	assert.True(t, !refreshed.UpdatedAt.Before(before))
}
