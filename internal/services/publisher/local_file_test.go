package publisher

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campaignhq/campaign-studio-backend/internal/models"
)

func publishTestCampaign() *models.Campaign {
	return &models.Campaign{
		ID:             "20250830120000000001",
		Name:           "Summer Pottery Workshop",
		Audience:       "Parents of kids 8-14",
		DefaultChannel: models.ChannelEmail,
		Goal:           "signup",
		Budget:         "500",
		LandingURL:     "https://example.com/pottery",
	}
}

func TestLocalPublishWritesRecord(t *testing.T) {
	dir := t.TempDir()
	pub := NewLocalFilePublisher(dir, nil)

	result, err := pub.Publish(context.Background(), publishTestCampaign(), models.ChannelEmail, "Hello body", []string{"a@x.com", "b@y.org"})
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, 2, result.RecipientsCount)
	require.FileExists(t, result.Outfile)

	data, err := os.ReadFile(result.Outfile)
	require.NoError(t, err)

	var record models.PublishRecord
	require.NoError(t, json.Unmarshal(data, &record))
	assert.Equal(t, "20250830120000000001", record.CampaignID)
	assert.Equal(t, models.ChannelEmail, record.Channel)
	assert.Equal(t, "Hello body", record.Content)
	assert.Equal(t, []string{"a@x.com", "b@y.org"}, record.Recipients)
	assert.Equal(t, "signup", record.Meta.Goal)
}

func TestLocalPublishNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	pub := NewLocalFilePublisher(dir, nil)
	c := publishTestCampaign()

	first, err := pub.Publish(context.Background(), c, models.ChannelSMS, "one", nil)
	require.NoError(t, err)
	second, err := pub.Publish(context.Background(), c, models.ChannelSMS, "two", nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.Outfile, second.Outfile)

	entries, err := filepath.Glob(filepath.Join(dir, c.ID+"_sms_*.json"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLocalPublishUsesDefaultRecipients(t *testing.T) {
	pub := NewLocalFilePublisher(t.TempDir(), []string{"default@x.com"})

	result, err := pub.Publish(context.Background(), publishTestCampaign(), models.ChannelEmail, "body", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.RecipientsCount)
}
