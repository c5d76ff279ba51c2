package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campaignhq/campaign-studio-backend/internal/models"
	"github.com/campaignhq/campaign-studio-backend/internal/services/publisher"
)

func newPublishFixture(t *testing.T) (*contentFixture, *PublishService) {
	t.Helper()
	f := newContentFixture(t)
	pub := publisher.NewLocalFilePublisher(f.artifacts.PublishedDir(), nil)
	recipients := NewRecipientService(f.artifacts)
	return f, NewPublishService(pub, f.content, recipients)
}

func TestPublishChannelGeneratesMissingContent(t *testing.T) {
	f, svc := newPublishFixture(t)
	campaign := f.createCampaign(t)

	result, err := svc.PublishChannel(context.Background(), campaign, "email", "professional")
	require.NoError(t, err)
	assert.True(t, result.OK)
	require.FileExists(t, result.Outfile)

	// Generation happened as a side effect of publishing.
	_, ok := f.artifacts.ReadContent(campaign.ID, models.ChannelEmail)
	assert.True(t, ok)
}

func TestPublishChannelUsesStoredRecipients(t *testing.T) {
	f, svc := newPublishFixture(t)
	campaign := f.createCampaign(t)

	_, err := NewRecipientService(f.artifacts).Save(campaign.ID, "a@x.com\nb@y.org")
	require.NoError(t, err)

	result, err := svc.PublishChannel(context.Background(), campaign, "email", "professional")
	require.NoError(t, err)
	assert.Equal(t, 2, result.RecipientsCount)
}

func TestPublishAllCoversEveryChannel(t *testing.T) {
	f, svc := newPublishFixture(t)
	campaign := f.createCampaign(t)

	results, err := svc.PublishAll(context.Background(), campaign, "professional")
	require.NoError(t, err)
	require.Len(t, results, len(models.AllChannels))

	for i, ch := range models.AllChannels {
		assert.Equal(t, ch, results[i].Channel)
		assert.True(t, results[i].Result.OK, "channel %s", ch)
	}

	summary := f.artifacts.Summary(campaign.ID)
	assert.Equal(t, len(models.AllChannels), summary.SentCount)
}

func TestCheckEmailIntegrationRequiresSendGrid(t *testing.T) {
	_, svc := newPublishFixture(t)
	err := svc.CheckEmailIntegration(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sendgrid")
}
