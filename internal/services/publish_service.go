package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/campaignhq/campaign-studio-backend/internal/models"
	"github.com/campaignhq/campaign-studio-backend/internal/services/publisher"
)

// PublishService connects generated content, stored recipients and the
// configured publisher backend.
type PublishService struct {
	pub        publisher.Publisher
	content    *ContentService
	recipients *RecipientService
}

func NewPublishService(pub publisher.Publisher, content *ContentService, recipients *RecipientService) *PublishService {
	return &PublishService{pub: pub, content: content, recipients: recipients}
}

// Mode reports which publisher backend is active.
func (s *PublishService) Mode() string {
	return s.pub.Name()
}

// PublishChannel sends the campaign's copy for one channel, generating the
// copy first when none has been saved yet.
func (s *PublishService) PublishChannel(ctx context.Context, campaign *models.Campaign, channel, tone string) (*models.PublishResult, error) {
	channel = ChannelOrDefault(channel)

	content, err := s.content.GetContent(ctx, campaign, channel, tone)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare content: %w", err)
	}

	recipients := s.recipients.Load(campaign.ID)

	result, err := s.pub.Publish(ctx, campaign, channel, content, recipients)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaign.ID,
		"channel":     channel,
		"publisher":   s.pub.Name(),
		"ok":          result.OK,
		"recipients":  result.RecipientsCount,
	}).Info("Publish attempt finished")

	return result, nil
}

// PublishAll publishes every channel in order. A failed channel does not
// stop the rest; each result carries its own status.
func (s *PublishService) PublishAll(ctx context.Context, campaign *models.Campaign, tone string) ([]models.ChannelPublishResult, error) {
	results := make([]models.ChannelPublishResult, 0, len(models.AllChannels))
	for _, ch := range models.AllChannels {
		result, err := s.PublishChannel(ctx, campaign, ch, tone)
		if err != nil {
			result = &models.PublishResult{OK: false, Message: err.Error()}
		}
		results = append(results, models.ChannelPublishResult{Channel: ch, Result: *result})
	}
	return results, nil
}

// CheckEmailIntegration verifies the mail backend is reachable and the
// credentials work. Only meaningful for the sendgrid mode.
func (s *PublishService) CheckEmailIntegration(ctx context.Context) error {
	sg, ok := s.pub.(*publisher.SendGridPublisher)
	if !ok {
		return fmt.Errorf("email integration check requires PUBLISH_MODE=sendgrid")
	}
	return sg.CheckConnection(ctx)
}
