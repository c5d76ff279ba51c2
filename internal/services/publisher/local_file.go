package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/campaignhq/campaign-studio-backend/internal/models"
)

// LocalFilePublisher writes each publish as a JSON record on disk. It is the
// default mode and doubles as the development dry-run target.
type LocalFilePublisher struct {
	dir               string
	defaultRecipients []string
}

func NewLocalFilePublisher(dir string, defaultRecipients []string) *LocalFilePublisher {
	return &LocalFilePublisher{dir: dir, defaultRecipients: defaultRecipients}
}

func (p *LocalFilePublisher) Name() string {
	return "local"
}

func (p *LocalFilePublisher) Publish(ctx context.Context, campaign *models.Campaign, channel, content string, recipients []string) (*models.PublishResult, error) {
	if len(recipients) == 0 {
		recipients = p.defaultRecipients
	}

	now := time.Now().UTC()
	record := models.PublishRecord{
		CampaignID:   campaign.ID,
		CampaignName: campaign.Name,
		Channel:      channel,
		SentAtUTC:    now.Format(time.RFC3339),
		Content:      content,
		Recipients:   recipients,
		Meta: models.PublishRecordMeta{
			Audience:     campaign.Audience,
			Goal:         campaign.Goal,
			Budget:       campaign.Budget,
			BusinessDesc: campaign.BusinessDesc,
			LandingURL:   campaign.LandingURL,
		},
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode publish record: %w", err)
	}

	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create publish directory: %w", err)
	}

	// Timestamped names keep every publish as its own record; existing
	// files are never overwritten.
	name := fmt.Sprintf("%s_%s_%s.json", campaign.ID, strings.ToLower(channel), now.Format("20060102150405"))
	path := filepath.Join(p.dir, name)
	if _, err := os.Stat(path); err == nil {
		name = fmt.Sprintf("%s_%s_%s_%d.json", campaign.ID, strings.ToLower(channel), now.Format("20060102150405"), now.Nanosecond())
		path = filepath.Join(p.dir, name)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write publish record: %w", err)
	}

	logrus.Infof("Published campaign %s channel %s to %s", campaign.ID, channel, path)

	return &models.PublishResult{
		OK:              true,
		Outfile:         path,
		Message:         "Saved locally",
		RecipientsCount: len(recipients),
	}, nil
}
