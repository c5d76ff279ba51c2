package services

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/campaignhq/campaign-studio-backend/internal/database/repository"
	"github.com/campaignhq/campaign-studio-backend/internal/models"
)

// ContentService orchestrates brief and channel-copy generation. Every
// generated artifact lands in two places: the campaign's file on disk and an
// asset row, so both the export bundle and the API stay consistent.
type ContentService struct {
	campaignRepo *repository.CampaignRepository
	assetRepo    *repository.AssetRepository
	artifacts    *ArtifactService
	copywriter   *CopywriterService
}

func NewContentService(db *gorm.DB, artifacts *ArtifactService, copywriter *CopywriterService) *ContentService {
	return &ContentService{
		campaignRepo: repository.NewCampaignRepository(db),
		assetRepo:    repository.NewAssetRepository(db),
		artifacts:    artifacts,
		copywriter:   copywriter,
	}
}

// GenerateBrief (re)generates the campaign brief and stores it.
func (s *ContentService) GenerateBrief(ctx context.Context, campaign *models.Campaign) (string, error) {
	text := s.copywriter.GenerateBrief(ctx, campaign)
	if err := s.save(campaign, models.AssetKindBrief, "", text); err != nil {
		return "", err
	}
	return text, nil
}

// GetBrief returns the stored brief, generating one on first access.
func (s *ContentService) GetBrief(ctx context.Context, campaign *models.Campaign) (string, error) {
	if text, ok := s.artifacts.ReadBrief(campaign.ID); ok {
		return text, nil
	}
	return s.GenerateBrief(ctx, campaign)
}

// GenerateContent (re)generates copy for one channel and stores it.
func (s *ContentService) GenerateContent(ctx context.Context, campaign *models.Campaign, channel, tone string) (string, error) {
	channel = ChannelOrDefault(channel)
	text := s.copywriter.GenerateCopy(ctx, campaign, channel, tone)
	if err := s.save(campaign, "content", channel, text); err != nil {
		return "", err
	}
	return text, nil
}

// GetContent returns stored channel copy, generating it on first access.
func (s *ContentService) GetContent(ctx context.Context, campaign *models.Campaign, channel, tone string) (string, error) {
	channel = ChannelOrDefault(channel)
	if text, ok := s.artifacts.ReadContent(campaign.ID, channel); ok {
		return text, nil
	}
	return s.GenerateContent(ctx, campaign, channel, tone)
}

// ChooseIdea turns a chosen campaign angle into stored channel copy.
func (s *ContentService) ChooseIdea(ctx context.Context, campaign *models.Campaign, channel, tone, idea string) (string, error) {
	channel = ChannelOrDefault(channel)
	text := s.copywriter.GenerateCopyFromIdea(ctx, campaign, channel, tone, idea)
	if err := s.save(campaign, "content", channel, text); err != nil {
		return "", err
	}
	return text, nil
}

// SaveContent stores manually edited copy for a channel.
func (s *ContentService) SaveContent(campaign *models.Campaign, channel, text string) error {
	channel = NormalizeChannel(channel)
	if channel == "" {
		return fmt.Errorf("unknown channel")
	}
	if text == "" {
		return fmt.Errorf("content must not be empty")
	}
	return s.save(campaign, "content", channel, text)
}

// GenerateAll generates the brief plus copy for every channel in one pass.
// Per-channel results are keyed by channel name; the brief under "brief".
func (s *ContentService) GenerateAll(ctx context.Context, campaign *models.Campaign, tone string) (map[string]string, error) {
	out := make(map[string]string, len(models.AllChannels)+1)

	brief, err := s.GenerateBrief(ctx, campaign)
	if err != nil {
		return nil, err
	}
	out[models.AssetKindBrief] = brief

	for _, ch := range models.AllChannels {
		text, err := s.GenerateContent(ctx, campaign, ch, tone)
		if err != nil {
			return nil, err
		}
		out[ch] = text
	}
	return out, nil
}

// save writes the artifact file, upserts the matching asset row and bumps
// the campaign's updated_at so lists reflect recent work.
func (s *ContentService) save(campaign *models.Campaign, kind, channel, text string) error {
	now := time.Now().UTC()

	if kind == models.AssetKindBrief {
		if err := s.artifacts.WriteBrief(campaign.ID, text); err != nil {
			return fmt.Errorf("failed to write brief: %w", err)
		}
		if _, err := s.assetRepo.Upsert(campaign.ID, models.AssetKindBrief, text, now); err != nil {
			return fmt.Errorf("failed to store brief asset: %w", err)
		}
	} else {
		if err := s.artifacts.WriteContent(campaign.ID, channel, text); err != nil {
			return fmt.Errorf("failed to write content: %w", err)
		}
		if _, err := s.assetRepo.Upsert(campaign.ID, channel, text, now); err != nil {
			return fmt.Errorf("failed to store content asset: %w", err)
		}
	}

	if err := s.campaignRepo.Touch(campaign.ID, now); err != nil {
		return fmt.Errorf("failed to update campaign timestamp: %w", err)
	}
	return nil
}
