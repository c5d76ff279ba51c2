package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/campaignhq/campaign-studio-backend/internal/database/repository"
	"github.com/campaignhq/campaign-studio-backend/internal/models"
)

// CampaignService covers campaign lifecycle: create, list, fetch, update and
// archive. Deletion is always a soft archive so history and artifacts stay
// recoverable.
type CampaignService struct {
	campaignRepo *repository.CampaignRepository
	artifacts    *ArtifactService
}

func NewCampaignService(db *gorm.DB, artifacts *ArtifactService) *CampaignService {
	return &CampaignService{
		campaignRepo: repository.NewCampaignRepository(db),
		artifacts:    artifacts,
	}
}

// NewCampaignID builds a sortable timestamp identifier, second precision
// plus microseconds to keep rapid consecutive creates distinct.
func NewCampaignID() string {
	t := time.Now().UTC()
	return fmt.Sprintf("%s%06d", t.Format("20060102150405"), t.Nanosecond()/1000)
}

// CreateCampaign validates the request and stores a new campaign.
func (s *CampaignService) CreateCampaign(req *models.CreateCampaignRequest) (*models.Campaign, error) {
	channel, err := validateCampaignFields(req.Name, req.Audience, req.Channel, req.Budget)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	campaign := &models.Campaign{
		ID:             NewCampaignID(),
		Name:           strings.TrimSpace(req.Name),
		Audience:       strings.TrimSpace(req.Audience),
		DefaultChannel: channel,
		Goal:           strings.TrimSpace(req.Goal),
		Budget:         strings.TrimSpace(req.Budget),
		BusinessDesc:   strings.TrimSpace(req.BusinessDesc),
		LandingURL:     strings.TrimSpace(req.LandingURL),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.campaignRepo.Create(campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	return campaign, nil
}

// ListCampaigns returns active campaigns, optionally filtered.
func (s *CampaignService) ListCampaigns(query, channel string) ([]*models.Campaign, error) {
	if channel != "" {
		channel = NormalizeChannel(channel)
		if channel == "" {
			return nil, fmt.Errorf("unknown channel filter")
		}
	}
	campaigns, err := s.campaignRepo.List(strings.TrimSpace(query), channel)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

// GetCampaign fetches a campaign by ID, archived ones included.
func (s *CampaignService) GetCampaign(id string) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("campaign not found")
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return campaign, nil
}

// GetActiveCampaign fetches a campaign and rejects archived ones. Write
// paths use this so archived campaigns stay frozen.
func (s *CampaignService) GetActiveCampaign(id string) (*models.Campaign, error) {
	campaign, err := s.GetCampaign(id)
	if err != nil {
		return nil, err
	}
	if campaign.ArchivedAt != nil {
		return nil, fmt.Errorf("campaign not found")
	}
	return campaign, nil
}

// UpdateCampaign validates and stores new campaign fields.
func (s *CampaignService) UpdateCampaign(id string, req *models.UpdateCampaignRequest) (*models.Campaign, error) {
	campaign, err := s.GetActiveCampaign(id)
	if err != nil {
		return nil, err
	}

	channel, err := validateCampaignFields(req.Name, req.Audience, req.Channel, req.Budget)
	if err != nil {
		return nil, err
	}

	campaign.Name = strings.TrimSpace(req.Name)
	campaign.Audience = strings.TrimSpace(req.Audience)
	campaign.DefaultChannel = channel
	campaign.Goal = strings.TrimSpace(req.Goal)
	campaign.Budget = strings.TrimSpace(req.Budget)
	campaign.BusinessDesc = strings.TrimSpace(req.BusinessDesc)
	campaign.LandingURL = strings.TrimSpace(req.LandingURL)
	campaign.UpdatedAt = time.Now().UTC()

	if err := s.campaignRepo.Update(campaign); err != nil {
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}
	return campaign, nil
}

// ArchiveCampaign soft-deletes a campaign. Archiving an already archived
// campaign is a no-op.
func (s *CampaignService) ArchiveCampaign(id string) error {
	campaign, err := s.GetCampaign(id)
	if err != nil {
		return err
	}
	if campaign.ArchivedAt != nil {
		return nil
	}
	if err := s.campaignRepo.Archive(id, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to archive campaign: %w", err)
	}
	return nil
}

// Results summarizes which artifacts exist and how many sends went out.
func (s *CampaignService) Results(id string) (*models.ResultsSummary, error) {
	if _, err := s.GetCampaign(id); err != nil {
		return nil, err
	}
	summary := s.artifacts.Summary(id)
	return &summary, nil
}

// CreateDemoCampaign seeds a ready-made campaign for first-run exploration.
func (s *CampaignService) CreateDemoCampaign() (*models.Campaign, error) {
	return s.CreateCampaign(&models.CreateCampaignRequest{
		Name:         "Summer Pottery Workshop",
		Audience:     "Parents of kids 8-14 in the city center",
		Channel:      models.ChannelEmail,
		Goal:         "signup",
		Budget:       "500",
		BusinessDesc: "A small pottery studio running hands-on workshops and holiday camps",
		LandingURL:   "https://example.com/pottery-summer",
	})
}

// ToResponse maps a campaign to its API shape.
func ToResponse(c *models.Campaign) *models.CampaignResponse {
	return &models.CampaignResponse{
		ID:             c.ID,
		Name:           c.Name,
		Audience:       c.Audience,
		DefaultChannel: c.DefaultChannel,
		Goal:           c.Goal,
		Budget:         c.Budget,
		BusinessDesc:   c.BusinessDesc,
		LandingURL:     c.LandingURL,
		CreatedAt:      c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// validateCampaignFields normalizes the channel and checks the free-form
// fields, returning the canonical channel.
func validateCampaignFields(name, audience, channel, budget string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("name is required")
	}
	if strings.TrimSpace(audience) == "" {
		return "", fmt.Errorf("audience is required")
	}
	normalized := NormalizeChannel(channel)
	if normalized == "" {
		return "", fmt.Errorf("unknown channel %q", channel)
	}
	if err := validateBudget(strings.TrimSpace(budget)); err != nil {
		return "", err
	}
	return normalized, nil
}

// validateBudget accepts an empty budget or a plain number with at most one
// decimal point. Currency symbols and separators are rejected.
func validateBudget(budget string) error {
	if budget == "" {
		return nil
	}
	dots := 0
	for _, r := range budget {
		switch {
		case r >= '0' && r <= '9':
		case r == '.':
			dots++
			if dots > 1 {
				return fmt.Errorf("budget must be a number")
			}
		default:
			return fmt.Errorf("budget must be a number")
		}
	}
	return nil
}
