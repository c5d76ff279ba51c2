package repository

import (
	"strings"
	"time"

	"github.com/campaignhq/campaign-studio-backend/internal/models"

	"gorm.io/gorm"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Create creates a new campaign
func (r *CampaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

// GetByID retrieves a campaign by ID. Archived campaigns are still
// fetchable directly; only listings hide them.
func (r *CampaignRepository) GetByID(id string) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.First(&campaign, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// List retrieves non-archived campaigns, optionally filtered by a
// case-insensitive substring over name/audience/goal and an exact channel,
// most recently touched first.
func (r *CampaignRepository) List(query, channel string) ([]*models.Campaign, error) {
	q := r.db.Where("archived_at IS NULL")

	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(audience) LIKE ? OR LOWER(goal) LIKE ?", like, like, like)
	}
	if channel != "" {
		q = q.Where("default_channel = ?", channel)
	}

	var campaigns []*models.Campaign
	err := q.Order("COALESCE(updated_at, created_at) DESC").Find(&campaigns).Error
	return campaigns, err
}

// Update updates a campaign
func (r *CampaignRepository) Update(campaign *models.Campaign) error {
	return r.db.Save(campaign).Error
}

// Touch bumps updated_at without altering any other field.
func (r *CampaignRepository) Touch(id string, at time.Time) error {
	return r.db.Model(&models.Campaign{}).Where("id = ?", id).
		UpdateColumn("updated_at", at).Error
}

// Archive soft-deletes a campaign by stamping archived_at.
func (r *CampaignRepository) Archive(id string, at time.Time) error {
	return r.db.Model(&models.Campaign{}).Where("id = ?", id).
		Update("archived_at", at).Error
}
