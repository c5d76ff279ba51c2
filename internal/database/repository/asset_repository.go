package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campaignhq/campaign-studio-backend/internal/models"

	"gorm.io/gorm"
)

type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// Upsert stores content for one (campaign, kind) pair. Kind is lowercased
// on the way in; a second save for the same pair replaces the content.
func (r *AssetRepository) Upsert(campaignID, kind, content string, at time.Time) (*models.Asset, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		return nil, fmt.Errorf("asset kind is required")
	}

	var asset models.Asset
	err := r.db.Where("campaign_id = ? AND kind = ?", campaignID, kind).First(&asset).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		asset = models.Asset{
			ID:         fmt.Sprintf("%s_%s", campaignID, kind),
			CampaignID: campaignID,
			Kind:       kind,
			Content:    content,
			UpdatedAt:  at,
		}
		if err := r.db.Create(&asset).Error; err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		asset.Content = content
		asset.UpdatedAt = at
		if err := r.db.Save(&asset).Error; err != nil {
			return nil, err
		}
	}
	return &asset, nil
}

// GetByCampaignAndKind retrieves one asset snapshot.
func (r *AssetRepository) GetByCampaignAndKind(campaignID, kind string) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.Where("campaign_id = ? AND kind = ?", campaignID, strings.ToLower(kind)).First(&asset).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// ListByCampaign retrieves all asset snapshots for a campaign.
func (r *AssetRepository) ListByCampaign(campaignID string) ([]*models.Asset, error) {
	var assets []*models.Asset
	err := r.db.Where("campaign_id = ?", campaignID).Order("kind").Find(&assets).Error
	return assets, err
}
