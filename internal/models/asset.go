package models

import (
	"time"
)

// Asset kinds: "brief" plus the lowercased channel names.
const (
	AssetKindBrief = "brief"
)

// Asset is a named snapshot of generated content for one campaign and kind.
// There is exactly one row per (campaign, kind); saves are upserts.
type Asset struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	CampaignID string    `json:"campaign_id" gorm:"not null;index;type:varchar(32);uniqueIndex:idx_assets_campaign_kind"`
	Kind       string    `json:"kind" gorm:"type:varchar(20);not null;uniqueIndex:idx_assets_campaign_kind"`
	Content    string    `json:"content" gorm:"type:text"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relationships
	Campaign Campaign `json:"-" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Asset model
func (Asset) TableName() string {
	return "assets"
}
