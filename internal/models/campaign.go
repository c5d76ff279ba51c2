package models

import (
	"time"
)

// Channel names are canonical; anything else the user types goes through
// copywriter.NormalizeChannel first.
const (
	ChannelEmail  = "Email"
	ChannelSMS    = "SMS"
	ChannelSocial = "Social"
	ChannelAds    = "Ads"
)

// AllChannels lists the supported channels in the order they are generated
// and exported.
var AllChannels = []string{ChannelEmail, ChannelSMS, ChannelSocial, ChannelAds}

// IsValidChannel reports whether ch is one of the canonical channel names.
func IsValidChannel(ch string) bool {
	for _, c := range AllChannels {
		if c == ch {
			return true
		}
	}
	return false
}

// Campaign is a marketing campaign owned by the operator. Campaigns are
// never hard-deleted through the API; ArchivedAt marks a soft delete.
type Campaign struct {
	ID             string     `json:"id" gorm:"primaryKey;type:varchar(32)"`
	Name           string     `json:"name" gorm:"type:varchar(255);not null"`
	Audience       string     `json:"audience" gorm:"type:varchar(255);not null"`
	DefaultChannel string     `json:"default_channel" gorm:"type:varchar(20);not null;index"`
	Goal           string     `json:"goal" gorm:"type:varchar(255)"`
	Budget         string     `json:"budget" gorm:"type:varchar(50)"`
	BusinessDesc   string     `json:"business_desc" gorm:"type:varchar(500)"`
	LandingURL     string     `json:"landing_url" gorm:"type:varchar(500)"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	ArchivedAt     *time.Time `json:"archived_at,omitempty" gorm:"index"`

	// Relationships
	Assets []Asset `json:"assets,omitempty" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Campaign model
func (Campaign) TableName() string {
	return "campaigns"
}

// CreateCampaignRequest represents the request to create a new campaign
type CreateCampaignRequest struct {
	Name         string `json:"name" binding:"required" example:"Launch"`
	Audience     string `json:"audience" binding:"required" example:"SMB owners"`
	Channel      string `json:"channel" binding:"required" example:"Email"`
	Goal         string `json:"goal" example:"signup"`
	Budget       string `json:"budget" example:"500"`
	BusinessDesc string `json:"business_desc" example:"Pottery workshop for beginners"`
	LandingURL   string `json:"landing_url" example:"https://example.com/launch"`
}

// UpdateCampaignRequest represents the request to update a campaign
type UpdateCampaignRequest struct {
	Name         string `json:"name" binding:"required" example:"Launch"`
	Audience     string `json:"audience" binding:"required" example:"SMB owners"`
	Channel      string `json:"channel" binding:"required" example:"Email"`
	Goal         string `json:"goal" example:"signup"`
	Budget       string `json:"budget" example:"500"`
	BusinessDesc string `json:"business_desc" example:"Pottery workshop for beginners"`
	LandingURL   string `json:"landing_url" example:"https://example.com/launch"`
}

// CampaignResponse represents the response for campaign operations
type CampaignResponse struct {
	ID             string `json:"id" example:"20250830121530123456"`
	Name           string `json:"name" example:"Launch"`
	Audience       string `json:"audience" example:"SMB owners"`
	DefaultChannel string `json:"default_channel" example:"Email"`
	Goal           string `json:"goal" example:"signup"`
	Budget         string `json:"budget" example:"500"`
	BusinessDesc   string `json:"business_desc" example:"Pottery workshop for beginners"`
	LandingURL     string `json:"landing_url" example:"https://example.com/launch"`
	CreatedAt      string `json:"created_at" example:"2025-08-30T12:15:30Z"`
	UpdatedAt      string `json:"updated_at" example:"2025-08-30T12:15:30Z"`
}

// ResultsSummary is a quick status view over a campaign's artifacts.
type ResultsSummary struct {
	BriefExists bool `json:"brief_exists"`
	AssetsExist int  `json:"assets_exist"`
	TotalAssets int  `json:"total_assets"`
	SentCount   int  `json:"sent_count"`
}
