package models

// PublishResult is the uniform outcome of one publish attempt, regardless of
// publisher variant. Callers branch on OK; failures are values, not errors.
type PublishResult struct {
	OK              bool   `json:"ok"`
	Outfile         string `json:"outfile,omitempty"`
	Message         string `json:"message,omitempty"`
	RecipientsCount int    `json:"recipients_count,omitempty"`
}

// PublishRecord is the JSON document the local publisher writes for every
// publish call. Records are append-only: one file per attempt, never
// overwritten.
type PublishRecord struct {
	CampaignID   string            `json:"campaign_id"`
	CampaignName string            `json:"campaign_name"`
	Channel      string            `json:"channel"`
	SentAtUTC    string            `json:"sent_at_utc"`
	Content      string            `json:"content"`
	Recipients   []string          `json:"recipients"`
	Meta         PublishRecordMeta `json:"meta"`
}

// PublishRecordMeta snapshots the campaign attributes that matter for audit.
type PublishRecordMeta struct {
	Audience     string `json:"audience"`
	Goal         string `json:"goal"`
	Budget       string `json:"budget"`
	BusinessDesc string `json:"business_desc"`
	LandingURL   string `json:"landing_url"`
}

// ChannelPublishResult pairs a channel with its publish outcome, used by the
// publish-all operation.
type ChannelPublishResult struct {
	Channel string        `json:"channel"`
	Result  PublishResult `json:"result"`
}
