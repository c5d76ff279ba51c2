package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/campaignhq/campaign-studio-backend/internal/models"
)

// ArtifactService owns the on-disk layout of everything a campaign
// produces:
//
//	{data}/briefs/{id}.txt
//	{data}/content/{id}_{channel}.txt
//	{data}/recipients/{id}.csv
//	{data}/published/{id}_{channel}_{ts}.json
//
// Writes are whole-file overwrites; there is no locking because the
// expected concurrency is one interactive operator per campaign.
type ArtifactService struct {
	dataDir string
}

func NewArtifactService(dataDir string) *ArtifactService {
	if dataDir == "" {
		dataDir = "data"
	}
	s := &ArtifactService{dataDir: dataDir}
	for _, dir := range []string{s.briefsDir(), s.contentDir(), s.recipientsDir(), s.PublishedDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logrus.Warnf("Failed to create artifact directory %s: %v", dir, err)
		}
	}
	return s
}

func (s *ArtifactService) briefsDir() string     { return filepath.Join(s.dataDir, "briefs") }
func (s *ArtifactService) contentDir() string    { return filepath.Join(s.dataDir, "content") }
func (s *ArtifactService) recipientsDir() string { return filepath.Join(s.dataDir, "recipients") }

// PublishedDir is where the local publisher drops its JSON records.
func (s *ArtifactService) PublishedDir() string { return filepath.Join(s.dataDir, "published") }

// BriefPath returns the brief file path for a campaign.
func (s *ArtifactService) BriefPath(campaignID string) string {
	return filepath.Join(s.briefsDir(), campaignID+".txt")
}

// ContentPath returns the per-channel content file path for a campaign.
func (s *ArtifactService) ContentPath(campaignID, channel string) string {
	return filepath.Join(s.contentDir(), fmt.Sprintf("%s_%s.txt", campaignID, strings.ToLower(channel)))
}

// RecipientsPath returns the recipient-list file path for a campaign.
func (s *ArtifactService) RecipientsPath(campaignID string) string {
	return filepath.Join(s.recipientsDir(), campaignID+".csv")
}

// WriteBrief overwrites the campaign brief.
func (s *ArtifactService) WriteBrief(campaignID, text string) error {
	return os.WriteFile(s.BriefPath(campaignID), []byte(text), 0o644)
}

// ReadBrief returns the brief text, or ok=false when none was generated yet.
func (s *ArtifactService) ReadBrief(campaignID string) (string, bool) {
	return readIfExists(s.BriefPath(campaignID))
}

// WriteContent overwrites the channel content file.
func (s *ArtifactService) WriteContent(campaignID, channel, text string) error {
	return os.WriteFile(s.ContentPath(campaignID, channel), []byte(text), 0o644)
}

// ReadContent returns the channel content, or ok=false when none exists.
func (s *ArtifactService) ReadContent(campaignID, channel string) (string, bool) {
	return readIfExists(s.ContentPath(campaignID, channel))
}

// WriteRecipients replaces the recipient list wholesale, one address per
// line with a trailing newline.
func (s *ArtifactService) WriteRecipients(campaignID string, emails []string) error {
	return os.WriteFile(s.RecipientsPath(campaignID), []byte(strings.Join(emails, "\n")+"\n"), 0o644)
}

// ReadRecipientsRaw returns the raw recipient file text, or ok=false when no
// list was uploaded.
func (s *ArtifactService) ReadRecipientsRaw(campaignID string) (string, bool) {
	return readIfExists(s.RecipientsPath(campaignID))
}

// Summary reports artifact existence for the results screen: whether the
// brief exists, how many of the four channels have content, and how many
// publish records were written.
func (s *ArtifactService) Summary(campaignID string) models.ResultsSummary {
	summary := models.ResultsSummary{TotalAssets: len(models.AllChannels)}

	if _, err := os.Stat(s.BriefPath(campaignID)); err == nil {
		summary.BriefExists = true
	}
	for _, ch := range models.AllChannels {
		if _, err := os.Stat(s.ContentPath(campaignID, ch)); err == nil {
			summary.AssetsExist++
		}
	}
	matches, err := filepath.Glob(filepath.Join(s.PublishedDir(), campaignID+"_*.json"))
	if err == nil {
		summary.SentCount = len(matches)
	}
	return summary
}

func readIfExists(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}
