package services

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/campaignhq/campaign-studio-backend/internal/models"
)

// ExportService bundles a campaign's artifacts into a zip archive built in
// memory. Only artifacts that actually exist make it into the bundle; the
// metadata summary is always present.
type ExportService struct {
	artifacts *ArtifactService
}

func NewExportService(artifacts *ArtifactService) *ExportService {
	return &ExportService{artifacts: artifacts}
}

// BuildZip returns the archive bytes and a suggested filename.
func (s *ExportService) BuildZip(campaign *models.Campaign) ([]byte, string, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	if brief, ok := s.artifacts.ReadBrief(campaign.ID); ok {
		if err := addEntry(w, fmt.Sprintf("brief_%s.txt", campaign.ID), brief); err != nil {
			return nil, "", err
		}
	}

	for _, ch := range models.AllChannels {
		content, ok := s.artifacts.ReadContent(campaign.ID, ch)
		if !ok {
			continue
		}
		name := fmt.Sprintf("content_%s_%s.txt", campaign.ID, strings.ToLower(ch))
		if err := addEntry(w, name, content); err != nil {
			return nil, "", err
		}
	}

	metaName := fmt.Sprintf("campaign_%s_meta.txt", campaign.ID)
	if err := addEntry(w, metaName, metaText(campaign)); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), fmt.Sprintf("campaign_%s.zip", campaign.ID), nil
}

func addEntry(w *zip.Writer, name, content string) error {
	f, err := w.Create(name)
	if err != nil {
		return fmt.Errorf("failed to add %s to archive: %w", name, err)
	}
	if _, err := f.Write([]byte(content)); err != nil {
		return fmt.Errorf("failed to write %s to archive: %w", name, err)
	}
	return nil
}

func metaText(c *models.Campaign) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Campaign: %s\n", c.Name))
	sb.WriteString(fmt.Sprintf("Audience: %s\n", c.Audience))
	sb.WriteString(fmt.Sprintf("Channel (default): %s\n", c.DefaultChannel))
	sb.WriteString(fmt.Sprintf("Goal: %s\n", c.Goal))
	sb.WriteString(fmt.Sprintf("Budget: %s\n", c.Budget))
	sb.WriteString(fmt.Sprintf("Exported at: %s\n", time.Now().UTC().Format("2006-01-02T15:04:05Z")))
	if c.LandingURL != "" {
		sb.WriteString(fmt.Sprintf("Landing URL: %s\n", c.LandingURL))
	}
	return sb.String()
}
