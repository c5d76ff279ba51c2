package services

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campaignhq/campaign-studio-backend/internal/models"
)

func readZipEntries(t *testing.T, data []byte) map[string]string {
	t.Helper()
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	entries := make(map[string]string)
	for _, f := range r.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		entries[f.Name] = string(content)
	}
	return entries
}

func TestExportBundlesExistingArtifacts(t *testing.T) {
	artifacts := NewArtifactService(t.TempDir())
	svc := NewExportService(artifacts)
	c := testCampaign()

	require.NoError(t, artifacts.WriteBrief(c.ID, "the brief"))
	require.NoError(t, artifacts.WriteContent(c.ID, models.ChannelEmail, "email copy"))
	require.NoError(t, artifacts.WriteContent(c.ID, models.ChannelSMS, "sms copy"))

	data, filename, err := svc.BuildZip(c)
	require.NoError(t, err)
	assert.Equal(t, "campaign_"+c.ID+".zip", filename)

	entries := readZipEntries(t, data)
	assert.Equal(t, "the brief", entries["brief_"+c.ID+".txt"])
	assert.Equal(t, "email copy", entries["content_"+c.ID+"_email.txt"])
	assert.Equal(t, "sms copy", entries["content_"+c.ID+"_sms.txt"])
	assert.NotContains(t, entries, "content_"+c.ID+"_social.txt")
	assert.Len(t, entries, 4, "brief, two channels and the metadata file")
}

func TestExportMetaContents(t *testing.T) {
	artifacts := NewArtifactService(t.TempDir())
	svc := NewExportService(artifacts)
	c := testCampaign()

	data, _, err := svc.BuildZip(c)
	require.NoError(t, err)

	entries := readZipEntries(t, data)
	meta, ok := entries["campaign_"+c.ID+"_meta.txt"]
	require.True(t, ok)

	assert.Contains(t, meta, "Campaign: "+c.Name)
	assert.Contains(t, meta, "Audience: "+c.Audience)
	assert.Contains(t, meta, "Channel (default): "+c.DefaultChannel)
	assert.Contains(t, meta, "Goal: "+c.Goal)
	assert.Contains(t, meta, "Budget: "+c.Budget)
	assert.Contains(t, meta, "Exported at: ")
	assert.Contains(t, meta, "Landing URL: "+c.LandingURL)
}

func TestExportEmptyCampaignStillHasMeta(t *testing.T) {
	artifacts := NewArtifactService(t.TempDir())
	svc := NewExportService(artifacts)

	data, _, err := svc.BuildZip(testCampaign())
	require.NoError(t, err)

	entries := readZipEntries(t, data)
	assert.Len(t, entries, 1)
}
