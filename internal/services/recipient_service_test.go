package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmailsMixedSeparators(t *testing.T) {
	got := ParseEmails("a@x.com, a@x.com; B@y.org\n<c@z.net>")
	assert.Equal(t, []string{"a@x.com", "B@y.org", "c@z.net"}, got)
}

func TestParseEmailsDedupIsCaseSensitive(t *testing.T) {
	got := ParseEmails("A@x.com\na@x.com")
	assert.Equal(t, []string{"A@x.com", "a@x.com"}, got)
}

func TestParseEmailsStripsWrapping(t *testing.T) {
	got := ParseEmails(`"quoted@x.com"` + "\n'single@y.org'\n  <spaced@z.net>  ")
	assert.Equal(t, []string{"quoted@x.com", "single@y.org", "spaced@z.net"}, got)
}

func TestParseEmailsDropsInvalid(t *testing.T) {
	got := ParseEmails("valid@x.com\nno-at-sign\n@missing-local.com\nmissing-domain@\nno@tld\ntwo@@x.com")
	assert.Equal(t, []string{"valid@x.com"}, got)
}

func TestParseEmailsEmptyInput(t *testing.T) {
	assert.Empty(t, ParseEmails(""))
	assert.Empty(t, ParseEmails("  \n\t , ; "))
}

func TestRecipientSaveAndLoad(t *testing.T) {
	artifacts := NewArtifactService(t.TempDir())
	svc := NewRecipientService(artifacts)

	saved, err := svc.Save("20250830120000000001", "a@x.com; b@y.org\nnot-an-email")
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.com", "b@y.org"}, saved)

	assert.Equal(t, saved, svc.Load("20250830120000000001"))
}

func TestRecipientSaveRejectsEmptyList(t *testing.T) {
	artifacts := NewArtifactService(t.TempDir())
	svc := NewRecipientService(artifacts)

	_, err := svc.Save("20250830120000000001", "nothing useful here")
	assert.Error(t, err)
}

func TestRecipientLoadMissingFile(t *testing.T) {
	artifacts := NewArtifactService(t.TempDir())
	svc := NewRecipientService(artifacts)

	assert.Empty(t, svc.Load("20250830120000000099"))
}
