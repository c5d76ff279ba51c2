package services

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// emailRe is intentionally loose: local@domain.tld shape only. Anything that
// fails it is dropped silently, the UI just reports how many survived.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// RecipientService normalizes pasted text or uploaded files into a clean
// recipient list and persists it as the campaign's recipients file.
type RecipientService struct {
	artifacts *ArtifactService
}

func NewRecipientService(artifacts *ArtifactService) *RecipientService {
	return &RecipientService{artifacts: artifacts}
}

// ParseEmails accepts free text with any mixture of comma, semicolon, tab or
// line-break separators and returns the valid addresses, deduplicated
// case-sensitively with first-occurrence order preserved.
func ParseEmails(text string) []string {
	if text == "" {
		return nil
	}
	for _, sep := range []string{",", ";", "\t"} {
		text = strings.ReplaceAll(text, sep, "\n")
	}

	seen := make(map[string]struct{})
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.Trim(line, "<>")
		line = strings.Trim(line, `"`)
		line = strings.Trim(line, "'")
		if line == "" {
			continue
		}
		if !emailRe.MatchString(line) {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}

// Load returns the campaign's stored recipient list. A missing or unreadable
// file yields an empty list, never an error.
func (s *RecipientService) Load(campaignID string) []string {
	raw, ok := s.artifacts.ReadRecipientsRaw(campaignID)
	if !ok {
		return nil
	}
	return ParseEmails(raw)
}

// Save parses the given text and replaces the campaign's recipient file
// wholesale. Returns the stored addresses.
func (s *RecipientService) Save(campaignID, text string) ([]string, error) {
	emails := ParseEmails(text)
	if len(emails) == 0 {
		return nil, fmt.Errorf("no valid email addresses found")
	}
	if err := s.artifacts.WriteRecipients(campaignID, emails); err != nil {
		return nil, fmt.Errorf("failed to save recipients: %w", err)
	}
	return emails, nil
}

// SaveUpload extracts text from an uploaded file (CSV/plain text, or a
// spreadsheet when the extension is .xlsx) and stores it like Save.
func (s *RecipientService) SaveUpload(campaignID string, fileHeader *multipart.FileHeader) ([]string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(file); err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	text := buf.String()
	if strings.EqualFold(filepath.Ext(fileHeader.Filename), ".xlsx") {
		text = spreadsheetText(buf.Bytes())
	}
	return s.Save(campaignID, text)
}

// spreadsheetText flattens every cell of every sheet into newline-separated
// text so the regular parser can pick the addresses out. Decoding failures
// yield empty text, which the caller reports as "nothing usable".
func spreadsheetText(data []byte) string {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		logrus.Warnf("Failed to open recipient spreadsheet: %v", err)
		return ""
	}
	defer f.Close()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		for _, row := range rows {
			for _, cell := range row {
				sb.WriteString(cell)
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}
