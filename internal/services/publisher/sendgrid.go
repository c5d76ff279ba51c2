package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/campaignhq/campaign-studio-backend/internal/models"
)

// SendGrid v3 mail/send wire format. Only the fields this service uses.
type sgAddress struct {
	Email string `json:"email"`
}

type sgPersonalization struct {
	To []sgAddress `json:"to"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sgSandbox struct {
	Enable bool `json:"enable"`
}

type sgMailSettings struct {
	SandboxMode sgSandbox `json:"sandbox_mode"`
}

type sgMailRequest struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgAddress           `json:"from"`
	Subject          string              `json:"subject"`
	Content          []sgContent         `json:"content"`
	MailSettings     *sgMailSettings     `json:"mail_settings,omitempty"`
}

// SendGridPublisher delivers copy over the SendGrid v3 API. baseURL is
// configurable so tests can point it at a local server.
type SendGridPublisher struct {
	apiKey            string
	fromEmail         string
	baseURL           string
	defaultRecipients []string
	client            *http.Client
}

func NewSendGridPublisher(apiKey, fromEmail, baseURL string, defaultRecipients []string, timeout time.Duration) *SendGridPublisher {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &SendGridPublisher{
		apiKey:            apiKey,
		fromEmail:         fromEmail,
		baseURL:           strings.TrimRight(baseURL, "/"),
		defaultRecipients: defaultRecipients,
		client:            &http.Client{Timeout: timeout},
	}
}

func (p *SendGridPublisher) Name() string {
	return "sendgrid"
}

func (p *SendGridPublisher) Publish(ctx context.Context, campaign *models.Campaign, channel, content string, recipients []string) (*models.PublishResult, error) {
	to := resolveRecipients(recipients, p.defaultRecipients)
	if len(to) == 0 {
		return &models.PublishResult{
			OK:      false,
			Message: "No recipients: provide a list or configure a default",
		}, nil
	}

	subject, body := p.prepare(campaign, channel, content)

	payload := sgMailRequest{
		Personalizations: make([]sgPersonalization, 0, len(to)),
		From:             sgAddress{Email: p.fromEmail},
		Subject:          subject,
		Content:          []sgContent{{Type: "text/plain", Value: body}},
	}
	for _, addr := range to {
		payload.Personalizations = append(payload.Personalizations, sgPersonalization{To: []sgAddress{{Email: addr}}})
	}

	status, respBody, err := p.post(ctx, payload)
	if err != nil {
		logrus.Warnf("SendGrid request failed for campaign %s: %v", campaign.ID, err)
		return &models.PublishResult{
			OK:              false,
			Message:         fmt.Sprintf("SendGrid unreachable: %v", err),
			RecipientsCount: len(to),
		}, nil
	}

	if status == http.StatusOK || status == http.StatusAccepted {
		return &models.PublishResult{
			OK:              true,
			Outfile:         fmt.Sprintf("sendgrid://%d", len(to)),
			Message:         fmt.Sprintf("Sent to %d recipients", len(to)),
			RecipientsCount: len(to),
		}, nil
	}

	return &models.PublishResult{
		OK:              false,
		Message:         fmt.Sprintf("SendGrid %d: %s", status, compactBody(respBody)),
		RecipientsCount: len(to),
	}, nil
}

// CheckConnection sends a sandbox-mode message to the from address to verify
// the API key without delivering anything.
func (p *SendGridPublisher) CheckConnection(ctx context.Context) error {
	payload := sgMailRequest{
		Personalizations: []sgPersonalization{{To: []sgAddress{{Email: p.fromEmail}}}},
		From:             sgAddress{Email: p.fromEmail},
		Subject:          "Connection check",
		Content:          []sgContent{{Type: "text/plain", Value: "Connection check"}},
		MailSettings:     &sgMailSettings{SandboxMode: sgSandbox{Enable: true}},
	}

	status, respBody, err := p.post(ctx, payload)
	if err != nil {
		return fmt.Errorf("sendgrid unreachable: %w", err)
	}
	if status != http.StatusOK && status != http.StatusAccepted {
		return fmt.Errorf("SendGrid %d: %s", status, compactBody(respBody))
	}
	return nil
}

// prepare finalizes email copy for delivery. Non-email channels go out as
// plain text exactly as generated, under the campaign name.
func (p *SendGridPublisher) prepare(campaign *models.Campaign, channel, content string) (subject, body string) {
	if channel == models.ChannelEmail {
		parts := SplitEmail(content)
		if parts.Subject == "" {
			parts.Subject = campaign.Name
		}
		return FinalizeSubject(parts.Subject), FinalizeBody(parts.Body, campaign.LandingURL)
	}
	return FinalizeSubject(fmt.Sprintf("%s (%s)", campaign.Name, channel)), content
}

func (p *SendGridPublisher) post(ctx context.Context, payload sgMailRequest) (int, string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, "", fmt.Errorf("failed to encode mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v3/mail/send", bytes.NewReader(data))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return resp.StatusCode, string(raw), nil
}

// resolveRecipients picks the caller's list over the configured default and
// drops duplicates while preserving first-occurrence order.
func resolveRecipients(callerList, defaultList []string) []string {
	src := callerList
	if len(src) == 0 {
		src = defaultList
	}
	seen := make(map[string]struct{}, len(src))
	var out []string
	for _, addr := range src {
		addr = strings.TrimSpace(addr)
		if addr == "" {
			continue
		}
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}
	return out
}

// compactBody trims an error response to a single short line for messages.
func compactBody(body string) string {
	body = strings.TrimSpace(body)
	body = strings.ReplaceAll(body, "\n", " ")
	if len(body) > 300 {
		body = body[:300]
	}
	return body
}
