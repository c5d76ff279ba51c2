package publisher

import (
	"github.com/sirupsen/logrus"

	"github.com/campaignhq/campaign-studio-backend/internal/config"
)

// NewPublisher builds the publisher selected by configuration. An incomplete
// sendgrid setup falls back to the local mode with a warning instead of
// failing startup.
func NewPublisher(cfg config.PublishConfig, publishedDir string) Publisher {
	switch cfg.Mode {
	case "sendgrid":
		if !cfg.SendGridReady() {
			logrus.Warn("PUBLISH_MODE=sendgrid but API key or sender is missing, falling back to local publishing")
			return NewLocalFilePublisher(publishedDir, cfg.SendGridTo)
		}
		return NewSendGridPublisher(cfg.SendGridAPIKey, cfg.SendGridFrom, cfg.SendGridBaseURL, cfg.SendGridTo, cfg.SendGridTimeout)
	default:
		return NewLocalFilePublisher(publishedDir, cfg.SendGridTo)
	}
}
