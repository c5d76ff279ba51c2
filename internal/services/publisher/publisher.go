package publisher

import (
	"context"

	"github.com/campaignhq/campaign-studio-backend/internal/models"
)

// Publisher delivers finished campaign copy to recipients. Implementations
// report delivery problems inside PublishResult; an error return is reserved
// for failures to record the attempt itself.
type Publisher interface {
	// Publish sends content for one campaign channel. recipients may be
	// empty, in which case the implementation falls back to its configured
	// default list (if any).
	Publish(ctx context.Context, campaign *models.Campaign, channel, content string, recipients []string) (*models.PublishResult, error)

	// Name identifies the publisher mode for logs and API responses.
	Name() string
}
