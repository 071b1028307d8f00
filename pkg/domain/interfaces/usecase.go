package interfaces

import (
	"context"

	"github.com/m-mizutani/prship/pkg/domain/model"
)

// WebhookUseCase defines the interface for webhook event processing
type WebhookUseCase interface {
	// ProcessEvent processes a webhook event
	ProcessEvent(ctx context.Context, event *model.WebhookEvent) error
}

// PublishUseCase defines operations for publishing a release from a pull request build
type PublishUseCase interface {
	// Publish locates the build artifact of the target and publishes it as a release
	Publish(ctx context.Context, target *model.PublishTarget) (*model.PublishResult, error)
}
