package interfaces

import (
	"context"

	"github.com/m-mizutani/prship/pkg/domain/model"
)

// Notifier announces a published release
type Notifier interface {
	NotifyRelease(ctx context.Context, result *model.PublishResult) error
}
