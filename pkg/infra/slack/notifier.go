package slack

import (
	"context"
	"fmt"

	"github.com/m-mizutani/prship/pkg/domain/interfaces"
	"github.com/m-mizutani/prship/pkg/domain/model"
	"github.com/slack-go/slack"
)

type notifier struct {
	webhookURL string
}

// NewNotifier creates a Notifier posting to a Slack incoming webhook
func NewNotifier(webhookURL string) interfaces.Notifier {
	return &notifier{webhookURL: webhookURL}
}

// NotifyRelease posts a message about the published release
func (n *notifier) NotifyRelease(ctx context.Context, result *model.PublishResult) error {
	msg := &slack.WebhookMessage{
		Text: BuildMessage(result),
	}

	if err := slack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		return fmt.Errorf("failed to post release notification for %s: %w", result.TagName, err)
	}
	return nil
}

// BuildMessage formats the notification text in Slack mrkdwn
func BuildMessage(result *model.PublishResult) string {
	text := fmt.Sprintf("Released *%s* %s from PR #%d", result.Repo.String(), result.TagName, result.PRNumber)
	if result.ReleaseURL != "" {
		text = fmt.Sprintf("Released *%s* <%s|%s> from PR #%d", result.Repo.String(), result.ReleaseURL, result.TagName, result.PRNumber)
	}
	return text + fmt.Sprintf("\nasset: `%s` (%d bytes)", result.AssetName, result.AssetSize)
}
