package slack

import (
	"context"

	"github.com/slack-go/slack"
)

// Service provides the Slack Web API surface used by the incident use cases.
type Service interface {
	// PostMessage posts a Block Kit message to a channel and returns the
	// message timestamp. The text parameter is the notification fallback.
	PostMessage(ctx context.Context, channelID string, blocks []slack.Block, text string) (string, error)

	// UpdateMessage rewrites an existing Block Kit message identified by
	// channel and timestamp.
	UpdateMessage(ctx context.Context, channelID string, timestamp string, blocks []slack.Block, text string) error

	// PostText posts a plain text message to a channel.
	PostText(ctx context.Context, channelID string, text string) error

	// PostEphemeral posts a message only the given user can see.
	PostEphemeral(ctx context.Context, channelID, userID, text string) error

	// AddPin pins the message identified by channel and timestamp.
	AddPin(ctx context.Context, channelID, timestamp string) error

	// RemovePin unpins the message identified by channel and timestamp.
	RemovePin(ctx context.Context, channelID, timestamp string) error

	// OpenView opens a modal view in response to an interaction trigger.
	OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error
}
