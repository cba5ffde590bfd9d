package slack

import (
	"context"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/utils/logging"
	"github.com/slack-go/slack"
)

const (
	openViewAttempts = 3
	openViewBackoff  = 250 * time.Millisecond
)

// client implements Service over the Slack Web API.
type client struct {
	api *slack.Client
}

// Option is a functional option for client configuration.
type Option func(*options)

type options struct {
	httpClient *http.Client
	apiURL     string
}

// WithHTTPClient replaces the HTTP client used for Web API calls. Used to
// install a custom CA bundle or TLS configuration for corporate proxies.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		o.httpClient = httpClient
	}
}

// WithAPIURL overrides the Slack API endpoint (for tests).
func WithAPIURL(url string) Option {
	return func(o *options) {
		o.apiURL = url
	}
}

// New creates a new Slack service with the provided bot token.
func New(token string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var apiOpts []slack.Option
	if o.httpClient != nil {
		apiOpts = append(apiOpts, slack.OptionHTTPClient(o.httpClient))
	}
	if o.apiURL != "" {
		apiOpts = append(apiOpts, slack.OptionAPIURL(o.apiURL))
	}

	return &client{api: slack.New(token, apiOpts...)}, nil
}

func (c *client) PostMessage(ctx context.Context, channelID string, blocks []slack.Block, text string) (string, error) {
	_, ts, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post message", goerr.V("channelID", channelID))
	}
	return ts, nil
}

func (c *client) UpdateMessage(ctx context.Context, channelID string, timestamp string, blocks []slack.Block, text string) error {
	_, _, _, err := c.api.UpdateMessageContext(ctx, channelID, timestamp,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to update message",
			goerr.V("channelID", channelID), goerr.V("timestamp", timestamp))
	}
	return nil
}

func (c *client) PostText(ctx context.Context, channelID string, text string) error {
	_, _, err := c.api.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false))
	if err != nil {
		return goerr.Wrap(err, "failed to post text message", goerr.V("channelID", channelID))
	}
	return nil
}

func (c *client) PostEphemeral(ctx context.Context, channelID, userID, text string) error {
	_, err := c.api.PostEphemeralContext(ctx, channelID, userID, slack.MsgOptionText(text, false))
	if err != nil {
		return goerr.Wrap(err, "failed to post ephemeral message",
			goerr.V("channelID", channelID), goerr.V("userID", userID))
	}
	return nil
}

func (c *client) AddPin(ctx context.Context, channelID, timestamp string) error {
	ref := slack.NewRefToMessage(channelID, timestamp)
	if err := c.api.AddPinContext(ctx, channelID, ref); err != nil {
		return goerr.Wrap(err, "failed to pin message",
			goerr.V("channelID", channelID), goerr.V("timestamp", timestamp))
	}
	return nil
}

func (c *client) RemovePin(ctx context.Context, channelID, timestamp string) error {
	ref := slack.NewRefToMessage(channelID, timestamp)
	if err := c.api.RemovePinContext(ctx, channelID, ref); err != nil {
		return goerr.Wrap(err, "failed to unpin message",
			goerr.V("channelID", channelID), goerr.V("timestamp", timestamp))
	}
	return nil
}

// OpenView retries briefly because views.open races the interaction trigger
// expiry under load.
func (c *client) OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error {
	var lastErr error
	for attempt := 1; attempt <= openViewAttempts; attempt++ {
		if _, err := c.api.OpenViewContext(ctx, triggerID, view); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if attempt < openViewAttempts {
			logging.From(ctx).Warn("views.open failed, retrying",
				"attempt", attempt, "error", lastErr)
			select {
			case <-ctx.Done():
				return goerr.Wrap(ctx.Err(), "canceled while retrying views.open")
			case <-time.After(openViewBackoff * time.Duration(attempt)):
			}
		}
	}
	return goerr.Wrap(lastErr, "failed to open view", goerr.V("attempts", openViewAttempts))
}
