package usecase

import "errors"

// Sentinel errors for the use case layer
var (
	// ErrNoActiveIncident reports a command against a channel without an
	// active incident. Callers surface it to the user; it is not a failure.
	ErrNoActiveIncident = errors.New("no active incident in this channel")

	// ErrActionNotFound reports an update against an unknown action item ID.
	ErrActionNotFound = errors.New("action item not found")

	// ErrStaleConfirmation reports a confirm/ignore reply whose token no
	// longer matches the channel's pending confirmation.
	ErrStaleConfirmation = errors.New("confirmation prompt is no longer pending")
)

// Context keys for error values
const (
	ChannelIDKey = "channel_id"
	ActionIDKey  = "action_id"
)
