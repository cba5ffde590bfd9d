package interfaces

import (
	"context"

	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/model"
)

// IncidentRepository is the per-channel incident state store. Implementations
// must serialize mutations per channel: Start, AddTimelineEvent, Mutate and
// Clear against the same channel never interleave partially.
type IncidentRepository interface {
	// Start creates an incident record with defaults if none exists and
	// appends the "Incident detected" timeline event. Returns false when an
	// incident is already active (a deliberate no-op, not an error).
	Start(ctx context.Context, channelID string) (bool, error)

	// Get returns a deep copy of the channel's incident record, or nil when
	// no incident is active.
	Get(ctx context.Context, channelID string) (*model.Incident, error)

	// IsActive reports whether an incident record exists for the channel.
	IsActive(ctx context.Context, channelID string) (bool, error)

	// Clear removes the channel's incident record. No-op when absent.
	Clear(ctx context.Context, channelID string) error

	// AddTimelineEvent appends a dated event if and only if a record exists.
	// Silently does nothing otherwise.
	AddTimelineEvent(ctx context.Context, channelID, message string) error

	// Mutate runs fn against the channel's record under the store lock as a
	// single atomic transition. Returns false without calling fn when no
	// incident is active.
	Mutate(ctx context.Context, channelID string, fn func(incident *model.Incident) error) (bool, error)

	// ProposeConfirmation registers a pending confirmation unless the channel
	// already has one. Returns false when a prompt is already pending.
	ProposeConfirmation(ctx context.Context, confirmation *model.PendingConfirmation) (bool, error)

	// TakeConfirmation removes and returns the channel's pending
	// confirmation, or nil when none is pending.
	TakeConfirmation(ctx context.Context, channelID string) (*model.PendingConfirmation, error)

	// PeekConfirmation returns the pending confirmation without removing it,
	// or nil when none is pending.
	PeekConfirmation(ctx context.Context, channelID string) (*model.PendingConfirmation, error)
}

// PinnedMessageRepository tracks the pinned summary message per channel.
type PinnedMessageRepository interface {
	// GetPinnedMessage returns the summary message timestamp, or "" when the
	// channel has no pinned summary yet.
	GetPinnedMessage(ctx context.Context, channelID string) (string, error)

	// SetPinnedMessage records the summary message timestamp.
	SetPinnedMessage(ctx context.Context, channelID, ts string) error

	// DeletePinnedMessage forgets the channel's summary message. No-op when
	// absent.
	DeletePinnedMessage(ctx context.Context, channelID string) error
}

// Repository bundles the state store facets used by the use case layer.
type Repository interface {
	IncidentRepository
	PinnedMessageRepository
}
