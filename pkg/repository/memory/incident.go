package memory

import (
	"context"
	"sync"
	"time"

	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/interfaces"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/model"
)

// Repository is the in-process incident state store. All state lives for the
// process lifetime only. A single lock guards the maps; every mutation is one
// critical section, so transitions against the same channel never interleave.
type Repository struct {
	mu            sync.RWMutex
	incidents     map[string]*model.Incident
	confirmations map[string]*model.PendingConfirmation
	pinned        map[string]string

	// now is swappable for tests
	now func() time.Time
}

var _ interfaces.Repository = (*Repository)(nil)

// Option is a functional option for repository configuration
type Option func(*Repository)

// WithClock replaces the time source (for tests).
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// New creates an empty in-memory repository.
func New(opts ...Option) *Repository {
	r := &Repository{
		incidents:     make(map[string]*model.Incident),
		confirmations: make(map[string]*model.PendingConfirmation),
		pinned:        make(map[string]string),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start creates an incident record with defaults if none exists.
func (r *Repository) Start(ctx context.Context, channelID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.incidents[channelID]; exists {
		return false, nil
	}

	now := r.now()
	incident := model.NewIncident(channelID, now)
	incident.AppendTimeline(now, "Incident detected")
	r.incidents[channelID] = incident
	return true, nil
}

// Get returns a deep copy of the channel's incident record, or nil.
func (r *Repository) Get(ctx context.Context, channelID string) (*model.Incident, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	incident, exists := r.incidents[channelID]
	if !exists {
		return nil, nil
	}
	return incident.Clone(), nil
}

// IsActive reports whether an incident record exists for the channel.
func (r *Repository) IsActive(ctx context.Context, channelID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.incidents[channelID]
	return exists, nil
}

// Clear removes the channel's incident record. No-op when absent.
func (r *Repository) Clear(ctx context.Context, channelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.incidents, channelID)
	return nil
}

// AddTimelineEvent appends a dated event if a record exists.
func (r *Repository) AddTimelineEvent(ctx context.Context, channelID, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	incident, exists := r.incidents[channelID]
	if !exists {
		return nil
	}
	incident.AppendTimeline(r.now(), message)
	return nil
}

// Mutate runs fn against the live record under the write lock.
func (r *Repository) Mutate(ctx context.Context, channelID string, fn func(incident *model.Incident) error) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	incident, exists := r.incidents[channelID]
	if !exists {
		return false, nil
	}
	if err := fn(incident); err != nil {
		return true, err
	}
	return true, nil
}

// ProposeConfirmation registers a pending confirmation unless one exists.
func (r *Repository) ProposeConfirmation(ctx context.Context, confirmation *model.PendingConfirmation) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.confirmations[confirmation.ChannelID]; exists {
		return false, nil
	}
	r.confirmations[confirmation.ChannelID] = confirmation
	return true, nil
}

// TakeConfirmation removes and returns the pending confirmation, or nil.
func (r *Repository) TakeConfirmation(ctx context.Context, channelID string) (*model.PendingConfirmation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	confirmation, exists := r.confirmations[channelID]
	if !exists {
		return nil, nil
	}
	delete(r.confirmations, channelID)
	return confirmation, nil
}

// PeekConfirmation returns the pending confirmation without removing it.
func (r *Repository) PeekConfirmation(ctx context.Context, channelID string) (*model.PendingConfirmation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	confirmation, exists := r.confirmations[channelID]
	if !exists {
		return nil, nil
	}
	copied := *confirmation
	return &copied, nil
}

// GetPinnedMessage returns the pinned summary message timestamp, or "".
func (r *Repository) GetPinnedMessage(ctx context.Context, channelID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.pinned[channelID], nil
}

// SetPinnedMessage records the pinned summary message timestamp.
func (r *Repository) SetPinnedMessage(ctx context.Context, channelID, ts string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pinned[channelID] = ts
	return nil
}

// DeletePinnedMessage forgets the channel's summary message.
func (r *Repository) DeletePinnedMessage(ctx context.Context, channelID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.pinned, channelID)
	return nil
}
