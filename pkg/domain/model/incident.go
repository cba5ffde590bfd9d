package model

import (
	"time"

	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/types"
)

// Incident status labels shown in the pinned summary. Status is a free-form
// normalized label; these are the values produced by the built-in detectors.
const (
	StatusInvestigating = "Investigating"
	StatusResolved      = "Resolved"
)

// Incident is the per-channel incident record derived from chat messages.
// Exactly one record may exist per channel at a time.
type Incident struct {
	ChannelID string
	Severity  types.Severity
	Status    string
	Abstract  string // short one-line label, empty until detected
	Owner     string // mention token (e.g. "<@U123ABC>"), empty until assigned
	ETA       string // formatted date or "EOD (<date>)", empty until detected
	TicketID  string // issue tracker key (e.g. "ABC-123"), empty until detected
	Links     []string

	// PendingOwnerRequest holds the user ID that was asked to take ownership
	// and has not yet replied.
	PendingOwnerRequest string

	Timeline    []TimelineEvent
	JustStarted bool

	Actions      []ActionEntry
	NextActionID int

	CreatedAt time.Time
}

// TimelineEvent is one dated entry of the incident timeline.
type TimelineEvent struct {
	At      time.Time
	Message string
}

// NewIncident creates an incident record with default field values.
func NewIncident(channelID string, now time.Time) *Incident {
	return &Incident{
		ChannelID:    channelID,
		Severity:     types.DefaultSeverity,
		Status:       StatusInvestigating,
		NextActionID: 1,
		JustStarted:  true,
		CreatedAt:    now,
	}
}

// AppendTimeline adds a dated event to the incident timeline.
func (x *Incident) AppendTimeline(now time.Time, message string) {
	x.Timeline = append(x.Timeline, TimelineEvent{At: now, Message: message})
}

// HasLink reports whether the exact URL is already recorded.
func (x *Incident) HasLink(url string) bool {
	for _, l := range x.Links {
		if l == url {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the incident record.
func (x *Incident) Clone() *Incident {
	copied := *x

	copied.Links = append([]string(nil), x.Links...)
	copied.Timeline = append([]TimelineEvent(nil), x.Timeline...)

	copied.Actions = make([]ActionEntry, len(x.Actions))
	for i, e := range x.Actions {
		copied.Actions[i] = e.clone()
	}

	return &copied
}
