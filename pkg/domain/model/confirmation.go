package model

import (
	"time"

	"github.com/google/uuid"
)

// PendingConfirmation bridges a MEDIUM-confidence detection to an explicit
// human decision. At most one may exist per channel. The token is embedded in
// the confirm/ignore button values so a reply to a superseded prompt is
// rejected instead of confirming a later detection.
type PendingConfirmation struct {
	Token      string
	ChannelID  string
	Line       string // the message line that triggered the detection
	DetectedAt time.Time
}

// NewPendingConfirmation creates a pending confirmation for the channel.
func NewPendingConfirmation(channelID, line string, now time.Time) *PendingConfirmation {
	return &PendingConfirmation{
		Token:      uuid.NewString(),
		ChannelID:  channelID,
		Line:       line,
		DetectedAt: now,
	}
}
