package model

import (
	"strings"
	"time"

	"github.com/slack-go/slack/slackevents"
)

// Message represents an inbound chat message for the processing pipeline.
type Message struct {
	channelID string
	userID    string
	text      string
	eventTS   string
	createdAt time.Time
}

// NewMessage creates a Message from a Slack Events API event. Returns nil for
// event types the pipeline does not consume, for bot-authored messages, and
// for messages with empty text or no sender.
func NewMessage(ev *slackevents.EventsAPIEvent) *Message {
	if ev == nil || ev.Type != slackevents.CallbackEvent {
		return nil
	}

	switch evt := ev.InnerEvent.Data.(type) {
	case *slackevents.MessageEvent:
		if evt.BotID != "" || evt.SubType == "bot_message" {
			return nil
		}
		if evt.User == "" || evt.Text == "" {
			return nil
		}
		return &Message{
			channelID: evt.Channel,
			userID:    evt.User,
			text:      evt.Text,
			eventTS:   evt.EventTimeStamp,
			createdAt: time.Now(),
		}
	default:
		return nil
	}
}

// NewMessageFromData creates a Message from raw values (for tests and replay).
func NewMessageFromData(channelID, userID, text string) *Message {
	return &Message{
		channelID: channelID,
		userID:    userID,
		text:      text,
		createdAt: time.Now(),
	}
}

func (m *Message) ChannelID() string {
	return m.channelID
}

func (m *Message) UserID() string {
	return m.userID
}

func (m *Message) Text() string {
	return m.text
}

func (m *Message) EventTS() string {
	return m.eventTS
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

// Sender returns the author as a mention token.
func (m *Message) Sender() string {
	return Mention(m.userID)
}

// Lines splits the message text into trimmed non-empty lines.
func (m *Message) Lines() []string {
	var lines []string
	for _, line := range strings.Split(m.text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
