package model

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/types"
)

// ActionItem is a trackable task attached to an incident. IDs are unique per
// channel, assigned from the incident's counter, and never reused.
type ActionItem struct {
	ID        int                `json:"id"`
	Text      string             `json:"text"`
	Owner     string             `json:"owner,omitempty"` // mention token, optional
	Due       string             `json:"due,omitempty"`   // date or EOD expression, optional
	Status    types.ActionStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	CreatedBy string             `json:"created_by,omitempty"`
	DoneAt    *time.Time         `json:"done_at,omitempty"`
	DoneBy    string             `json:"done_by,omitempty"`
}

// ActionEntry holds either a structured action item or a legacy free-text
// entry from summaries written before action items became structured. Legacy
// entries are migrated by NormalizeActions and never appear after it runs.
type ActionEntry struct {
	Item   *ActionItem
	Legacy string
}

// IsLegacy reports whether the entry still carries an unmigrated text entry.
func (x ActionEntry) IsLegacy() bool {
	return x.Item == nil
}

func (x ActionEntry) clone() ActionEntry {
	if x.Item == nil {
		return x
	}
	item := *x.Item
	if x.Item.DoneAt != nil {
		at := *x.Item.DoneAt
		item.DoneAt = &at
	}
	return ActionEntry{Item: &item}
}

// UnmarshalJSON accepts both the structured object form and the legacy plain
// string form.
func (x *ActionEntry) UnmarshalJSON(data []byte) error {
	var legacy string
	if err := json.Unmarshal(data, &legacy); err == nil {
		*x = ActionEntry{Legacy: legacy}
		return nil
	}

	var item ActionItem
	if err := json.Unmarshal(data, &item); err != nil {
		return goerr.Wrap(err, "action entry is neither string nor object")
	}
	*x = ActionEntry{Item: &item}
	return nil
}

// MarshalJSON emits the structured form; legacy entries are emitted as plain
// strings so round-tripping does not fake a migration.
func (x ActionEntry) MarshalJSON() ([]byte, error) {
	if x.Item == nil {
		return json.Marshal(x.Legacy)
	}
	return json.Marshal(x.Item)
}

// ActionItemPatch describes a partial update of an action item. Nil fields are
// left unchanged.
type ActionItemPatch struct {
	Text   *string
	Owner  *string
	Due    *string
	Status *types.ActionStatus
	DoneBy string // stamped on a transition to done
}

var mentionPattern = regexp.MustCompile(`<@([A-Z0-9]+)>`)

// Mention wraps a platform user ID in the mention token format.
func Mention(userID string) string {
	return "<@" + userID + ">"
}

// Mentions returns the user IDs of all mention tokens found in the text.
func Mentions(text string) []string {
	matches := mentionPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	ids := make([]string, len(matches))
	for i, m := range matches {
		ids[i] = m[1]
	}
	return ids
}

// InferOwnerFromText treats the first mention token in the text as the action
// owner. Returns an empty string when the text has no mention.
func InferOwnerFromText(text string) string {
	m := mentionPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return Mention(m[1])
}

// NormalizeActions ensures every action entry is structured and the ID counter
// is ahead of every existing ID. Legacy entries are migrated in encounter
// order. Safe to call repeatedly: existing IDs are never reassigned and
// migrated entries are not migrated again.
func (x *Incident) NormalizeActions(now time.Time) {
	if x.NextActionID < 1 {
		x.NextActionID = 1
	}

	maxID := 0
	normalized := make([]ActionEntry, 0, len(x.Actions))
	for _, e := range x.Actions {
		item := e.Item
		if item == nil {
			item = &ActionItem{
				ID:        x.NextActionID,
				Text:      strings.TrimSpace(e.Legacy),
				Status:    types.ActionStatusOpen,
				CreatedAt: now,
			}
			x.NextActionID++
		}

		if item.ID < 1 {
			item.ID = x.NextActionID
			x.NextActionID++
		}
		item.Text = strings.TrimSpace(item.Text)
		item.Status = item.Status.Normalize()
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}

		if item.ID > maxID {
			maxID = item.ID
		}
		normalized = append(normalized, ActionEntry{Item: item})
	}

	x.Actions = normalized
	if x.NextActionID <= maxID {
		x.NextActionID = maxID + 1
	}
}

// SplitActions partitions the actions into open and done lists, preserving
// order. It normalizes first so callers never see legacy entries.
func (x *Incident) SplitActions(now time.Time) (open, done []*ActionItem) {
	x.NormalizeActions(now)
	for _, e := range x.Actions {
		if e.Item.Status == types.ActionStatusDone {
			done = append(done, e.Item)
		} else {
			open = append(open, e.Item)
		}
	}
	return open, done
}

// AddActionItem appends a new open action item and returns it. The text must
// be non-empty after trimming. The owner is not defaulted to the creator; it
// stays empty unless supplied.
func (x *Incident) AddActionItem(now time.Time, text, createdBy, owner, due string) (*ActionItem, error) {
	x.NormalizeActions(now)

	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return nil, goerr.Wrap(ErrEmptyActionText, "cannot add action item", goerr.V("channel_id", x.ChannelID))
	}

	item := &ActionItem{
		ID:        x.NextActionID,
		Text:      cleaned,
		Owner:     owner,
		Due:       due,
		Status:    types.ActionStatusOpen,
		CreatedAt: now,
		CreatedBy: createdBy,
	}
	x.NextActionID = item.ID + 1
	x.Actions = append(x.Actions, ActionEntry{Item: item})
	return item, nil
}

// UpdateActionItem applies a partial patch to the action item with the given
// ID. A transition to done stamps DoneAt/DoneBy; a transition away from done
// clears both. Returns nil when no item has that ID; a miss is a valid
// outcome the caller must check, not an error.
func (x *Incident) UpdateActionItem(now time.Time, id int, patch ActionItemPatch) *ActionItem {
	x.NormalizeActions(now)

	for _, e := range x.Actions {
		item := e.Item
		if item.ID != id {
			continue
		}

		if patch.Text != nil && strings.TrimSpace(*patch.Text) != "" {
			item.Text = strings.TrimSpace(*patch.Text)
		}
		if patch.Owner != nil {
			item.Owner = *patch.Owner
		}
		if patch.Due != nil {
			item.Due = *patch.Due
		}
		if patch.Status != nil && patch.Status.IsValid() {
			item.Status = *patch.Status
			if item.Status == types.ActionStatusDone {
				at := now
				item.DoneAt = &at
				item.DoneBy = patch.DoneBy
			} else {
				item.DoneAt = nil
				item.DoneBy = ""
			}
		}
		return item
	}
	return nil
}
