package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/interfaces"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/model"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/types"
	slacksvc "github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/service/slack"
	"github.com/slack-go/slack"
)

// TimestampLayout formats timeline and action timestamps in the summary.
const TimestampLayout = "02 Jan 2006, 03:04 PM"

const (
	maxOpenActionsShown = 10
	maxDoneActionsShown = 10
	maxTimelineShown    = 6
)

// RenderSummary formats an incident record into the pinned summary: fallback
// text plus Block Kit blocks with the Manage Action Items button. It is a
// pure function over the record.
func RenderSummary(incident *model.Incident) (string, []slack.Block) {
	text := renderSummaryText(incident)

	blocks := []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, text, false, false),
			nil, nil,
		),
		slack.NewActionBlock(
			"incident_summary_actions",
			slack.NewButtonBlockElement(
				SlackActionIDManageActions,
				incident.ChannelID,
				slack.NewTextBlockObject(slack.PlainTextType, "Manage Action Items", false, false),
			),
		),
	}

	return text, blocks
}

func renderSummaryText(incident *model.Incident) string {
	lines := []string{
		"📌 *INCIDENT SUMMARY*",
		"*Abstract:* " + orPlaceholder(incident.Abstract, "TBD"),
		"*Severity:* " + incident.Severity.String(),
		"*Status:* " + orPlaceholder(incident.Status, "Investigating"),
		"*Owner:* " + orPlaceholder(incident.Owner, "TBD"),
		"*ETA:* " + orPlaceholder(incident.ETA, "TBD"),
		"*Ticket:* " + orPlaceholder(incident.TicketID, "Not linked"),
		"",
		"*Action Items:*",
	}

	open, done := splitRendered(incident)

	if len(open) > 0 {
		for i, item := range open {
			if i >= maxOpenActionsShown {
				break
			}
			lines = append(lines, formatActionLine(item))
		}
		if overflow := len(open) - maxOpenActionsShown; overflow > 0 {
			lines = append(lines, fmt.Sprintf("_... %d more open action(s)_", overflow))
		}
	} else {
		lines = append(lines, "None")
	}

	lines = append(lines, "", "*Done Actions:*")
	if len(done) > 0 {
		start := 0
		if len(done) > maxDoneActionsShown {
			start = len(done) - maxDoneActionsShown
		}
		for _, item := range done[start:] {
			lines = append(lines, formatActionLine(item))
		}
	} else {
		lines = append(lines, "None")
	}

	lines = append(lines, "", "*Timeline:*", renderTimeline(incident.Timeline))

	lines = append(lines, "", "*Links / References:*")
	if len(incident.Links) > 0 {
		for _, link := range incident.Links {
			lines = append(lines, "• "+link)
		}
	} else {
		lines = append(lines, "None")
	}

	return strings.Join(lines, "\n")
}

// splitRendered partitions actions without mutating the record: rendering
// must not migrate legacy entries behind the store's back. Legacy entries
// show up as open items without an ID.
func splitRendered(incident *model.Incident) (open, done []*model.ActionItem) {
	for _, e := range incident.Actions {
		if e.IsLegacy() {
			open = append(open, &model.ActionItem{Text: e.Legacy, Status: types.ActionStatusOpen})
			continue
		}
		if e.Item.Status == types.ActionStatusDone {
			done = append(done, e.Item)
		} else {
			open = append(open, e.Item)
		}
	}
	return open, done
}

func formatActionLine(item *model.ActionItem) string {
	id := "?"
	if item.ID > 0 {
		id = fmt.Sprintf("%d", item.ID)
	}

	var meta []string
	// Avoid repeating the owner when it already appears in the action text.
	if item.Owner != "" && !strings.Contains(item.Text, item.Owner) {
		meta = append(meta, item.Owner)
	}
	if item.Due != "" {
		meta = append(meta, "due "+item.Due)
	}

	line := fmt.Sprintf("• #%s: %s", id, item.Text)
	if len(meta) > 0 {
		line += " (" + strings.Join(meta, ", ") + ")"
	}
	return line
}

func renderTimeline(events []model.TimelineEvent) string {
	if len(events) == 0 {
		return "None"
	}

	start := 0
	if len(events) > maxTimelineShown {
		start = len(events) - maxTimelineShown
	}

	lines := make([]string, 0, maxTimelineShown)
	for _, ev := range events[start:] {
		lines = append(lines, "• "+ev.At.Format(TimestampLayout)+" – "+ev.Message)
	}
	return strings.Join(lines, "\n")
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

// RenderConfirmationPrompt formats the interactive prompt for a
// MEDIUM-confidence detection. The confirm/ignore button values carry the
// prompt token so stale replies can be rejected.
func RenderConfirmationPrompt(prompt *model.PendingConfirmation) (string, []slack.Block) {
	text := "⚠️ Possible incident detected"

	confirmBtn := slack.NewButtonBlockElement(
		SlackActionIDConfirmIncident,
		prompt.Token,
		slack.NewTextBlockObject(slack.PlainTextType, "Yes – Track Incident", false, false),
	)
	confirmBtn.Style = slack.StyleDanger

	ignoreBtn := slack.NewButtonBlockElement(
		SlackActionIDIgnoreIncident,
		prompt.Token,
		slack.NewTextBlockObject(slack.PlainTextType, "Ignore", false, false),
	)

	blocks := []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, "*Detected message:*\n>"+prompt.Line, false, false),
			nil, nil,
		),
		slack.NewActionBlock("incident_confirmation", confirmBtn, ignoreBtn),
	}

	return text, blocks
}

// refreshSummary re-renders the pinned summary for the channel, posting and
// pinning it on first render. Clears the just-started flag afterwards.
func refreshSummary(ctx context.Context, repo interfaces.Repository, svc slacksvc.Service, channelID string) error {
	if svc == nil {
		return nil
	}

	incident, err := repo.Get(ctx, channelID)
	if err != nil {
		return err
	}
	if incident == nil {
		return nil
	}

	text, blocks := RenderSummary(incident)

	ts, err := repo.GetPinnedMessage(ctx, channelID)
	if err != nil {
		return err
	}

	if ts != "" {
		if err := svc.UpdateMessage(ctx, channelID, ts, blocks, text); err != nil {
			return goerr.Wrap(err, "failed to update summary message", goerr.V(ChannelIDKey, channelID))
		}
	} else {
		newTS, err := svc.PostMessage(ctx, channelID, blocks, text)
		if err != nil {
			return goerr.Wrap(err, "failed to post summary message", goerr.V(ChannelIDKey, channelID))
		}
		if err := svc.AddPin(ctx, channelID, newTS); err != nil {
			return goerr.Wrap(err, "failed to pin summary message", goerr.V(ChannelIDKey, channelID))
		}
		if err := repo.SetPinnedMessage(ctx, channelID, newTS); err != nil {
			return err
		}
	}

	if incident.JustStarted {
		if _, err := repo.Mutate(ctx, channelID, func(incident *model.Incident) error {
			incident.JustStarted = false
			return nil
		}); err != nil {
			return err
		}
	}

	return nil
}
