package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/interfaces"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/model"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/types"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/service/detect"
	slacksvc "github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/service/slack"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/utils/logging"
	"github.com/slack-go/slack/slackevents"
)

// SlackUseCases runs the message processing pipeline for inbound chat events.
type SlackUseCases struct {
	repo         interfaces.Repository
	detector     *detect.Detector
	slackService slacksvc.Service
	now          func() time.Time
}

// ProcessResult is the outcome of running the pipeline over one message.
type ProcessResult struct {
	// Started is true when this message created the incident record.
	Started bool
	// Updated is true when any field, link, timeline entry or action item
	// changed.
	Updated bool
	// Prompt is non-nil when a MEDIUM-confidence detection needs human
	// confirmation; the caller posts the confirmation request.
	Prompt *model.PendingConfirmation
}

// Changed reports whether the pinned summary needs a refresh.
func (r *ProcessResult) Changed() bool {
	return r.Started || r.Updated
}

// HandleSlackEvent converts a Slack Events API event into the domain message
// and runs the pipeline. App mentions get a short acknowledgement instead.
func (uc *SlackUseCases) HandleSlackEvent(ctx context.Context, event *slackevents.EventsAPIEvent) error {
	if mention, ok := event.InnerEvent.Data.(*slackevents.AppMentionEvent); ok {
		return uc.handleMention(ctx, mention.Channel)
	}

	msg := model.NewMessage(event)
	if msg == nil {
		logging.From(ctx).Debug("ignoring slack event",
			"type", event.Type, "innerType", event.InnerEvent.Type)
		return nil
	}

	return uc.HandleMessage(ctx, msg)
}

// HandleMessage runs the pipeline and performs the follow-up side effects:
// posting the confirmation prompt and refreshing the pinned summary.
func (uc *SlackUseCases) HandleMessage(ctx context.Context, msg *model.Message) error {
	result, err := uc.ProcessMessage(ctx, msg)
	if err != nil {
		return goerr.Wrap(err, "failed to process message", goerr.V(ChannelIDKey, msg.ChannelID()))
	}

	if result.Prompt != nil && uc.slackService != nil {
		text, blocks := RenderConfirmationPrompt(result.Prompt)
		if _, err := uc.slackService.PostMessage(ctx, msg.ChannelID(), blocks, text); err != nil {
			return goerr.Wrap(err, "failed to post confirmation prompt")
		}
	}

	if result.Changed() {
		if err := refreshSummary(ctx, uc.repo, uc.slackService, msg.ChannelID()); err != nil {
			return goerr.Wrap(err, "failed to refresh incident summary")
		}
	}

	return nil
}

// ProcessMessage runs detection and extraction over one inbound message and
// mutates the channel state. It performs no chat I/O; the returned result
// tells the caller what to render.
func (uc *SlackUseCases) ProcessMessage(ctx context.Context, msg *model.Message) (*ProcessResult, error) {
	result := &ProcessResult{}
	channelID := msg.ChannelID()

	lines := msg.Lines()
	if len(lines) == 0 {
		return result, nil
	}

	// Phase 1: incident detection. A HIGH line ends detection immediately,
	// even when an incident is already active; any MEDIUM line aborts the
	// rest of the message, emitting a confirmation prompt when no incident
	// is active and none is already pending.
detection:
	for _, line := range lines {
		switch uc.detector.ClassifyIntent(line) {
		case types.ConfidenceHigh:
			started, err := uc.repo.Start(ctx, channelID)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to start incident", goerr.V(ChannelIDKey, channelID))
			}
			result.Started = started
			break detection

		case types.ConfidenceMedium:
			active, err := uc.repo.IsActive(ctx, channelID)
			if err != nil {
				return nil, err
			}
			if !active {
				prompt := model.NewPendingConfirmation(channelID, line, uc.now())
				proposed, err := uc.repo.ProposeConfirmation(ctx, prompt)
				if err != nil {
					return nil, err
				}
				if proposed {
					result.Prompt = prompt
				}
			}
			return result, nil
		}
	}

	active, err := uc.repo.IsActive(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if !active {
		return result, nil
	}

	// Phase 2: field extraction over every line, as one atomic transition.
	_, err = uc.repo.Mutate(ctx, channelID, func(incident *model.Incident) error {
		now := uc.now()
		incident.NormalizeActions(now)
		for _, line := range lines {
			if uc.processLine(incident, msg, line, now) {
				result.Updated = true
			}
		}
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to apply extractors", goerr.V(ChannelIDKey, channelID))
	}

	return result, nil
}

// pipelineStep is one extractor in the per-line chain. Steps run in order; a
// matching consuming step ends processing of the line. The abstract step never
// stops the chain, and link extraction runs outside it entirely.
type pipelineStep struct {
	name      string
	consuming bool
	apply     func(incident *model.Incident, msg *model.Message, line string, now time.Time) (matched, updated bool)
}

func (uc *SlackUseCases) processLine(incident *model.Incident, msg *model.Message, line string, now time.Time) bool {
	updated := false

	// Links are additive and evaluated for every line, even one a consuming
	// step claims.
	if _, changed := uc.applyLinks(incident, msg, line, now); changed {
		updated = true
	}

	for _, step := range uc.pipelineSteps() {
		matched, changed := step.apply(incident, msg, line, now)
		if changed {
			updated = true
		}
		if matched && step.consuming {
			break
		}
	}
	return updated
}

func (uc *SlackUseCases) pipelineSteps() []pipelineStep {
	return []pipelineStep{
		{name: "abstract", consuming: false, apply: uc.applyAbstract},
		{name: "owner_question", consuming: true, apply: uc.applyOwnerQuestion},
		{name: "owner_confirmation", consuming: true, apply: uc.applyOwnerConfirmation},
		{name: "status", consuming: true, apply: uc.applyStatus},
		{name: "ticket", consuming: true, apply: uc.applyTicket},
		{name: "owner", consuming: true, apply: uc.applyOwner},
		{name: "eta", consuming: true, apply: uc.applyETA},
		{name: "action", consuming: true, apply: uc.applyAction},
	}
}

// applyAbstract sets the one-line abstract, only while it is still unset.
func (uc *SlackUseCases) applyAbstract(incident *model.Incident, _ *model.Message, line string, now time.Time) (bool, bool) {
	if incident.Abstract != "" {
		return false, false
	}
	abstract := uc.detector.ExtractAbstract(line)
	if abstract == "" {
		return false, false
	}
	incident.Abstract = abstract
	incident.AppendTimeline(now, "Abstract set to "+abstract)
	return true, true
}

// applyOwnerQuestion records an open "who owns this?" question. The line is
// consumed even when it carries no mention, so the question itself is not
// misread as an ownership claim.
func (uc *SlackUseCases) applyOwnerQuestion(incident *model.Incident, _ *model.Message, line string, _ time.Time) (bool, bool) {
	if !uc.detector.DetectOwnerQuestion(line) {
		return false, false
	}
	if mentions := model.Mentions(line); len(mentions) > 0 {
		incident.PendingOwnerRequest = mentions[0]
	}
	return true, false
}

// applyOwnerConfirmation resolves a pending ownership request when the asked
// user replies with an exact acceptance.
func (uc *SlackUseCases) applyOwnerConfirmation(incident *model.Incident, msg *model.Message, line string, now time.Time) (bool, bool) {
	if incident.PendingOwnerRequest == "" {
		return false, false
	}
	if !uc.detector.IsOwnerConfirmation(line) || msg.UserID() != incident.PendingOwnerRequest {
		return false, false
	}

	incident.Owner = msg.Sender()
	incident.PendingOwnerRequest = ""
	incident.AppendTimeline(now, "Owner assigned to "+incident.Owner)
	return true, true
}

func (uc *SlackUseCases) applyStatus(incident *model.Incident, _ *model.Message, line string, now time.Time) (bool, bool) {
	status := uc.detector.ExtractStatus(line)
	if status == "" || status == incident.Status {
		return false, false
	}
	incident.Status = status
	incident.AppendTimeline(now, "Status updated to "+status)
	return true, true
}

func (uc *SlackUseCases) applyTicket(incident *model.Incident, _ *model.Message, line string, now time.Time) (bool, bool) {
	ticket := uc.detector.ExtractTicket(line)
	if ticket == "" || ticket == incident.TicketID {
		return false, false
	}
	incident.TicketID = ticket
	incident.AppendTimeline(now, "Ticket linked: "+ticket)
	return true, true
}

// applyLinks is additive: every new URL is recorded.
func (uc *SlackUseCases) applyLinks(incident *model.Incident, _ *model.Message, line string, now time.Time) (bool, bool) {
	updated := false
	for _, link := range uc.detector.ExtractLinks(line) {
		if incident.HasLink(link) {
			continue
		}
		incident.Links = append(incident.Links, link)
		incident.AppendTimeline(now, "Reference added: "+link)
		updated = true
	}
	return updated, updated
}

func (uc *SlackUseCases) applyOwner(incident *model.Incident, msg *model.Message, line string, now time.Time) (bool, bool) {
	owner := uc.detector.ExtractOwner(line, msg.Sender())
	if owner == "" || owner == incident.Owner {
		return false, false
	}
	incident.Owner = owner
	incident.AppendTimeline(now, "Owner assigned to "+owner)
	return true, true
}

func (uc *SlackUseCases) applyETA(incident *model.Incident, _ *model.Message, line string, now time.Time) (bool, bool) {
	eta := uc.detector.ExtractETA(line)
	if eta == "" || eta == incident.ETA {
		return false, false
	}
	incident.ETA = eta
	incident.AppendTimeline(now, "ETA set to "+eta)
	return true, true
}

// applyAction turns a strong commitment line into an action item. The owner is
// inferred from a mention in the action text only, never defaulted to the
// sender. Exact-text duplicates of an open item are suppressed; done items are
// not checked, so the same text can be reopened as a fresh item.
func (uc *SlackUseCases) applyAction(incident *model.Incident, msg *model.Message, line string, now time.Time) (bool, bool) {
	action := uc.detector.ExtractAction(line, msg.Sender())
	if action == "" {
		return false, false
	}

	open, _ := incident.SplitActions(now)
	for _, item := range open {
		if item.Text == action {
			return true, false
		}
	}

	owner := model.InferOwnerFromText(action)
	due := uc.detector.ExtractETA(line)

	item, err := incident.AddActionItem(now, action, msg.Sender(), owner, due)
	if err != nil {
		// extracted action text is never empty after trimming
		return false, false
	}
	incident.AppendTimeline(now, "Action added: #"+strconv.Itoa(item.ID))
	return true, true
}

func (uc *SlackUseCases) handleMention(ctx context.Context, channelID string) error {
	if uc.slackService == nil {
		return nil
	}
	return uc.slackService.PostText(ctx, channelID, "👀 I am tracking this incident.")
}
