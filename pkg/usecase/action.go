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
	"github.com/slack-go/slack"
)

// Slack interaction identifiers shared between the rendering code and the
// interaction controller.
const (
	SlackActionIDConfirmIncident = "confirm_incident"
	SlackActionIDIgnoreIncident  = "ignore_incident"
	SlackActionIDManageActions   = "manage_actions"

	SlackCallbackIDManageActions = "manage_actions_modal"

	BlockIDSelectAction = "select_action"
	BlockIDEditOwner    = "edit_owner"
	BlockIDEditDue      = "edit_due"
	BlockIDEditStatus   = "edit_status"
	BlockIDNewText      = "new_action_text"
	BlockIDNewOwner     = "new_action_owner"
	BlockIDNewDue       = "new_action_due"
)

const (
	maxActionOptions     = 100
	maxOptionLabelLength = 75
)

// ActionUseCase serves the action item management modal.
type ActionUseCase struct {
	repo         interfaces.Repository
	slackService slacksvc.Service
	now          func() time.Time
}

// ActionOptionList builds the modal select options for the incident's action
// items: the 100 most recent entries, labelled "#id [status] text" and capped
// at Slack's option label limit.
func ActionOptionList(incident *model.Incident) []*slack.OptionBlockObject {
	entries := incident.Actions
	if len(entries) > maxActionOptions {
		entries = entries[len(entries)-maxActionOptions:]
	}

	options := make([]*slack.OptionBlockObject, 0, len(entries))
	for _, e := range entries {
		if e.IsLegacy() {
			continue
		}
		label := "#" + strconv.Itoa(e.Item.ID) + " [" + e.Item.Status.String() + "] " + e.Item.Text
		if runes := []rune(label); len(runes) > maxOptionLabelLength {
			label = string(runes[:maxOptionLabelLength-3]) + "..."
		}
		options = append(options, slack.NewOptionBlockObject(
			strconv.Itoa(e.Item.ID),
			slack.NewTextBlockObject(slack.PlainTextType, label, false, false),
			nil,
		))
	}
	return options
}

// OpenManageModal opens the action management modal for the channel. The
// channel ID travels in the view's private metadata so the submission handler
// can find the record again.
func (uc *ActionUseCase) OpenManageModal(ctx context.Context, channelID, userID, triggerID string) error {
	if uc.slackService == nil {
		return nil
	}

	incident, err := uc.repo.Get(ctx, channelID)
	if err != nil {
		return err
	}
	if incident == nil {
		if err := uc.slackService.PostEphemeral(ctx, channelID, userID,
			"⚠️ No active incident found in this channel."); err != nil {
			return goerr.Wrap(err, "failed to post modal notice")
		}
		return goerr.Wrap(ErrNoActiveIncident, "cannot open modal", goerr.V(ChannelIDKey, channelID))
	}

	// Migrated view of the ledger for option labels; the stored record is
	// normalized on the next pipeline run.
	migrated := incident.Clone()
	migrated.NormalizeActions(uc.now())

	view := manageModalView(channelID, ActionOptionList(migrated))
	if err := uc.slackService.OpenView(ctx, triggerID, view); err != nil {
		return goerr.Wrap(err, "failed to open action management modal", goerr.V(ChannelIDKey, channelID))
	}
	return nil
}

func manageModalView(channelID string, options []*slack.OptionBlockObject) slack.ModalViewRequest {
	blocks := []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, "*Update an existing action item*", false, false),
			nil, nil,
		),
	}

	if len(options) > 0 {
		selectEl := slack.NewOptionsSelectBlockElement(
			slack.OptTypeStatic,
			slack.NewTextBlockObject(slack.PlainTextType, "Select action item", false, false),
			BlockIDSelectAction,
			options...,
		)
		selectBlock := slack.NewInputBlock(BlockIDSelectAction,
			slack.NewTextBlockObject(slack.PlainTextType, "Action Item", false, false),
			nil, selectEl)
		selectBlock.Optional = true

		ownerEl := slack.NewOptionsSelectBlockElement(
			slack.OptTypeUser,
			slack.NewTextBlockObject(slack.PlainTextType, "Select owner", false, false),
			BlockIDEditOwner,
		)
		ownerBlock := slack.NewInputBlock(BlockIDEditOwner,
			slack.NewTextBlockObject(slack.PlainTextType, "Owner", false, false),
			nil, ownerEl)
		ownerBlock.Optional = true

		dueEl := slack.NewDatePickerBlockElement(BlockIDEditDue)
		dueBlock := slack.NewInputBlock(BlockIDEditDue,
			slack.NewTextBlockObject(slack.PlainTextType, "Due Date", false, false),
			nil, dueEl)
		dueBlock.Optional = true

		statusEl := slack.NewOptionsSelectBlockElement(
			slack.OptTypeStatic,
			slack.NewTextBlockObject(slack.PlainTextType, "Select status", false, false),
			BlockIDEditStatus,
			slack.NewOptionBlockObject(types.ActionStatusOpen.String(),
				slack.NewTextBlockObject(slack.PlainTextType, "Open", false, false), nil),
			slack.NewOptionBlockObject(types.ActionStatusDone.String(),
				slack.NewTextBlockObject(slack.PlainTextType, "Done", false, false), nil),
		)
		statusBlock := slack.NewInputBlock(BlockIDEditStatus,
			slack.NewTextBlockObject(slack.PlainTextType, "Status", false, false),
			nil, statusEl)
		statusBlock.Optional = true

		blocks = append(blocks, selectBlock, ownerBlock, dueBlock, statusBlock)
	} else {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, "_No action items yet._", false, false),
			nil, nil,
		))
	}

	newTextEl := slack.NewPlainTextInputBlockElement(
		slack.NewTextBlockObject(slack.PlainTextType, "Describe the action", false, false),
		BlockIDNewText)
	newTextBlock := slack.NewInputBlock(BlockIDNewText,
		slack.NewTextBlockObject(slack.PlainTextType, "New Action", false, false),
		nil, newTextEl)
	newTextBlock.Optional = true

	newOwnerEl := slack.NewOptionsSelectBlockElement(
		slack.OptTypeUser,
		slack.NewTextBlockObject(slack.PlainTextType, "Select owner", false, false),
		BlockIDNewOwner,
	)
	newOwnerBlock := slack.NewInputBlock(BlockIDNewOwner,
		slack.NewTextBlockObject(slack.PlainTextType, "New Action Owner", false, false),
		nil, newOwnerEl)
	newOwnerBlock.Optional = true

	newDueEl := slack.NewDatePickerBlockElement(BlockIDNewDue)
	newDueBlock := slack.NewInputBlock(BlockIDNewDue,
		slack.NewTextBlockObject(slack.PlainTextType, "New Action Due Date", false, false),
		nil, newDueEl)
	newDueBlock.Optional = true

	blocks = append(blocks,
		slack.NewDividerBlock(),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, "*Add a new action item*", false, false),
			nil, nil,
		),
		newTextBlock, newOwnerBlock, newDueBlock,
	)

	return slack.ModalViewRequest{
		Type:            slack.VTModal,
		CallbackID:      SlackCallbackIDManageActions,
		PrivateMetadata: channelID,
		Title:           slack.NewTextBlockObject(slack.PlainTextType, "Manage Action Items", false, false),
		Submit:          slack.NewTextBlockObject(slack.PlainTextType, "Apply", false, false),
		Close:           slack.NewTextBlockObject(slack.PlainTextType, "Cancel", false, false),
		Blocks:          slack.Blocks{BlockSet: blocks},
	}
}

// ManageSubmission is the decoded state of the management modal.
type ManageSubmission struct {
	EditID int // 0 when no existing item was selected
	Owner  *string
	Due    *string
	Status *types.ActionStatus

	NewText  string
	NewOwner string // user ID, optional
	NewDue   string
}

// ApplyManageSubmission applies a modal submission to the ledger: an edit when
// an item was selected, an add when new-action text was provided, or both.
func (uc *ActionUseCase) ApplyManageSubmission(ctx context.Context, channelID, userID string, sub *ManageSubmission) error {
	active, err := uc.repo.IsActive(ctx, channelID)
	if err != nil {
		return err
	}
	if !active {
		return goerr.Wrap(ErrNoActiveIncident, "modal submission dropped", goerr.V(ChannelIDKey, channelID))
	}

	sender := model.Mention(userID)

	_, err = uc.repo.Mutate(ctx, channelID, func(incident *model.Incident) error {
		now := uc.now()
		incident.NormalizeActions(now)

		if sub.EditID > 0 {
			due := sub.Due
			if due != nil {
				formatted := formatDueDate(*due)
				due = &formatted
			}
			owner := sub.Owner
			if owner != nil {
				mention := model.Mention(*owner)
				owner = &mention
			}
			patch := model.ActionItemPatch{
				Owner:  owner,
				Due:    due,
				Status: sub.Status,
				DoneBy: sender,
			}
			item := incident.UpdateActionItem(now, sub.EditID, patch)
			if item == nil {
				return goerr.Wrap(ErrActionNotFound, "cannot update action item",
					goerr.V(ChannelIDKey, channelID), goerr.V(ActionIDKey, sub.EditID))
			}
			incident.AppendTimeline(now, "Action updated via modal: #"+strconv.Itoa(item.ID))
		}

		if sub.NewText != "" {
			owner := ""
			if sub.NewOwner != "" {
				owner = model.Mention(sub.NewOwner)
			}
			item, err := incident.AddActionItem(now, sub.NewText, sender, owner, formatDueDate(sub.NewDue))
			if err != nil {
				return err
			}
			incident.AppendTimeline(now, "Action added via modal: #"+strconv.Itoa(item.ID))
		}

		return nil
	})
	if err != nil {
		return err
	}

	return refreshSummary(ctx, uc.repo, uc.slackService, channelID)
}

// formatDueDate converts the datepicker's YYYY-MM-DD value into the display
// layout used everywhere else. Unparseable input passes through unchanged.
func formatDueDate(value string) string {
	if value == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return value
	}
	return t.Format(detect.ETADateLayout)
}
