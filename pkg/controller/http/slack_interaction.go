package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/types"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/usecase"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/utils/async"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/utils/errutil"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/utils/logging"
	"github.com/slack-go/slack"
)

// SlackInteractionHandler handles Slack interactive component payloads:
// confirmation prompt buttons, the manage button and the modal submission.
type SlackInteractionHandler struct {
	incidentUC *usecase.IncidentUseCase
	actionUC   *usecase.ActionUseCase
}

// NewSlackInteractionHandler creates a new Slack interaction handler
func NewSlackInteractionHandler(incidentUC *usecase.IncidentUseCase, actionUC *usecase.ActionUseCase) *SlackInteractionHandler {
	return &SlackInteractionHandler{
		incidentUC: incidentUC,
		actionUC:   actionUC,
	}
}

// ServeHTTP handles Slack interaction webhook requests
func (h *SlackInteractionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Slack sends interaction payloads as application/x-www-form-urlencoded
	// with a "payload" field containing JSON
	payload := r.FormValue("payload")
	if payload == "" {
		errutil.HandleHTTP(ctx, w, goerr.New("missing payload field in interaction request"), http.StatusBadRequest)
		return
	}

	var callback slack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &callback); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse interaction payload"), http.StatusBadRequest)
		return
	}

	switch callback.Type {
	case slack.InteractionTypeBlockActions:
		h.handleBlockActions(ctx, &callback)
	case slack.InteractionTypeViewSubmission:
		h.handleViewSubmission(ctx, &callback)
	}

	w.WriteHeader(http.StatusOK)
}

func (h *SlackInteractionHandler) handleBlockActions(ctx context.Context, callback *slack.InteractionCallback) {
	channelID := callback.Channel.ID
	userID := callback.User.ID

	for _, action := range callback.ActionCallback.BlockActions {
		actionID := action.ActionID
		value := action.Value
		triggerID := callback.TriggerID

		switch actionID {
		case usecase.SlackActionIDConfirmIncident:
			async.Dispatch(ctx, func(ctx context.Context) error {
				return h.incidentUC.Confirm(ctx, channelID, userID, value)
			})

		case usecase.SlackActionIDIgnoreIncident:
			async.Dispatch(ctx, func(ctx context.Context) error {
				return h.incidentUC.Ignore(ctx, channelID, value)
			})

		case usecase.SlackActionIDManageActions:
			// The button value carries the channel ID; the summary message may
			// be forwarded, so the callback channel is not trusted.
			targetChannel := value
			if targetChannel == "" {
				targetChannel = channelID
			}
			async.Dispatch(ctx, func(ctx context.Context) error {
				return h.actionUC.OpenManageModal(ctx, targetChannel, userID, triggerID)
			})

		default:
			logging.From(ctx).Debug("ignoring unknown block action", "action_id", actionID)
		}
	}
}

func (h *SlackInteractionHandler) handleViewSubmission(ctx context.Context, callback *slack.InteractionCallback) {
	if callback.View.CallbackID != usecase.SlackCallbackIDManageActions {
		logging.From(ctx).Debug("ignoring unknown view submission", "callback_id", callback.View.CallbackID)
		return
	}

	channelID := callback.View.PrivateMetadata
	userID := callback.User.ID

	sub, err := decodeManageSubmission(callback)
	if err != nil {
		errutil.Handle(ctx, err, "failed to decode modal submission")
		return
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		return h.actionUC.ApplyManageSubmission(ctx, channelID, userID, sub)
	})
}

// decodeManageSubmission flattens the modal's view state into the use case
// input. All fields are optional; an empty submission is a no-op.
func decodeManageSubmission(callback *slack.InteractionCallback) (*usecase.ManageSubmission, error) {
	sub := &usecase.ManageSubmission{}
	if callback.View.State == nil {
		return sub, nil
	}
	values := callback.View.State.Values

	if v, ok := values[usecase.BlockIDSelectAction][usecase.BlockIDSelectAction]; ok && v.SelectedOption.Value != "" {
		id, err := strconv.Atoi(v.SelectedOption.Value)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid action item id", goerr.V("value", v.SelectedOption.Value))
		}
		sub.EditID = id
	}

	if v, ok := values[usecase.BlockIDEditOwner][usecase.BlockIDEditOwner]; ok && v.SelectedUser != "" {
		owner := v.SelectedUser
		sub.Owner = &owner
	}

	if v, ok := values[usecase.BlockIDEditDue][usecase.BlockIDEditDue]; ok && v.SelectedDate != "" {
		due := v.SelectedDate
		sub.Due = &due
	}

	if v, ok := values[usecase.BlockIDEditStatus][usecase.BlockIDEditStatus]; ok && v.SelectedOption.Value != "" {
		status, err := types.ParseActionStatus(v.SelectedOption.Value)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid action status", goerr.V("value", v.SelectedOption.Value))
		}
		sub.Status = &status
	}

	if v, ok := values[usecase.BlockIDNewText][usecase.BlockIDNewText]; ok {
		sub.NewText = v.Value
	}
	if v, ok := values[usecase.BlockIDNewOwner][usecase.BlockIDNewOwner]; ok {
		sub.NewOwner = v.SelectedUser
	}
	if v, ok := values[usecase.BlockIDNewDue][usecase.BlockIDNewDue]; ok {
		sub.NewDue = v.SelectedDate
	}

	return sub, nil
}

// SlackCommandHandler handles slash commands.
type SlackCommandHandler struct {
	incidentUC *usecase.IncidentUseCase
}

// NewSlackCommandHandler creates a new slash command handler
func NewSlackCommandHandler(incidentUC *usecase.IncidentUseCase) *SlackCommandHandler {
	return &SlackCommandHandler{incidentUC: incidentUC}
}

// ServeHTTP handles slash command webhook requests
func (h *SlackCommandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	command := r.FormValue("command")
	channelID := r.FormValue("channel_id")
	userID := r.FormValue("user_id")

	switch command {
	case "/resolve-incident":
		// Return 200 immediately; the resolution announcement is posted by
		// the use case.
		w.WriteHeader(http.StatusOK)
		async.Dispatch(ctx, func(ctx context.Context) error {
			return h.incidentUC.Resolve(ctx, channelID, userID)
		})

	default:
		logging.From(ctx).Warn("unknown slash command", "command", command)
		w.WriteHeader(http.StatusOK)
	}
}
