package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/interfaces"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/model"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/service/detect"
	slacksvc "github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/service/slack"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/utils/logging"
)

// IncidentUseCase drives the incident lifecycle transitions that come from
// explicit user decisions: confirming or ignoring a detection prompt and
// resolving an active incident.
type IncidentUseCase struct {
	repo         interfaces.Repository
	detector     *detect.Detector
	slackService slacksvc.Service
	now          func() time.Time
}

// Confirm handles the "Yes – Track Incident" button. The token must match the
// channel's pending prompt; a reply to a superseded prompt is rejected with
// ErrStaleConfirmation.
func (uc *IncidentUseCase) Confirm(ctx context.Context, channelID, userID, token string) error {
	pending, err := uc.repo.PeekConfirmation(ctx, channelID)
	if err != nil {
		return err
	}
	if pending == nil || pending.Token != token {
		return goerr.Wrap(ErrStaleConfirmation, "confirm rejected", goerr.V(ChannelIDKey, channelID))
	}

	started, err := uc.repo.Start(ctx, channelID)
	if err != nil {
		return goerr.Wrap(err, "failed to start incident", goerr.V(ChannelIDKey, channelID))
	}

	if _, err := uc.repo.TakeConfirmation(ctx, channelID); err != nil {
		return err
	}

	if _, err := uc.repo.Mutate(ctx, channelID, func(incident *model.Incident) error {
		if started {
			incident.AppendTimeline(uc.now(), "Incident confirmed by "+model.Mention(userID))
		}
		if incident.Abstract == "" {
			if abstract := uc.detector.ExtractAbstract(pending.Line); abstract != "" {
				incident.Abstract = abstract
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if err := refreshSummary(ctx, uc.repo, uc.slackService, channelID); err != nil {
		return err
	}

	if uc.slackService != nil {
		if err := uc.slackService.PostText(ctx, channelID, "🚨 Incident tracking has started."); err != nil {
			return goerr.Wrap(err, "failed to announce incident start")
		}
	}

	return nil
}

// Ignore handles the "Ignore" button: the pending prompt is discarded and the
// channel returns to the inactive state. A stale token is rejected so a reply
// to an old prompt cannot discard a newer one.
func (uc *IncidentUseCase) Ignore(ctx context.Context, channelID, token string) error {
	pending, err := uc.repo.PeekConfirmation(ctx, channelID)
	if err != nil {
		return err
	}
	if pending == nil || pending.Token != token {
		return goerr.Wrap(ErrStaleConfirmation, "ignore rejected", goerr.V(ChannelIDKey, channelID))
	}

	if _, err := uc.repo.TakeConfirmation(ctx, channelID); err != nil {
		return err
	}

	logging.From(ctx).Info("incident detection ignored", "channel_id", channelID)
	return nil
}

// Resolve handles the /resolve-incident command: marks the incident resolved,
// updates and unpins the summary, clears the record and announces the result.
// Resolving an inactive channel is a visible no-op.
func (uc *IncidentUseCase) Resolve(ctx context.Context, channelID, userID string) error {
	active, err := uc.repo.IsActive(ctx, channelID)
	if err != nil {
		return err
	}
	if !active {
		if uc.slackService != nil {
			if err := uc.slackService.PostEphemeral(ctx, channelID, userID,
				"⚠️ No active incident found in this channel."); err != nil {
				return goerr.Wrap(err, "failed to post resolve notice")
			}
		}
		return goerr.Wrap(ErrNoActiveIncident, "resolve is a no-op", goerr.V(ChannelIDKey, channelID))
	}

	if _, err := uc.repo.Mutate(ctx, channelID, func(incident *model.Incident) error {
		incident.Status = model.StatusResolved
		incident.AppendTimeline(uc.now(), "Incident resolved")
		return nil
	}); err != nil {
		return err
	}

	// Leave the final summary in the channel, but unpinned.
	if err := refreshSummary(ctx, uc.repo, uc.slackService, channelID); err != nil {
		return err
	}

	ts, err := uc.repo.GetPinnedMessage(ctx, channelID)
	if err != nil {
		return err
	}
	if ts != "" && uc.slackService != nil {
		if err := uc.slackService.RemovePin(ctx, channelID, ts); err != nil {
			logging.From(ctx).Warn("failed to unpin summary message",
				"channel_id", channelID, "ts", ts, "error", err)
		}
	}
	if err := uc.repo.DeletePinnedMessage(ctx, channelID); err != nil {
		return err
	}

	if err := uc.repo.Clear(ctx, channelID); err != nil {
		return goerr.Wrap(err, "failed to clear incident record", goerr.V(ChannelIDKey, channelID))
	}

	if uc.slackService != nil {
		if err := uc.slackService.PostText(ctx, channelID,
			"✅ Incident has been marked as *Resolved* and tracking has stopped."); err != nil {
			return goerr.Wrap(err, "failed to announce resolution")
		}
	}

	return nil
}
