package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/model"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/types"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/usecase"
)

func TestApplyManageSubmission(t *testing.T) {
	ctx := context.Background()

	t.Run("inactive channel is rejected", func(t *testing.T) {
		uc, _ := newTestUseCases(t)
		err := uc.Action.ApplyManageSubmission(ctx, "C1", "U1", &usecase.ManageSubmission{NewText: "do it"})
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrNoActiveIncident)).True()
	})

	t.Run("adds a new action with owner and due", func(t *testing.T) {
		uc, repo := newTestUseCases(t)
		gt.R1(repo.Start(ctx, "C1")).NoError(t)

		sub := &usecase.ManageSubmission{
			NewText:  "rotate the API keys",
			NewOwner: "U4",
			NewDue:   "2026-05-21",
		}
		gt.NoError(t, uc.Action.ApplyManageSubmission(ctx, "C1", "U1", sub)).Required()

		incident := gt.R1(repo.Get(ctx, "C1")).NoError(t)
		open, _ := incident.SplitActions(testClock()())
		gt.Array(t, open).Length(1)
		gt.Value(t, open[0].Text).Equal("rotate the API keys")
		gt.Value(t, open[0].Owner).Equal("<@U4>")
		gt.Value(t, open[0].Due).Equal("21 May 2026")
		gt.Value(t, open[0].CreatedBy).Equal("<@U1>")
	})

	t.Run("updates the selected action", func(t *testing.T) {
		uc, repo := newTestUseCases(t)
		gt.R1(repo.Start(ctx, "C1")).NoError(t)

		var actionID int
		gt.R1(repo.Mutate(ctx, "C1", func(incident *model.Incident) error {
			item, err := incident.AddActionItem(testClock()(), "check the queue", "<@U1>", "", "")
			if err != nil {
				return err
			}
			actionID = item.ID
			return nil
		})).NoError(t)

		done := types.ActionStatusDone
		owner := "U7"
		sub := &usecase.ManageSubmission{
			EditID: actionID,
			Owner:  &owner,
			Status: &done,
		}
		gt.NoError(t, uc.Action.ApplyManageSubmission(ctx, "C1", "U2", sub)).Required()

		incident := gt.R1(repo.Get(ctx, "C1")).NoError(t)
		_, closed := incident.SplitActions(testClock()())
		gt.Array(t, closed).Length(1)
		gt.Value(t, closed[0].Owner).Equal("<@U7>")
		gt.Value(t, closed[0].DoneBy).Equal("<@U2>")
		gt.Value(t, closed[0].DoneAt).NotNil()
	})

	t.Run("unknown selection is an error", func(t *testing.T) {
		uc, repo := newTestUseCases(t)
		gt.R1(repo.Start(ctx, "C1")).NoError(t)

		sub := &usecase.ManageSubmission{EditID: 42}
		err := uc.Action.ApplyManageSubmission(ctx, "C1", "U1", sub)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrActionNotFound)).True()
	})
}
