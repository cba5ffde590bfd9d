package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/model"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/repository/memory"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/usecase"
)

func testClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 5, 21, 10, 0, 0, 0, time.UTC)
	}
}

func newTestUseCases(t *testing.T) (*usecase.UseCases, *memory.Repository) {
	t.Helper()
	repo := memory.New(memory.WithClock(testClock()))
	uc := usecase.New(repo, usecase.WithClock(testClock()))
	return uc, repo
}

func TestProcessMessageHighConfidence(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestUseCases(t)

	msg := model.NewMessageFromData("C1", "U1", "P1 bug impacting customers, urgent!")
	result := gt.R1(uc.Slack.ProcessMessage(ctx, msg)).NoError(t)

	gt.Bool(t, result.Started).True()
	gt.Bool(t, result.Changed()).True()
	gt.Value(t, result.Prompt).Nil()

	incident := gt.R1(repo.Get(ctx, "C1")).NoError(t)
	gt.Value(t, incident).NotNil().Required()
	gt.Value(t, incident.Abstract).Equal("Software Bug")

	t.Run("second high message does not restart", func(t *testing.T) {
		again := gt.R1(uc.Slack.ProcessMessage(ctx, msg)).NoError(t)
		gt.Bool(t, again.Started).False()
	})
}

func TestProcessMessageMediumConfidence(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestUseCases(t)

	msg := model.NewMessageFromData("C1", "U1", "there is a regression in checkout")
	result := gt.R1(uc.Slack.ProcessMessage(ctx, msg)).NoError(t)

	gt.Bool(t, result.Started).False()
	gt.Value(t, result.Prompt).NotNil().Required()
	gt.Value(t, result.Prompt.Line).Equal("there is a regression in checkout")

	gt.Bool(t, gt.R1(repo.IsActive(ctx, "C1")).NoError(t)).False()

	t.Run("no second prompt while one is pending", func(t *testing.T) {
		again := gt.R1(uc.Slack.ProcessMessage(ctx, msg)).NoError(t)
		gt.Value(t, again.Prompt).Nil()
	})

	t.Run("medium line halts the whole message even when active", func(t *testing.T) {
		gt.R1(repo.Start(ctx, "C2")).NoError(t)

		halted := model.NewMessageFromData("C2", "U1",
			"seeing a regression here\nI'll handle the rollback")
		res := gt.R1(uc.Slack.ProcessMessage(ctx, halted)).NoError(t)
		gt.Bool(t, res.Updated).False()

		incident := gt.R1(repo.Get(ctx, "C2")).NoError(t)
		open, _ := incident.SplitActions(testClock()())
		gt.Array(t, open).Length(0)
	})
}

func TestProcessMessageExtractors(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestUseCases(t)
	gt.R1(repo.Start(ctx, "C1")).NoError(t)

	t.Run("status ticket and links", func(t *testing.T) {
		msg := model.NewMessageFromData("C1", "U2",
			"working on fix now\ntracked in https://jira.example.com/browse/PAY-42\nsee https://grafana.example.com/d/abc")
		result := gt.R1(uc.Slack.ProcessMessage(ctx, msg)).NoError(t)
		gt.Bool(t, result.Updated).True()

		incident := gt.R1(repo.Get(ctx, "C1")).NoError(t)
		gt.Value(t, incident.Status).Equal("Working on Fix")
		gt.Value(t, incident.TicketID).Equal("PAY-42")

		// the ticket URL is consumed by the ticket step but still collected
		// as a reference link
		gt.Array(t, incident.Links).Length(2)
		gt.Bool(t, incident.HasLink("https://jira.example.com/browse/PAY-42")).True()
		gt.Bool(t, incident.HasLink("https://grafana.example.com/d/abc")).True()
	})

	t.Run("repeated status does not update", func(t *testing.T) {
		msg := model.NewMessageFromData("C1", "U2", "observing the metrics")
		first := gt.R1(uc.Slack.ProcessMessage(ctx, msg)).NoError(t)
		gt.Bool(t, first.Updated).True()

		second := gt.R1(uc.Slack.ProcessMessage(ctx, msg)).NoError(t)
		gt.Bool(t, second.Updated).False()

		incident := gt.R1(repo.Get(ctx, "C1")).NoError(t)
		gt.Value(t, incident.Status).Equal("Monitoring")
	})

	t.Run("eta consumes the line on change", func(t *testing.T) {
		msg := model.NewMessageFromData("C1", "U2", "I'll fix the checkout flow by 21st May")
		result := gt.R1(uc.Slack.ProcessMessage(ctx, msg)).NoError(t)
		gt.Bool(t, result.Updated).True()

		incident := gt.R1(repo.Get(ctx, "C1")).NoError(t)
		gt.Value(t, incident.ETA).Equal("21st May")
		open, _ := incident.SplitActions(testClock()())
		gt.Array(t, open).Length(0)
	})

	t.Run("action item from commitment line", func(t *testing.T) {
		msg := model.NewMessageFromData("C1", "U3", "I'll restart the payment workers")
		result := gt.R1(uc.Slack.ProcessMessage(ctx, msg)).NoError(t)
		gt.Bool(t, result.Updated).True()

		incident := gt.R1(repo.Get(ctx, "C1")).NoError(t)
		open, _ := incident.SplitActions(testClock()())
		gt.Array(t, open).Length(1)
		gt.Value(t, open[0].Text).Equal("<@U3> will restart the payment workers")
		gt.Value(t, open[0].CreatedBy).Equal("<@U3>")
	})

	t.Run("duplicate open action is suppressed", func(t *testing.T) {
		msg := model.NewMessageFromData("C1", "U3", "I'll restart the payment workers")
		result := gt.R1(uc.Slack.ProcessMessage(ctx, msg)).NoError(t)
		gt.Bool(t, result.Updated).False()

		incident := gt.R1(repo.Get(ctx, "C1")).NoError(t)
		open, _ := incident.SplitActions(testClock()())
		gt.Array(t, open).Length(1)
	})

	t.Run("soft phrase suppresses action", func(t *testing.T) {
		msg := model.NewMessageFromData("C1", "U3", "maybe I'll restart the db too")
		result := gt.R1(uc.Slack.ProcessMessage(ctx, msg)).NoError(t)
		gt.Bool(t, result.Updated).False()
	})
}

func TestProcessMessageHighLineEndsDetection(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestUseCases(t)
	gt.R1(repo.Start(ctx, "C1")).NoError(t)

	// The HIGH first line ends detection, so the MEDIUM second line cannot
	// abort the message and its status update still lands.
	msg := model.NewMessageFromData("C1", "U1", "urgent bug again\npr raised for the issue fix")
	result := gt.R1(uc.Slack.ProcessMessage(ctx, msg)).NoError(t)
	gt.Bool(t, result.Started).False()
	gt.Bool(t, result.Updated).True()

	incident := gt.R1(repo.Get(ctx, "C1")).NoError(t)
	gt.Value(t, incident.Status).Equal("PR Raised")
}

func TestProcessMessageOwnerFlow(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestUseCases(t)
	gt.R1(repo.Start(ctx, "C1")).NoError(t)

	t.Run("question parks a pending request", func(t *testing.T) {
		msg := model.NewMessageFromData("C1", "U1", "<@U2> can you take this up")
		gt.R1(uc.Slack.ProcessMessage(ctx, msg)).NoError(t)

		incident := gt.R1(repo.Get(ctx, "C1")).NoError(t)
		gt.Value(t, incident.PendingOwnerRequest).Equal("U2")
		gt.Value(t, incident.Owner).Equal("")
	})

	t.Run("acceptance by someone else is ignored", func(t *testing.T) {
		msg := model.NewMessageFromData("C1", "U3", "yes")
		gt.R1(uc.Slack.ProcessMessage(ctx, msg)).NoError(t)

		incident := gt.R1(repo.Get(ctx, "C1")).NoError(t)
		gt.Value(t, incident.Owner).Equal("")
	})

	t.Run("acceptance by the asked user assigns ownership", func(t *testing.T) {
		msg := model.NewMessageFromData("C1", "U2", "Yes")
		result := gt.R1(uc.Slack.ProcessMessage(ctx, msg)).NoError(t)
		gt.Bool(t, result.Updated).True()

		incident := gt.R1(repo.Get(ctx, "C1")).NoError(t)
		gt.Value(t, incident.Owner).Equal("<@U2>")
		gt.Value(t, incident.PendingOwnerRequest).Equal("")
	})

	t.Run("direct assignment with mention", func(t *testing.T) {
		msg := model.NewMessageFromData("C1", "U1", "<@U5> is taking the DB side")
		gt.R1(uc.Slack.ProcessMessage(ctx, msg)).NoError(t)

		incident := gt.R1(repo.Get(ctx, "C1")).NoError(t)
		gt.Value(t, incident.Owner).Equal("<@U5>")
	})
}

func TestConfirmationFlow(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestUseCases(t)

	msg := model.NewMessageFromData("C1", "U1", "there is a regression in checkout")
	result := gt.R1(uc.Slack.ProcessMessage(ctx, msg)).NoError(t)
	prompt := result.Prompt
	gt.Value(t, prompt).NotNil().Required()

	t.Run("stale token is rejected", func(t *testing.T) {
		err := uc.Incident.Confirm(ctx, "C1", "U1", "bogus-token")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrStaleConfirmation)).True()
		gt.Bool(t, gt.R1(repo.IsActive(ctx, "C1")).NoError(t)).False()
	})

	t.Run("confirm starts tracking and seeds the abstract", func(t *testing.T) {
		gt.NoError(t, uc.Incident.Confirm(ctx, "C1", "U1", prompt.Token)).Required()

		incident := gt.R1(repo.Get(ctx, "C1")).NoError(t)
		gt.Value(t, incident).NotNil().Required()
		gt.Value(t, incident.Abstract).Equal("Software Bug")

		pending := gt.R1(repo.PeekConfirmation(ctx, "C1")).NoError(t)
		gt.Value(t, pending).Nil()
	})

	t.Run("ignore discards the prompt", func(t *testing.T) {
		msg2 := model.NewMessageFromData("C2", "U1", "there is a regression in search")
		res := gt.R1(uc.Slack.ProcessMessage(ctx, msg2)).NoError(t)
		gt.Value(t, res.Prompt).NotNil().Required()

		gt.NoError(t, uc.Incident.Ignore(ctx, "C2", res.Prompt.Token))
		gt.Bool(t, gt.R1(repo.IsActive(ctx, "C2")).NoError(t)).False()
		gt.Value(t, gt.R1(repo.PeekConfirmation(ctx, "C2")).NoError(t)).Nil()
	})
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	uc, repo := newTestUseCases(t)

	t.Run("resolving an inactive channel is a no-op error", func(t *testing.T) {
		err := uc.Incident.Resolve(ctx, "C1", "U1")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrNoActiveIncident)).True()
	})

	t.Run("resolve clears the record", func(t *testing.T) {
		gt.R1(repo.Start(ctx, "C1")).NoError(t)
		gt.NoError(t, repo.SetPinnedMessage(ctx, "C1", "123.456"))

		gt.NoError(t, uc.Incident.Resolve(ctx, "C1", "U1")).Required()

		gt.Bool(t, gt.R1(repo.IsActive(ctx, "C1")).NoError(t)).False()
		gt.Value(t, gt.R1(repo.GetPinnedMessage(ctx, "C1")).NoError(t)).Equal("")
	})
}
