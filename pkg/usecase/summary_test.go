package usecase_test

import (
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/m-mizutani/gt"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/model"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/types"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/usecase"
)

func TestRenderSummaryPlaceholders(t *testing.T) {
	now := time.Date(2026, 5, 21, 10, 0, 0, 0, time.UTC)
	incident := model.NewIncident("C1", now)

	text, blocks := usecase.RenderSummary(incident)

	gt.Value(t, strings.Contains(text, "*Abstract:* TBD")).Equal(true)
	gt.Value(t, strings.Contains(text, "*Owner:* TBD")).Equal(true)
	gt.Value(t, strings.Contains(text, "*ETA:* TBD")).Equal(true)
	gt.Value(t, strings.Contains(text, "*Ticket:* Not linked")).Equal(true)
	gt.Value(t, strings.Contains(text, "*Severity:* P1")).Equal(true)
	gt.Value(t, strings.Contains(text, "*Status:* Investigating")).Equal(true)

	// empty sections fall back to None
	gt.Value(t, strings.Count(text, "None")).Equal(4)

	// summary section plus the manage button
	gt.Array(t, blocks).Length(2)
}

func TestRenderSummaryFields(t *testing.T) {
	now := time.Date(2026, 5, 21, 10, 0, 0, 0, time.UTC)
	incident := model.NewIncident("C1", now)
	incident.Abstract = "Service Outage"
	incident.Owner = "<@U2>"
	incident.ETA = "EOD (21 May 2026)"
	incident.TicketID = "PAY-42"
	incident.Links = []string{"https://grafana.example.com/d/abc"}
	incident.AppendTimeline(now, "Incident detected")

	text, _ := usecase.RenderSummary(incident)

	gt.Value(t, strings.Contains(text, "*Abstract:* Service Outage")).Equal(true)
	gt.Value(t, strings.Contains(text, "*Owner:* <@U2>")).Equal(true)
	gt.Value(t, strings.Contains(text, "*ETA:* EOD (21 May 2026)")).Equal(true)
	gt.Value(t, strings.Contains(text, "*Ticket:* PAY-42")).Equal(true)
	gt.Value(t, strings.Contains(text, "• https://grafana.example.com/d/abc")).Equal(true)
	gt.Value(t, strings.Contains(text, "• 21 May 2026, 10:00 AM – Incident detected")).Equal(true)
}

func TestRenderSummaryActionCaps(t *testing.T) {
	now := time.Date(2026, 5, 21, 10, 0, 0, 0, time.UTC)
	incident := model.NewIncident("C1", now)

	for i := 0; i < 12; i++ {
		_ = gt.R1(incident.AddActionItem(now, fmt.Sprintf("open task %d", i), "<@U1>", "", "")).NoError(t)
	}
	done := types.ActionStatusDone
	for i := 0; i < 12; i++ {
		item := gt.R1(incident.AddActionItem(now, fmt.Sprintf("done task %d", i), "<@U1>", "", "")).NoError(t)
		incident.UpdateActionItem(now, item.ID, model.ActionItemPatch{Status: &done})
	}

	text, _ := usecase.RenderSummary(incident)

	gt.Value(t, strings.Contains(text, "open task 9")).Equal(true)
	gt.Value(t, strings.Contains(text, "open task 10")).Equal(false)
	gt.Value(t, strings.Contains(text, "_... 2 more open action(s)_")).Equal(true)

	// only the 10 most recent done actions
	gt.Value(t, strings.Contains(text, "done task 1")).Equal(true)
	gt.Value(t, strings.Contains(text, "done task 0")).Equal(false)
}

func TestRenderSummaryTimelineCap(t *testing.T) {
	now := time.Date(2026, 5, 21, 10, 0, 0, 0, time.UTC)
	incident := model.NewIncident("C1", now)
	for i := 0; i < 8; i++ {
		incident.AppendTimeline(now.Add(time.Duration(i)*time.Minute), fmt.Sprintf("event %d", i))
	}

	text, _ := usecase.RenderSummary(incident)

	gt.Value(t, strings.Contains(text, "event 7")).Equal(true)
	gt.Value(t, strings.Contains(text, "event 2")).Equal(true)
	gt.Value(t, strings.Contains(text, "event 1")).Equal(false)
}

func TestRenderSummaryOwnerSuppression(t *testing.T) {
	now := time.Date(2026, 5, 21, 10, 0, 0, 0, time.UTC)
	incident := model.NewIncident("C1", now)

	gt.R1(incident.AddActionItem(now, "<@U3> will restart the workers", "<@U3>", "<@U3>", "")).NoError(t)
	gt.R1(incident.AddActionItem(now, "rotate the keys", "<@U1>", "<@U4>", "21st May")).NoError(t)

	text, _ := usecase.RenderSummary(incident)

	gt.Value(t, strings.Contains(text, "• #1: <@U3> will restart the workers")).Equal(true)
	gt.Value(t, strings.Contains(text, "• #1: <@U3> will restart the workers (<@U3>)")).Equal(false)
	gt.Value(t, strings.Contains(text, "• #2: rotate the keys (<@U4>, due 21st May)")).Equal(true)
}

func TestRenderConfirmationPrompt(t *testing.T) {
	now := time.Date(2026, 5, 21, 10, 0, 0, 0, time.UTC)
	prompt := model.NewPendingConfirmation("C1", "there is a regression in checkout", now)

	text, blocks := usecase.RenderConfirmationPrompt(prompt)

	gt.Value(t, strings.Contains(text, "Possible incident detected")).Equal(true)
	gt.Array(t, blocks).Length(2)
}

func TestActionOptionList(t *testing.T) {
	now := time.Date(2026, 5, 21, 10, 0, 0, 0, time.UTC)

	t.Run("labels and truncation", func(t *testing.T) {
		incident := model.NewIncident("C1", now)
		gt.R1(incident.AddActionItem(now, "short task", "<@U1>", "", "")).NoError(t)
		gt.R1(incident.AddActionItem(now, strings.Repeat("x", 100), "<@U1>", "", "")).NoError(t)

		options := usecase.ActionOptionList(incident)
		gt.Array(t, options).Length(2)
		gt.Value(t, options[0].Value).Equal("1")
		gt.Value(t, options[0].Text.Text).Equal("#1 [open] short task")
		gt.Value(t, len(options[1].Text.Text) <= 75).Equal(true)
		gt.Value(t, strings.HasSuffix(options[1].Text.Text, "...")).Equal(true)
	})

	t.Run("multibyte text truncates on runes", func(t *testing.T) {
		incident := model.NewIncident("C1", now)
		gt.R1(incident.AddActionItem(now, strings.Repeat("é", 100), "<@U1>", "", "")).NoError(t)

		options := usecase.ActionOptionList(incident)
		gt.Array(t, options).Length(1)

		label := options[0].Text.Text
		gt.Value(t, utf8.ValidString(label)).Equal(true)
		gt.Value(t, utf8.RuneCountInString(label)).Equal(75)
		gt.Value(t, strings.HasSuffix(label, "é...")).Equal(true)
	})

	t.Run("capped at 100 most recent", func(t *testing.T) {
		incident := model.NewIncident("C1", now)
		for i := 0; i < 120; i++ {
			gt.R1(incident.AddActionItem(now, fmt.Sprintf("task %d", i), "<@U1>", "", "")).NoError(t)
		}

		options := usecase.ActionOptionList(incident)
		gt.Array(t, options).Length(100)
		gt.Value(t, options[0].Value).Equal("21")
		gt.Value(t, options[99].Value).Equal("120")
	})
}
