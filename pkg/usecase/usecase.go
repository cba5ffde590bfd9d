package usecase

import (
	"time"

	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/domain/interfaces"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/service/detect"
	slacksvc "github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/service/slack"
)

// UseCases bundles the incident tracking use cases over a shared state store.
type UseCases struct {
	repo         interfaces.Repository
	detector     *detect.Detector
	slackService slacksvc.Service
	now          func() time.Time

	Slack    *SlackUseCases
	Incident *IncidentUseCase
	Action   *ActionUseCase
}

type Option func(*UseCases)

// WithSlackService sets the Slack Web API adapter. Without it the use cases
// still maintain state but post nothing (useful for tests).
func WithSlackService(svc slacksvc.Service) Option {
	return func(uc *UseCases) {
		uc.slackService = svc
	}
}

// WithDetector replaces the default detector (custom vocabulary).
func WithDetector(d *detect.Detector) Option {
	return func(uc *UseCases) {
		uc.detector = d
	}
}

// WithClock replaces the time source (for tests).
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.detector == nil {
		uc.detector = detect.New(nil, detect.WithClock(func() time.Time { return uc.now() }))
	}

	uc.Slack = &SlackUseCases{repo: repo, detector: uc.detector, slackService: uc.slackService, now: uc.now}
	uc.Incident = &IncidentUseCase{repo: repo, detector: uc.detector, slackService: uc.slackService, now: uc.now}
	uc.Action = &ActionUseCase{repo: repo, slackService: uc.slackService, now: uc.now}

	return uc
}
