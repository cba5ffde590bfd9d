package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/cli/config"
	httpctrl "github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/controller/http"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/repository/memory"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/service/detect"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/usecase"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe(version string) *cli.Command {
	var addr string
	var slackCfg config.Slack
	var vocabCfg config.Vocabulary
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("INCIDENTBOT_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, vocabCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			sentryCloser, err := sentryCfg.Configure(version)
			if err != nil {
				return err
			}
			defer sentryCloser()

			vocab, err := vocabCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load vocabulary")
			}

			if !slackCfg.IsConfigured() {
				return goerr.New("Slack bot token is required: set --slack-bot-token")
			}
			if !slackCfg.IsWebhookConfigured() {
				return goerr.New("Slack signing secret is required: set --slack-signing-secret")
			}

			slackService, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Slack client")
			}

			repo := memory.New()
			uc := usecase.New(repo,
				usecase.WithSlackService(slackService),
				usecase.WithDetector(detect.New(vocab)),
			)

			server := httpctrl.New(
				httpctrl.WithSlackWebhook(httpctrl.NewSlackWebhookHandler(uc.Slack), slackCfg.SigningSecret()),
				httpctrl.WithSlackInteraction(httpctrl.NewSlackInteractionHandler(uc.Incident, uc.Action)),
				httpctrl.WithSlackCommand(httpctrl.NewSlackCommandHandler(uc.Incident)),
			)

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			var eg errgroup.Group
			eg.Go(func() error {
				logger.Info("Starting HTTP server",
					"addr", addr,
					"slack", slackCfg,
					"vocabulary", vocabCfg,
					"sentry", sentryCfg,
				)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "failed to serve HTTP")
				}
				return nil
			})
			eg.Go(func() error {
				<-ctx.Done()
				logger.Info("Shutting down HTTP server")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := httpServer.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown HTTP server")
				}
				return nil
			})

			return eg.Wait()
		},
	}
}
