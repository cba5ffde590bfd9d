package config

import (
	"crypto/tls"
	"crypto/x509"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	slacksvc "github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/service/slack"
	"github.com/urfave/cli/v3"
)

type Slack struct {
	botToken      string
	signingSecret string
	caBundlePath  string
	tlsMinVersion string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("INCIDENTBOT_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack Signing Secret (for webhook verification)",
			Category:    "Slack",
			Destination: &x.signingSecret,
			Sources:     cli.EnvVars("INCIDENTBOT_SLACK_SIGNING_SECRET"),
		},
		&cli.StringFlag{
			Name:        "slack-ca-bundle",
			Usage:       "Path to a PEM CA bundle for Slack API access through TLS-intercepting proxies",
			Category:    "Slack",
			Destination: &x.caBundlePath,
			Sources:     cli.EnvVars("INCIDENTBOT_SLACK_CA_BUNDLE"),
		},
		&cli.StringFlag{
			Name:        "slack-tls-min-version",
			Usage:       "Minimum TLS version for Slack API access [1.2, 1.3]",
			Category:    "Slack",
			Value:       "1.2",
			Destination: &x.tlsMinVersion,
			Sources:     cli.EnvVars("INCIDENTBOT_SLACK_TLS_MIN_VERSION"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.Int("signing-secret.len", len(x.signingSecret)),
		slog.String("ca-bundle", x.caBundlePath),
		slog.String("tls-min-version", x.tlsMinVersion),
	)
}

// IsConfigured checks if the Slack Web API client can be built
func (x *Slack) IsConfigured() bool {
	return x.botToken != ""
}

// IsWebhookConfigured checks if webhook signature verification can be enabled
func (x *Slack) IsWebhookConfigured() bool {
	return x.signingSecret != ""
}

// SigningSecret returns the Slack signing secret
func (x *Slack) SigningSecret() string {
	return x.signingSecret
}

// Configure builds the Slack Web API service from the flags.
func (x *Slack) Configure() (slacksvc.Service, error) {
	httpClient, err := x.buildHTTPClient()
	if err != nil {
		return nil, err
	}

	return slacksvc.New(x.botToken, slacksvc.WithHTTPClient(httpClient))
}

func (x *Slack) buildHTTPClient() (*http.Client, error) {
	tlsCfg := &tls.Config{}

	switch x.tlsMinVersion {
	case "", "1.2":
		tlsCfg.MinVersion = tls.VersionTLS12
	case "1.3":
		tlsCfg.MinVersion = tls.VersionTLS13
	default:
		return nil, goerr.New("invalid TLS min version", goerr.V("version", x.tlsMinVersion))
	}

	if x.caBundlePath != "" {
		pem, err := os.ReadFile(x.caBundlePath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read CA bundle", goerr.V("path", x.caBundlePath))
		}
		pool, err := x509.SystemCertPool()
		if err != nil {
			pool = x509.NewCertPool()
		}
		if !pool.AppendCertsFromPEM(pem) {
			return nil, goerr.New("no certificates found in CA bundle", goerr.V("path", x.caBundlePath))
		}
		tlsCfg.RootCAs = pool
	}

	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			TLSClientConfig: tlsCfg,
		},
	}, nil
}
