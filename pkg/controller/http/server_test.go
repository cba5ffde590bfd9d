package http_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/controller/http"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/repository/memory"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/usecase"
)

const testSigningSecret = "test-signing-secret"

func newTestServer(t *testing.T) *httpctrl.Server {
	t.Helper()
	uc := usecase.New(memory.New())
	return httpctrl.New(
		httpctrl.WithSlackWebhook(httpctrl.NewSlackWebhookHandler(uc.Slack), testSigningSecret),
		httpctrl.WithSlackInteraction(httpctrl.NewSlackInteractionHandler(uc.Incident, uc.Action)),
		httpctrl.WithSlackCommand(httpctrl.NewSlackCommandHandler(uc.Incident)),
	)
}

func signedRequest(method, path string, body []byte) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	req.Header.Set("X-Slack-Request-Timestamp", ts)
	req.Header.Set("X-Slack-Signature", signTestBody(testSigningSecret, ts, body))
	return req
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	gt.Value(t, rec.Code).Equal(http.StatusOK)
}

func TestSlackEventEndpoint(t *testing.T) {
	server := newTestServer(t)

	t.Run("unsigned request is rejected", func(t *testing.T) {
		body := []byte(`{"type":"url_verification","challenge":"abc123"}`)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/hooks/slack/event", bytes.NewReader(body)))

		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("url verification challenge is echoed", func(t *testing.T) {
		body := []byte(`{"type":"url_verification","challenge":"abc123"}`)
		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, signedRequest(http.MethodPost, "/hooks/slack/event", body))

		gt.Value(t, rec.Code).Equal(http.StatusOK)
		gt.Value(t, rec.Body.String()).Equal("abc123")
	})

	t.Run("stale signature is rejected", func(t *testing.T) {
		body := []byte(`{"type":"url_verification","challenge":"abc123"}`)
		req := httptest.NewRequest(http.MethodPost, "/hooks/slack/event", bytes.NewReader(body))
		ts := strconv.FormatInt(time.Now().Add(-10*time.Minute).Unix(), 10)
		req.Header.Set("X-Slack-Request-Timestamp", ts)
		req.Header.Set("X-Slack-Signature", signTestBody(testSigningSecret, ts, body))

		rec := httptest.NewRecorder()
		server.ServeHTTP(rec, req)

		gt.Value(t, rec.Code).Equal(http.StatusUnauthorized)
	})
}

func signTestBody(secret, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("v0:%s:%s", timestamp, body)))
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}
