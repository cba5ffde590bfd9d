package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prajyot-pomannawar/slack-incident-intelligent-bot/pkg/utils/logging"
)

type Server struct {
	router             *chi.Mux
	webhookHandler     *SlackWebhookHandler
	interactionHandler *SlackInteractionHandler
	commandHandler     *SlackCommandHandler
	slackSigningSecret string
}

type Options func(*Server)

// WithSlackWebhook installs the Events API webhook handler. All /hooks/slack/*
// routes are guarded by signature verification with the given secret.
func WithSlackWebhook(handler *SlackWebhookHandler, signingSecret string) Options {
	return func(s *Server) {
		s.webhookHandler = handler
		s.slackSigningSecret = signingSecret
	}
}

// WithSlackInteraction installs the interactive component handler (buttons and
// modal submissions).
func WithSlackInteraction(handler *SlackInteractionHandler) Options {
	return func(s *Server) {
		s.interactionHandler = handler
	}
}

// WithSlackCommand installs the slash command handler.
func WithSlackCommand(handler *SlackCommandHandler) Options {
	return func(s *Server) {
		s.commandHandler = handler
	}
}

func New(opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{router: r}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Slack endpoints use signature verification instead of auth
	if s.webhookHandler != nil {
		r.Route("/hooks/slack", func(r chi.Router) {
			r.Use(SlackSignatureMiddleware(s.slackSigningSecret))

			r.Post("/event", s.webhookHandler.ServeHTTP)
			if s.interactionHandler != nil {
				r.Post("/interaction", s.interactionHandler.ServeHTTP)
			}
			if s.commandHandler != nil {
				r.Post("/command", s.commandHandler.ServeHTTP)
			}
		})
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
