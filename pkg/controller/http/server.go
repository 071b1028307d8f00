package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prship/pkg/domain/interfaces"
)

type config struct {
	addr          string
	webhookSecret string
	workflowID    string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithWebhookSecret sets the secret used to verify X-Hub-Signature-256. Required.
func WithWebhookSecret(secret string) Option {
	return func(c *config) {
		c.webhookSecret = secret
	}
}

// WithWorkflowID sets the workflow filter reported by the health endpoint
func WithWorkflowID(workflowID string) Option {
	return func(c *config) {
		c.workflowID = workflowID
	}
}

// Server is the webhook receiver
type Server struct {
	*http.Server
}

// NewServer creates the webhook server. Handlers log through the ctxlog logger of ctx.
func NewServer(ctx context.Context, webhookUC interfaces.WebhookUseCase, opts ...Option) (*Server, error) {
	cfg := &config{
		addr: "localhost:8080",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.webhookSecret == "" {
		return nil, goerr.New("webhook secret is required")
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	router.Get("/health", healthHandler(cfg.workflowID))
	router.Route("/hooks", func(r chi.Router) {
		r.Post("/github", NewWebhookHandler(cfg.webhookSecret, webhookUC).Handle)
	})

	return &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}, nil
}
