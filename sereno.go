// Package sereno is the high-level entry point for the conversation engine.
// It wires the session store, locking, reasoning backend and orchestrator
// from a Config and exposes a simplified API for consumers.
package sereno

import (
	"context"
	"fmt"
	"log/slog"

	redisbackend "github.com/redis/go-redis/v9"
	"github.com/sereno-labs/sereno/internal/config"
	"github.com/sereno-labs/sereno/internal/logging"
	"github.com/sereno-labs/sereno/pkg/adapters/memory"
	redisstore "github.com/sereno-labs/sereno/pkg/adapters/redis"
	"github.com/sereno-labs/sereno/pkg/conversation"
	"github.com/sereno-labs/sereno/pkg/domain"
	"github.com/sereno-labs/sereno/pkg/ports"
	"github.com/sereno-labs/sereno/pkg/reasoner"
	"github.com/sereno-labs/sereno/pkg/session"
)

// Version follows semver; bump on behavior changes visible to clients.
const Version = "0.3.0"

// Engine bundles the wired components for one process.
type Engine struct {
	orch       *conversation.Orchestrator
	sessions   *session.Manager
	client     *redisbackend.Client
	logger     *slog.Logger
	onFallback func()
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithFallbackHook registers a callback fired whenever the reasoning
// backend fails and the stub answers instead (metrics hook).
func WithFallbackHook(fn func()) Option {
	return func(e *Engine) {
		e.onFallback = fn
	}
}

// New wires an Engine from configuration. With an empty RedisAddr the
// engine runs on the in-memory store, which is what the chat REPL uses.
func New(cfg config.Config, opts ...Option) (*Engine, error) {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}

	var store ports.SessionStore
	var sessionOpts []session.Option
	sessionOpts = append(sessionOpts, session.WithLogger(e.logger))

	if cfg.RedisAddr != "" {
		e.client = redisbackend.NewClient(&redisbackend.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store = redisstore.NewFromClient(e.client, redisstore.WithTTL(cfg.SessionTTL))
		sessionOpts = append(sessionOpts, session.WithLocker(redisstore.NewLocker(e.client, "sereno:lock:")))
	} else {
		store = memory.NewStore(memory.WithTTL(cfg.SessionTTL))
	}

	e.sessions = session.NewManager(store, sessionOpts...)

	backend, err := buildReasoner(cfg, e.logger, e.onFallback)
	if err != nil {
		return nil, err
	}

	e.orch = conversation.New(e.sessions, backend,
		conversation.WithLogger(e.logger),
		conversation.WithHistoryLimit(cfg.HistoryLimit),
		conversation.WithMoodLimit(cfg.MoodLimit),
		conversation.WithAutoDiagnose(cfg.AutoDiagnose),
	)
	return e, nil
}

func buildReasoner(cfg config.Config, logger *slog.Logger, onFallback func()) (ports.Reasoner, error) {
	switch cfg.Provider {
	case config.ProviderStub:
		return reasoner.NewStub(), nil
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("provider %q requires SERENO_OPENAI_API_KEY", cfg.Provider)
		}
		client := reasoner.NewClient(reasoner.ClientConfig{
			BaseURL: cfg.OpenAIBaseURL,
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
		})
		opts := []reasoner.FallbackOption{
			reasoner.WithTimeout(cfg.ReasonerTimeout),
			reasoner.WithLogger(logger),
		}
		if onFallback != nil {
			opts = append(opts, reasoner.WithFallbackHook(onFallback))
		}
		return reasoner.NewFallback(client, opts...), nil
	}
	return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
}

// Handle processes one raw command for a user.
func (e *Engine) Handle(ctx context.Context, userID, raw string) (*conversation.Result, error) {
	return e.orch.Handle(ctx, userID, raw)
}

// Status reports the session state and legal commands without mutation.
func (e *Engine) Status(ctx context.Context, userID string) (*conversation.Response, error) {
	return e.orch.Status(ctx, userID)
}

// MoodHistory returns up to limit recent mood entries for a user.
func (e *Engine) MoodHistory(ctx context.Context, userID string, limit int) ([]domain.MoodEntry, error) {
	return e.orch.MoodHistory(ctx, userID, limit)
}

// Orchestrator exposes the underlying pipeline for adapter wiring.
func (e *Engine) Orchestrator() *conversation.Orchestrator {
	return e.orch
}

// Close releases held connections.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
