package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/voxhub/voicerelay/internal/domain"
	"github.com/voxhub/voicerelay/internal/observability"
)

// Service bridges one connection's events to the context store and the
// completion providers. It is shared by every connection; the store carries
// its own locking.
type Service struct {
	store         domain.ContextStore
	providers     map[domain.ProviderID]domain.Provider
	models        map[domain.ModelID]domain.ModelConfig
	defaultModel  domain.ModelID
	evictionDelay time.Duration
}

func NewService(
	store domain.ContextStore,
	providers map[domain.ProviderID]domain.Provider,
	models map[domain.ModelID]domain.ModelConfig,
	evictionDelay time.Duration,
) *Service {
	return &Service{
		store:         store,
		providers:     providers,
		models:        models,
		defaultModel:  domain.DefaultModelID,
		evictionDelay: evictionDelay,
	}
}

// Reply is a completed generation for one transcript.
type Reply struct {
	Text  string
	Model domain.ModelID
}

// HandleTranscript appends the user's text, runs the selected model over the
// full window, and records the assistant's reply as a durable turn.
//
// Whitespace-only transcripts return domain.ErrEmptyTranscript without
// touching the context or the provider. A failed generation leaves the user
// turn in place; only the assistant turn is absent.
func (s *Service) HandleTranscript(ctx context.Context, connID domain.ConnectionID, text, modelID string) (*Reply, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, domain.ErrEmptyTranscript
	}

	log := observability.LoggerFromContext(ctx)

	window := s.store.Append(connID, domain.RoleUser, trimmed)

	cfg, err := s.resolveModel(modelID)
	if err != nil {
		log.Warn("model lookup failed", "model", modelID)
		return nil, err
	}

	prov, ok := s.providers[cfg.Provider]
	if !ok {
		log.Error("provider not configured", "provider", cfg.Provider)
		return nil, &domain.ProviderError{
			Kind:     domain.KindConnectionRefused,
			Provider: cfg.Provider,
			Err:      fmt.Errorf("provider %s not configured", cfg.Provider),
		}
	}

	log.Info("dispatching transcript", "model", cfg.ID, "provider", cfg.Provider, "window_size", len(window))

	replyText, err := prov.Generate(ctx, window, cfg)
	if err != nil {
		log.Error("generation failed", "model", cfg.ID, "error", err)
		return nil, err
	}

	s.store.Append(connID, domain.RoleAssistant, replyText)

	return &Reply{Text: replyText, Model: cfg.ID}, nil
}

// ResetContext discards the connection's conversation context.
func (s *Service) ResetContext(ctx context.Context, connID domain.ConnectionID) {
	s.store.Reset(connID)
	observability.LoggerFromContext(ctx).Info("context reset")
}

// LoadContext merges client-saved preference data alongside the turn window.
// Best-effort personalization state, not validated against a schema.
func (s *Service) LoadContext(ctx context.Context, connID domain.ConnectionID, data map[string]any) error {
	if data == nil {
		return domain.ErrInvalidPreferences
	}

	s.store.MergePreferences(connID, data)
	observability.LoggerFromContext(ctx).Info("context loaded", "keys", len(data))
	return nil
}

// HandleDisconnect schedules the delayed eviction so a quick reconnect with
// the same session id resumes the conversation.
func (s *Service) HandleDisconnect(ctx context.Context, connID domain.ConnectionID) {
	s.store.ScheduleDelayedEviction(connID, s.evictionDelay)
	observability.LoggerFromContext(ctx).Info("connection closed, eviction scheduled", "delay", s.evictionDelay.String())
}

func (s *Service) resolveModel(modelID string) (domain.ModelConfig, error) {
	id := domain.ModelID(modelID)
	if modelID == "" {
		id = s.defaultModel
	}

	cfg, ok := s.models[id]
	if !ok {
		return domain.ModelConfig{}, fmt.Errorf("%w: %q", domain.ErrUnknownModel, modelID)
	}
	return cfg, nil
}
