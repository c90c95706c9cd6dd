package main

import (
	"context"
	"log"
	"net/http"

	"github.com/voxhub/voicerelay/internal/adapters/provider"
	memstore "github.com/voxhub/voicerelay/internal/adapters/storage/memory"
	"github.com/voxhub/voicerelay/internal/adapters/ws"
	"github.com/voxhub/voicerelay/internal/app/session"
	"github.com/voxhub/voicerelay/internal/config"
	"github.com/voxhub/voicerelay/internal/domain"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Context store + background staleness sweep
	store := memstore.NewContextStore(session.SystemPrompt, cfg.ContextMaxTurns)
	store.StartSweeper(ctx, cfg.SweepInterval, cfg.ContextTTL)

	// Providers: mock for dev, otherwise the two hosted backends. Missing
	// API keys are not validated here; the call path fails instead.
	providers := make(map[domain.ProviderID]domain.Provider)
	if cfg.UseMockProvider {
		log.Println("[LLM] Using MOCK provider for all models")
		mock := provider.NewMock()
		providers[domain.ProviderOpenAI] = mock
		providers[domain.ProviderGroq] = mock
	} else {
		providers[domain.ProviderOpenAI] = provider.NewOpenAI(cfg.OpenAIAPIKey)
		providers[domain.ProviderGroq] = provider.NewGroq(cfg.GroqAPIKey)
	}

	svc := session.NewService(store, providers, domain.DefaultModelTable(), cfg.EvictionDelay)

	handler := ws.NewServer(svc, cfg.StaticDir)

	addr := ":" + cfg.Port
	log.Println("voicerelay listening on", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
