package provider

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/voxhub/voicerelay/internal/domain"
)

// OpenAI implements domain.Provider against api.openai.com.
type OpenAI struct {
	api *openai.Client
}

func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{api: newAPIClient(apiKey, "")}
}

func (p *OpenAI) Generate(ctx context.Context, turns domain.Window, cfg domain.ModelConfig) (string, error) {
	req := chatRequest(turns, cfg)

	// Penalties are an OpenAI extra; the groq adapter never sets them.
	req.PresencePenalty = cfg.PresencePenalty
	req.FrequencyPenalty = cfg.FrequencyPenalty

	return complete(ctx, p.api, domain.ProviderOpenAI, req)
}
