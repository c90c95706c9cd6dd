package provider

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/voxhub/voicerelay/internal/domain"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// Groq implements domain.Provider against Groq's OpenAI-compatible API.
type Groq struct {
	api *openai.Client
}

func NewGroq(apiKey string) *Groq {
	return &Groq{api: newAPIClient(apiKey, groqBaseURL)}
}

func (p *Groq) Generate(ctx context.Context, turns domain.Window, cfg domain.ModelConfig) (string, error) {
	return complete(ctx, p.api, domain.ProviderGroq, chatRequest(turns, cfg))
}
