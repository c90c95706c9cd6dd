package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	openai "github.com/sashabaranov/go-openai"

	"github.com/voxhub/voicerelay/internal/domain"
)

// newAPIClient builds the shared OpenAI-wire client. Groq exposes an
// OpenAI-compatible surface, so both providers ride the same library with a
// different base URL.
func newAPIClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

// chatRequest maps the turn window to the minimal wire shape. Internal
// fields (timestamps) never go upstream.
func chatRequest(turns domain.Window, cfg domain.ModelConfig) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(t.Role),
			Content: t.Content,
		})
	}

	return openai.ChatCompletionRequest{
		Model:       string(cfg.ID),
		Messages:    messages,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		TopP:        cfg.TopP,
	}
}

// complete awaits the full (non-streaming) response and validates its shape.
func complete(ctx context.Context, api *openai.Client, id domain.ProviderID, req openai.ChatCompletionRequest) (string, error) {
	resp, err := api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", &domain.ProviderError{Kind: classify(err), Provider: id, Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &domain.ProviderError{
			Kind:     domain.KindMalformedResponse,
			Provider: id,
			Err:      fmt.Errorf("response has no choices"),
		}
	}

	return resp.Choices[0].Message.Content, nil
}

// classify buckets an upstream failure into the error taxonomy. Anything
// not recognizably a rate limit or a transport failure is treated as a
// generic malformed response.
func classify(err error) domain.ErrorKind {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return domain.KindRateLimited
		}
		return domain.KindMalformedResponse
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode == http.StatusTooManyRequests {
			return domain.KindRateLimited
		}
		return domain.KindMalformedResponse
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return domain.KindConnectionRefused
	}

	return domain.KindMalformedResponse
}
