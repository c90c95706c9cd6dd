package domain

// ModelConfig selects a provider and its call parameters. Immutable: entries
// are user-selectable by name, never user-mutable.
type ModelConfig struct {
	ID       ModelID
	Provider ProviderID

	MaxTokens   int
	Temperature float32
	TopP        float32

	// Penalties are extras for the openai provider; groq entries leave
	// them zero and the adapter never sends them.
	PresencePenalty  float32
	FrequencyPenalty float32
}

const DefaultModelID ModelID = "llama-3.1-70b-versatile"

// DefaultModelTable returns the fixed set of selectable models.
func DefaultModelTable() map[ModelID]ModelConfig {
	table := map[ModelID]ModelConfig{
		"llama-3.1-70b-versatile": {
			Provider:    ProviderGroq,
			MaxTokens:   1024,
			Temperature: 0.7,
			TopP:        0.9,
		},
		"llama-3.1-8b-instant": {
			Provider:    ProviderGroq,
			MaxTokens:   1024,
			Temperature: 0.7,
			TopP:        0.9,
		},
		"gpt-4o": {
			Provider:         ProviderOpenAI,
			MaxTokens:        1024,
			Temperature:      0.7,
			TopP:             0.9,
			PresencePenalty:  0.6,
			FrequencyPenalty: 0.3,
		},
		"gpt-4o-mini": {
			Provider:         ProviderOpenAI,
			MaxTokens:        1024,
			Temperature:      0.7,
			TopP:             0.9,
			PresencePenalty:  0.6,
			FrequencyPenalty: 0.3,
		},
	}

	for id, cfg := range table {
		cfg.ID = id
		table[id] = cfg
	}
	return table
}
