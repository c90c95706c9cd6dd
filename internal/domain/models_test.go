package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxhub/voicerelay/internal/domain"
)

func TestDefaultModelTable(t *testing.T) {
	table := domain.DefaultModelTable()

	def, ok := table[domain.DefaultModelID]
	require.True(t, ok, "default model must be in the table")
	assert.Equal(t, domain.ProviderGroq, def.Provider)

	for id, cfg := range table {
		assert.Equal(t, id, cfg.ID)
		assert.NotZero(t, cfg.MaxTokens)

		if cfg.Provider == domain.ProviderGroq {
			assert.Zero(t, cfg.PresencePenalty, "%s: penalties are openai-only", id)
			assert.Zero(t, cfg.FrequencyPenalty, "%s: penalties are openai-only", id)
		}
	}
}
