package providers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusbot/internal/config"
	"focusbot/internal/llm"
	"focusbot/internal/llm/providers"
)

func TestRegisterAll_HTTPProviders(t *testing.T) {
	providers.RegisterAll()

	tests := []struct {
		provider string
		model    string
		wantName string
	}{
		{"gemini", "gemini-1.5-flash", "gemini/gemini-1.5-flash"},
		{"claude", "", "claude/claude-sonnet-4-20250514"},
		{"openai", "gpt-4o", "openai/gpt-4o"},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			c, err := llm.NewCompleter(context.Background(), &config.LLMConfig{
				Provider:     tt.provider,
				APIKey:       "k",
				DefaultModel: tt.model,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, c.Name())
			assert.NoError(t, c.Close())
		})
	}
}

func TestRegisterAll_VertexNeedsProject(t *testing.T) {
	providers.RegisterAll()

	_, err := llm.NewCompleter(context.Background(), &config.LLMConfig{Provider: "vertex"})

	assert.Error(t, err)
}
