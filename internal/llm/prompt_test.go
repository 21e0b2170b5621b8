package llm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusbot/internal/config"
	"focusbot/internal/llm"
	"focusbot/internal/port"
)

func TestSummarizePrompt(t *testing.T) {
	assert.Equal(t, "Summarize this document:\nonly page", llm.SummarizePrompt([]string{"only page"}))
	assert.Equal(t, "Summarize this document:\np1\n\np3", llm.SummarizePrompt([]string{"p1", "", "p3"}))
}

func TestAskPrompt(t *testing.T) {
	got := llm.AskPrompt([]string{"alpha", "beta"}, "What is beta?")
	assert.Equal(t, "Context:\nalpha\nbeta\n\nQuestion: What is beta?", got)
}

func TestChatPrompt_NoPrefix(t *testing.T) {
	assert.Equal(t, "tell me a joke", llm.ChatPrompt("tell me a joke"))
}

func TestFactory_RegisterAndCreate(t *testing.T) {
	llm.RegisterProvider("test-provider", func(_ context.Context, cfg *config.LLMConfig) (port.Completer, error) {
		return &stubCompleter{model: cfg.DefaultModel}, nil
	})

	c, err := llm.NewCompleter(context.Background(), &config.LLMConfig{
		Provider:     "test-provider",
		DefaultModel: "test-model",
	})

	require.NoError(t, err)
	assert.Equal(t, "stub/test-model", c.Name())
}

func TestFactory_UnknownProvider(t *testing.T) {
	c, err := llm.NewCompleter(context.Background(), &config.LLMConfig{Provider: "nonexistent-provider-xyz"})

	assert.Nil(t, c)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown llm provider")
}

func TestProviderError_Message(t *testing.T) {
	err := llm.NewProviderError("gemini", 503, []byte("overloaded"))
	assert.Equal(t, "gemini API error (status 503): overloaded", err.Error())
}

// stubCompleter is a minimal Completer for testing the factory.
type stubCompleter struct {
	model string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	return prompt, nil
}

func (s *stubCompleter) Name() string { return "stub/" + s.model }

func (s *stubCompleter) Close() error { return nil }
