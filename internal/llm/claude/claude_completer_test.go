package claude_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusbot/internal/config"
	"focusbot/internal/llm"
	"focusbot/internal/llm/claude"
)

func newClaudeTestCompleter(serverURL string) *claude.Completer {
	cfg := &config.LLMConfig{
		Provider:     "claude",
		APIKey:       "test-claude-key",
		DefaultModel: "claude-sonnet-4-20250514",
		Temperature:  0.7,
		TimeoutSecs:  30,
	}
	return claude.NewCompleterWithEndpoint(cfg, serverURL)
}

func TestClaudeCompleter_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-claude-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))

		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, "claude-sonnet-4-20250514", reqBody["model"])
		messages := reqBody["messages"].([]interface{})
		require.Len(t, messages, 1)
		msg := messages[0].(map[string]interface{})
		assert.Equal(t, "user", msg["role"])
		assert.Equal(t, "Summarize this document:\nabc", msg["content"])

		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"A short"},{"type":"text","text":" summary."}],"stop_reason":"end_turn"}`))
	}))
	defer server.Close()

	got, err := newClaudeTestCompleter(server.URL).Complete(context.Background(), "Summarize this document:\nabc")

	require.NoError(t, err)
	assert.Equal(t, "A short summary.", got)
}

func TestClaudeCompleter_Complete_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"type":"error"}`))
	}))
	defer server.Close()

	_, err := newClaudeTestCompleter(server.URL).Complete(context.Background(), "hi")

	var rlErr *llm.RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, 30*time.Second, rlErr.RetryAfter)

	var perr *llm.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusTooManyRequests, perr.StatusCode)
}

func TestClaudeCompleter_Complete_NoTextBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"content":[],"stop_reason":"max_tokens"}`))
	}))
	defer server.Close()

	_, err := newClaudeTestCompleter(server.URL).Complete(context.Background(), "hi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_tokens")
}

func TestClaudeCompleter_IgnoresGeminiDefaultModel(t *testing.T) {
	c := claude.NewCompleter(&config.LLMConfig{DefaultModel: "gemini-1.5-flash"})
	assert.Equal(t, "claude/claude-sonnet-4-20250514", c.Name())
}
