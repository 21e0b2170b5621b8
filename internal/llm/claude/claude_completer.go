package claude

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"focusbot/internal/config"
	"focusbot/internal/llm"
	"focusbot/internal/port"
)

const (
	apiURL       = "https://api.anthropic.com/v1/messages"
	apiVersion   = "2023-06-01"
	defaultModel = "claude-sonnet-4-20250514"
	providerName = "claude"
	maxTokens    = 4096
)

// Completer implements port.Completer using the Anthropic Messages API.
type Completer struct {
	apiKey      string
	model       string
	temperature float64
	endpoint    string
	client      *http.Client
}

// NewCompleter creates a Claude-backed completer.
func NewCompleter(cfg *config.LLMConfig) *Completer {
	return newCompleter(cfg, apiURL)
}

// NewCompleterWithEndpoint creates a completer pointing at a custom API endpoint (for testing).
func NewCompleterWithEndpoint(cfg *config.LLMConfig, endpoint string) *Completer {
	return newCompleter(cfg, endpoint)
}

// Factory adapts NewCompleter to llm.ProviderFactory.
func Factory(_ context.Context, cfg *config.LLMConfig) (port.Completer, error) {
	return NewCompleter(cfg), nil
}

func newCompleter(cfg *config.LLMConfig, endpoint string) *Completer {
	model := cfg.DefaultModel
	// The shared default names a Gemini model.
	if model == "" || strings.HasPrefix(model, "gemini") {
		model = defaultModel
	}
	return &Completer{
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: cfg.Temperature,
		endpoint:    endpoint,
		client:      &http.Client{Timeout: llm.Timeout(cfg.TimeoutSecs)},
	}
}

func (c *Completer) Name() string { return providerName + "/" + c.model }

func (c *Completer) Close() error { return nil }

func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"model":       c.model,
		"max_tokens":  maxTokens,
		"temperature": c.temperature,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": prompt,
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling anthropic API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := llm.ParseRetryAfterHeader(resp.Header.Get("Retry-After"))
		return "", llm.NewRateLimitError(providerName, llm.NewProviderError(providerName, resp.StatusCode, respBody), retryAfter)
	}
	if resp.StatusCode != http.StatusOK {
		return "", llm.NewProviderError(providerName, resp.StatusCode, respBody)
	}

	return parseResponse(respBody)
}

type apiResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func parseResponse(body []byte) (string, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("unmarshaling response: %w", err)
	}

	var buf strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			buf.WriteString(block.Text)
		}
	}
	if buf.Len() == 0 {
		return "", fmt.Errorf("empty response from API: no text blocks (stop reason %q)", resp.StopReason)
	}
	return buf.String(), nil
}
