package vertex

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"focusbot/internal/config"
	"focusbot/internal/port"
)

const (
	defaultModel = "gemini-1.5-flash"
	providerName = "vertex"
)

// generator is the subset of *genai.GenerativeModel used by Completer.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Completer implements port.Completer using Vertex AI with application
// default credentials.
type Completer struct {
	model      string
	gen        generator
	baseClient *genai.Client
}

// NewCompleter creates a Vertex AI client for the configured project and region.
func NewCompleter(ctx context.Context, cfg *config.LLMConfig) (*Completer, error) {
	if cfg.ProjectID == "" || cfg.Region == "" {
		return nil, fmt.Errorf("vertex.NewCompleter: projectID and region cannot be empty")
	}

	baseClient, err := genai.NewClient(ctx, cfg.ProjectID, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	modelName := cfg.DefaultModel
	if modelName == "" {
		modelName = defaultModel
	}
	model := baseClient.GenerativeModel(modelName)
	model.SetTemperature(float32(cfg.Temperature))

	return &Completer{model: modelName, gen: model, baseClient: baseClient}, nil
}

// Factory adapts NewCompleter to llm.ProviderFactory.
func Factory(ctx context.Context, cfg *config.LLMConfig) (port.Completer, error) {
	return NewCompleter(ctx, cfg)
}

func (c *Completer) Name() string { return providerName + "/" + c.model }

func (c *Completer) Close() error {
	if c.baseClient != nil {
		return c.baseClient.Close()
	}
	return nil
}

func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.gen.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("calling vertex API: %w", err)
	}
	text, ok := extractText(resp)
	if !ok {
		return "", fmt.Errorf("empty response from API: no text parts")
	}
	return text, nil
}

// extractText concatenates every text part of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", false
	}

	var b strings.Builder
	found := false
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
			found = true
		}
	}
	return b.String(), found
}
