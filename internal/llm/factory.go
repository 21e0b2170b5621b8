package llm

import (
	"context"
	"fmt"
	"sync"

	"focusbot/internal/config"
	"focusbot/internal/port"
)

// ProviderFactory is a function that creates a Completer from the model config.
type ProviderFactory func(ctx context.Context, cfg *config.LLMConfig) (port.Completer, error)

// registry of provider factories, populated explicitly via RegisterProvider.
var (
	mu        sync.RWMutex
	providers = map[string]ProviderFactory{}
)

// RegisterProvider registers a completion provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	mu.Lock()
	defer mu.Unlock()
	providers[name] = factory
}

// NewCompleter creates a Completer for cfg.Provider using the registered
// factory. When cfg.FallbackModels is set, the default model is tried first
// and each fallback model after it.
func NewCompleter(ctx context.Context, cfg *config.LLMConfig) (port.Completer, error) {
	mu.RLock()
	factory, ok := providers[cfg.Provider]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}

	primary, err := factory(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if len(cfg.FallbackModels) == 0 {
		return primary, nil
	}

	completers := []port.Completer{primary}
	for _, model := range cfg.FallbackModels {
		fcfg := *cfg
		fcfg.DefaultModel = model
		fcfg.FallbackModels = nil
		c, err := factory(ctx, &fcfg)
		if err != nil {
			for _, built := range completers {
				_ = built.Close()
			}
			return nil, fmt.Errorf("creating fallback model %s: %w", model, err)
		}
		completers = append(completers, c)
	}
	return NewFallbackCompleter(completers...), nil
}
