// Package providers registers every built-in completion provider with the
// llm factory.
package providers

import (
	"focusbot/internal/llm"
	"focusbot/internal/llm/claude"
	"focusbot/internal/llm/gemini"
	"focusbot/internal/llm/openai"
	"focusbot/internal/llm/vertex"
)

// RegisterAll registers the gemini, vertex, claude and openai factories.
func RegisterAll() {
	llm.RegisterProvider("gemini", gemini.Factory)
	llm.RegisterProvider("vertex", vertex.Factory)
	llm.RegisterProvider("claude", claude.Factory)
	llm.RegisterProvider("openai", openai.Factory)
}
