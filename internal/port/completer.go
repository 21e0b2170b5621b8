package port

import "context"

// Completer abstracts a language model that turns a single text prompt into a
// text reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	// Name identifies the provider and model, e.g. "gemini/gemini-1.5-flash".
	Name() string
	Close() error
}
