package llm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusbot/internal/config"
	"focusbot/internal/llm"
	"focusbot/internal/port"
)

type scriptedCompleter struct {
	name   string
	reply  string
	err    error
	calls  int
	closed bool
}

func (s *scriptedCompleter) Complete(context.Context, string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func (s *scriptedCompleter) Name() string { return s.name }

func (s *scriptedCompleter) Close() error {
	s.closed = true
	return nil
}

func TestFallbackCompleter_PrimarySucceeds(t *testing.T) {
	primary := &scriptedCompleter{name: "a", reply: "from a"}
	secondary := &scriptedCompleter{name: "b", reply: "from b"}

	got, err := llm.NewFallbackCompleter(primary, secondary).Complete(context.Background(), "hi")

	require.NoError(t, err)
	assert.Equal(t, "from a", got)
	assert.Equal(t, 0, secondary.calls)
}

func TestFallbackCompleter_FallsBackOnError(t *testing.T) {
	primary := &scriptedCompleter{name: "a", err: llm.NewProviderError("a", 500, []byte("boom"))}
	secondary := &scriptedCompleter{name: "b", reply: "from b"}

	got, err := llm.NewFallbackCompleter(primary, secondary).Complete(context.Background(), "hi")

	require.NoError(t, err)
	assert.Equal(t, "from b", got)
}

func TestFallbackCompleter_RateLimitOpensCircuit(t *testing.T) {
	primary := &scriptedCompleter{name: "a", err: llm.NewRateLimitError("a", errors.New("429"), 60)}
	secondary := &scriptedCompleter{name: "b", reply: "from b"}
	fc := llm.NewFallbackCompleter(primary, secondary)

	_, err := fc.Complete(context.Background(), "one")
	require.NoError(t, err)
	_, err = fc.Complete(context.Background(), "two")
	require.NoError(t, err)

	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 2, secondary.calls)
}

func TestFallbackCompleter_AllRateLimited(t *testing.T) {
	a := &scriptedCompleter{name: "a", err: llm.NewRateLimitError("a", errors.New("429"), 30)}
	b := &scriptedCompleter{name: "b", err: llm.NewRateLimitError("b", errors.New("429"), 90)}

	_, err := llm.NewFallbackCompleter(a, b).Complete(context.Background(), "hi")

	var rlErr *llm.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "all", rlErr.Provider)
}

func TestFallbackCompleter_AllFailed(t *testing.T) {
	a := &scriptedCompleter{name: "a", err: llm.NewRateLimitError("a", errors.New("429"), 30)}
	b := &scriptedCompleter{name: "b", err: errors.New("connection refused")}

	_, err := llm.NewFallbackCompleter(a, b).Complete(context.Background(), "hi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "all models failed")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestFallbackCompleter_NameAndClose(t *testing.T) {
	a := &scriptedCompleter{name: "gemini/gemini-1.5-flash"}
	b := &scriptedCompleter{name: "gemini/gemini-1.5-flash-8b"}
	fc := llm.NewFallbackCompleter(a, b)

	assert.Equal(t, "gemini/gemini-1.5-flash,gemini/gemini-1.5-flash-8b", fc.Name())
	require.NoError(t, fc.Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}

func TestNewCompleter_WrapsFallbackModels(t *testing.T) {
	llm.RegisterProvider("fallback-test", func(_ context.Context, cfg *config.LLMConfig) (port.Completer, error) {
		return &scriptedCompleter{name: "fb/" + cfg.DefaultModel}, nil
	})

	c, err := llm.NewCompleter(context.Background(), &config.LLMConfig{
		Provider:       "fallback-test",
		DefaultModel:   "big",
		FallbackModels: []string{"small", "tiny"},
	})

	require.NoError(t, err)
	assert.IsType(t, &llm.FallbackCompleter{}, c)
	assert.Equal(t, "fb/big,fb/small,fb/tiny", c.Name())
}
