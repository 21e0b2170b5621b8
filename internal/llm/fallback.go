package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"focusbot/internal/port"
)

// circuit holds a completer back until its rate limit window has passed.
type circuit struct {
	mu    sync.RWMutex
	until time.Time // zero when healthy
}

// openUntil reports whether the circuit is open at now and when it closes.
func (c *circuit) openUntil(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.until, now.Before(c.until)
}

func (c *circuit) trip(until time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.until = until
}

// FallbackCompleter tries completers in order, skipping those whose circuit
// is open after a rate limit. It implements port.Completer.
type FallbackCompleter struct {
	completers []port.Completer
	circuits   []*circuit
	now        func() time.Time
}

// NewFallbackCompleter creates a FallbackCompleter from an ordered list of completers.
func NewFallbackCompleter(completers ...port.Completer) *FallbackCompleter {
	circuits := make([]*circuit, len(completers))
	for i := range circuits {
		circuits[i] = &circuit{}
	}
	return &FallbackCompleter{
		completers: completers,
		circuits:   circuits,
		now:        time.Now,
	}
}

func (f *FallbackCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	now := f.now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for i, c := range f.completers {
		if resetAt, open := f.circuits[i].openUntil(now); open {
			log.Printf("llm.FallbackCompleter: skipping %s (circuit open until %s)", c.Name(), resetAt.Format(time.RFC3339))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		out, err := c.Complete(ctx, prompt)
		if err == nil {
			return out, nil
		}
		if ctx.Err() != nil {
			return "", err
		}

		log.Printf("llm.FallbackCompleter: %s failed: %v", c.Name(), err)
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].trip(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		} else {
			allRateLimited = false
		}
	}

	if lastErr == nil || allRateLimited {
		retryAfter := earliestReset.Sub(now)
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return "", NewRateLimitError("all", errors.New("all models rate limited"), int(retryAfter.Seconds()))
	}
	return "", fmt.Errorf("all models failed: %w", lastErr)
}

// Name lists the wrapped completers in fallback order.
func (f *FallbackCompleter) Name() string {
	names := make([]string, len(f.completers))
	for i, c := range f.completers {
		names[i] = c.Name()
	}
	return strings.Join(names, ",")
}

// Close closes every wrapped completer and returns the first error.
func (f *FallbackCompleter) Close() error {
	var first error
	for _, c := range f.completers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
