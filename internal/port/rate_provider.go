package port

import "context"

// RateProvider looks up exchange rates relative to a base currency.
type RateProvider interface {
	Rates(ctx context.Context, base string) (map[string]float64, error)
}
