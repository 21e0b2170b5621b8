package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"focusbot/internal/domain"
	"focusbot/internal/port"
)

// ConvertInput is the DTO for a currency conversion request.
type ConvertInput struct {
	From   string  `json:"from" binding:"required"`
	To     string  `json:"to" binding:"required"`
	Amount float64 `json:"amount"`
}

// CurrencyService defines the currency conversion contract.
type CurrencyService interface {
	Currencies() []string
	Convert(ctx context.Context, input ConvertInput) (*domain.Conversion, error)
}

type currencyService struct {
	rates port.RateProvider
}

// NewCurrencyService creates a new CurrencyService implementation.
func NewCurrencyService(rates port.RateProvider) CurrencyService {
	return &currencyService{rates: rates}
}

func (s *currencyService) Currencies() []string {
	out := make([]string, len(domain.SupportedCurrencies))
	copy(out, domain.SupportedCurrencies)
	return out
}

func (s *currencyService) Convert(ctx context.Context, input ConvertInput) (*domain.Conversion, error) {
	from, err := normalizeCode(input.From)
	if err != nil {
		return nil, err
	}
	to, err := normalizeCode(input.To)
	if err != nil {
		return nil, err
	}
	if from == to {
		return nil, domain.ErrSameCurrency
	}
	if input.Amount < 0 || math.IsNaN(input.Amount) || math.IsInf(input.Amount, 0) {
		return nil, domain.ErrInvalidAmount
	}

	rates, err := s.rates.Rates(ctx, from)
	if err != nil {
		log.Printf("currencyService.Convert: fetching %s rates: %v", from, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrRateUnavailable, err)
	}
	rate, ok := rates[to]
	if !ok {
		return nil, fmt.Errorf("%s: %w", to, domain.ErrCurrencyNotSupported)
	}

	converted := input.Amount * rate
	return &domain.Conversion{
		From:        from,
		To:          to,
		Amount:      input.Amount,
		Rate:        rate,
		Converted:   converted,
		Summary:     fmt.Sprintf("%.2f %s = %.2f %s", input.Amount, from, converted, to),
		RateCaption: fmt.Sprintf("1 %s = %.4f %s", from, rate, to),
	}, nil
}

// normalizeCode upper-cases a currency code and checks it is three letters.
func normalizeCode(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if len(c) != 3 {
		return "", fmt.Errorf("%q: %w", code, domain.ErrInvalidCurrency)
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%q: %w", code, domain.ErrInvalidCurrency)
		}
	}
	return c, nil
}
