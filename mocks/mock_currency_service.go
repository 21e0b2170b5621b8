package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"focusbot/internal/domain"
	"focusbot/internal/service"
)

// MockCurrencyService is a mock implementation of service.CurrencyService.
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) Currencies() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockCurrencyService) Convert(ctx context.Context, input service.ConvertInput) (*domain.Conversion, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversion), args.Error(1)
}
