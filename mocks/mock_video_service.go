package mocks

import (
	"github.com/stretchr/testify/mock"

	"focusbot/internal/domain"
)

// MockVideoService is a mock implementation of service.VideoService.
type MockVideoService struct {
	mock.Mock
}

func (m *MockVideoService) Embed(url string) (*domain.VideoEmbed, error) {
	args := m.Called(url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VideoEmbed), args.Error(1)
}
