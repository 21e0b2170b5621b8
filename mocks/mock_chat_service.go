package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"focusbot/internal/domain"
	"focusbot/internal/service"
)

// MockChatService is a mock implementation of service.ChatService.
type MockChatService struct {
	mock.Mock
}

func (m *MockChatService) Send(ctx context.Context, sessionID uuid.UUID, message string) (*service.ChatReply, error) {
	args := m.Called(ctx, sessionID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ChatReply), args.Error(1)
}

func (m *MockChatService) History(ctx context.Context, sessionID uuid.UUID) ([]domain.ChatTurn, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChatTurn), args.Error(1)
}

func (m *MockChatService) Clear(ctx context.Context, sessionID uuid.UUID) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// Export writes the configured payload (args[0] as string) to w when no error is returned.
func (m *MockChatService) Export(ctx context.Context, sessionID uuid.UUID, format domain.ExportFormat, w io.Writer) error {
	args := m.Called(ctx, sessionID, format, w)
	if err := args.Error(1); err != nil {
		return err
	}
	_, err := io.WriteString(w, args.String(0))
	return err
}
