package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"focusbot/internal/domain"
	"focusbot/internal/service"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, input *service.UploadDocumentInput) (*service.DocumentInfo, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentInfo), args.Error(1)
}

func (m *MockDocumentService) Current(ctx context.Context, sessionID uuid.UUID) (*service.DocumentInfo, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentInfo), args.Error(1)
}

func (m *MockDocumentService) Page(ctx context.Context, sessionID uuid.UUID, index int) (*domain.PageView, error) {
	args := m.Called(ctx, sessionID, index)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PageView), args.Error(1)
}

func (m *MockDocumentService) Summarize(ctx context.Context, sessionID uuid.UUID) (*service.SummaryResult, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SummaryResult), args.Error(1)
}

func (m *MockDocumentService) LastSummary(ctx context.Context, sessionID uuid.UUID) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) Ask(ctx context.Context, sessionID uuid.UUID, question string) (*service.Answer, error) {
	args := m.Called(ctx, sessionID, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Answer), args.Error(1)
}
