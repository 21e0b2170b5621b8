package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"focusbot/internal/domain"
	"focusbot/internal/export"
	"focusbot/internal/llm"
	"focusbot/internal/port"
)

// ChatReply is the result of sending one chat message.
type ChatReply struct {
	Reply   string            `json:"reply"`
	History []domain.ChatTurn `json:"history"`
}

// ChatService defines the chatbot contract.
type ChatService interface {
	Send(ctx context.Context, sessionID uuid.UUID, message string) (*ChatReply, error)
	History(ctx context.Context, sessionID uuid.UUID) ([]domain.ChatTurn, error)
	Clear(ctx context.Context, sessionID uuid.UUID) error
	Export(ctx context.Context, sessionID uuid.UUID, format domain.ExportFormat, w io.Writer) error
}

type chatService struct {
	store     port.SessionStore
	completer port.Completer
	now       func() time.Time
}

// NewChatService creates a new ChatService implementation.
func NewChatService(store port.SessionStore, completer port.Completer) ChatService {
	return &chatService{store: store, completer: completer, now: time.Now}
}

func (s *chatService) Send(ctx context.Context, sessionID uuid.UUID, message string) (*ChatReply, error) {
	if message == "" {
		return nil, domain.ErrEmptyMessage
	}
	if _, err := s.store.Get(ctx, sessionID); err != nil {
		return nil, err
	}

	reply, err := s.completer.Complete(ctx, llm.ChatPrompt(message))
	if err != nil {
		log.Printf("chatService.Send: %s failed for session %s: %v", s.completer.Name(), sessionID, err)
		return nil, modelError("chat", err)
	}

	var history []domain.ChatTurn
	err = s.store.Update(ctx, sessionID, func(sess *domain.Session) error {
		sess.History = domain.AppendExchange(sess.History, message, reply, s.now().UTC())
		history = sess.History
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ChatReply{Reply: reply, History: history}, nil
}

func (s *chatService) History(ctx context.Context, sessionID uuid.UUID) ([]domain.ChatTurn, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.History, nil
}

func (s *chatService) Clear(ctx context.Context, sessionID uuid.UUID) error {
	return s.store.Update(ctx, sessionID, func(sess *domain.Session) error {
		sess.History = []domain.ChatTurn{}
		return nil
	})
}

func (s *chatService) Export(ctx context.Context, sessionID uuid.UUID, format domain.ExportFormat, w io.Writer) error {
	history, err := s.History(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := export.Transcript(w, format, history); err != nil {
		return fmt.Errorf("exporting transcript: %w", err)
	}
	return nil
}

// modelError tags a completer failure so the handler layer reports it as a
// model outage while keeping the provider error reachable.
func modelError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrModelUnavailable, err)
}
