package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"focusbot/internal/config"
	"focusbot/internal/domain"
	"focusbot/internal/port"
)

const sessionAudience = "session"

// SessionClaims are the JWT claims carried by a session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	SessionID uuid.UUID `json:"sid"`
}

// SessionToken is returned to clients when a session is created.
type SessionToken struct {
	Token     string    `json:"token"`
	SessionID uuid.UUID `json:"session_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionService defines the session lifecycle contract.
type SessionService interface {
	Create(ctx context.Context) (*SessionToken, error)
	Validate(tokenString string) (uuid.UUID, error)
	End(ctx context.Context, sessionID uuid.UUID) error
}

type sessionService struct {
	store port.SessionStore
	cfg   config.SessionConfig
}

// NewSessionService creates a new SessionService implementation.
func NewSessionService(store port.SessionStore, cfg config.SessionConfig) SessionService {
	return &sessionService{store: store, cfg: cfg}
}

func (s *sessionService) Create(ctx context.Context) (*SessionToken, error) {
	sess, err := s.store.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(s.cfg.TokenTTL)

	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.ID.String(),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{sessionAudience},
		},
		SessionID: sess.ID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		_ = s.store.Delete(ctx, sess.ID)
		return nil, fmt.Errorf("signing session token: %w", err)
	}

	log.Printf("sessionService.Create: session %s created", sess.ID)
	return &SessionToken{Token: signed, SessionID: sess.ID, ExpiresAt: expiresAt}, nil
}

func (s *sessionService) Validate(tokenString string) (uuid.UUID, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithAudience(sessionAudience))
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing token: %v: %w", err, domain.ErrUnauthorized)
	}
	if !token.Valid || claims.SessionID == uuid.Nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return claims.SessionID, nil
}

func (s *sessionService) End(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		return err
	}
	log.Printf("sessionService.End: session %s ended", sessionID)
	return nil
}
