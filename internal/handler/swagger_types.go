package handler

import (
	"time"

	"github.com/google/uuid"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// SendMessageRequest represents the chat message request body.
type SendMessageRequest struct {
	Message string `json:"message" example:"Explain goroutines in one paragraph."`
}

// AskQuestionRequest represents the document question request body.
type AskQuestionRequest struct {
	Question string `json:"question" example:"What are the key deadlines mentioned?"`
}

// ConvertRequest represents the currency conversion request body.
type ConvertRequest struct {
	From   string  `json:"from" binding:"required" example:"USD"`
	To     string  `json:"to" binding:"required" example:"PKR"`
	Amount float64 `json:"amount" example:"1"`
}

// --- Response Types ---

// Response is the generic success envelope.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody is the error envelope.
type ErrorResponseBody struct {
	Success bool     `json:"success" example:"false"`
	Error   APIError `json:"error"`
}

// SessionTokenResponse represents a newly created session.
type SessionTokenResponse struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	SessionID uuid.UUID `json:"session_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ExpiresAt time.Time `json:"expires_at" example:"2025-01-15T10:30:00Z"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Model  string `json:"model,omitempty" example:"gemini/gemini-1.5-flash"`
	Error  string `json:"error,omitempty" example:"language model not configured"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}
