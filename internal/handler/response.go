package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"focusbot/internal/domain"
	"focusbot/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, "SESSION_EXPIRED", "session not found or expired; create a new session"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUnreadableDocument):
		return http.StatusUnprocessableEntity, "UNREADABLE_DOCUMENT", "the document could not be read"
	case errors.Is(err, domain.ErrInvalidTextEncoding):
		return http.StatusUnprocessableEntity, "INVALID_TEXT_ENCODING", "text files must be UTF-8 encoded"
	case errors.Is(err, domain.ErrNoDocument):
		return http.StatusNotFound, "NO_DOCUMENT", "upload a document first"
	case errors.Is(err, domain.ErrPageOutOfRange):
		return http.StatusBadRequest, "PAGE_OUT_OF_RANGE", "page index out of range"
	case errors.Is(err, domain.ErrNoSummary):
		return http.StatusNotFound, "NO_SUMMARY", "summarize the document first"
	case errors.Is(err, domain.ErrEmptyMessage):
		return http.StatusBadRequest, "EMPTY_MESSAGE", "message cannot be empty"
	case errors.Is(err, domain.ErrEmptyQuestion):
		return http.StatusBadRequest, "EMPTY_QUESTION", "question cannot be empty"
	case errors.Is(err, domain.ErrModelUnavailable):
		return http.StatusBadGateway, "MODEL_UNAVAILABLE", "the language model could not answer; try again"
	case errors.Is(err, domain.ErrInvalidVideoURL):
		return http.StatusBadRequest, "INVALID_VIDEO_URL", "Invalid YouTube URL format."
	case errors.Is(err, domain.ErrInvalidCurrency):
		return http.StatusBadRequest, "INVALID_CURRENCY", "currency codes must be three letters"
	case errors.Is(err, domain.ErrSameCurrency):
		return http.StatusBadRequest, "SAME_CURRENCY", "Please select two different currencies."
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, "INVALID_AMOUNT", "amount must not be negative"
	case errors.Is(err, domain.ErrCurrencyNotSupported):
		return http.StatusUnprocessableEntity, "CURRENCY_NOT_SUPPORTED", "Currency not supported."
	case errors.Is(err, domain.ErrRateUnavailable):
		return http.StatusBadGateway, "RATE_UNAVAILABLE", "Error fetching conversion: " + err.Error()
	case errors.Is(err, domain.ErrUnsupportedExport):
		return http.StatusBadRequest, "UNSUPPORTED_EXPORT_FORMAT", "unsupported export format; allowed: csv, xlsx"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// extractSessionID reads the session ID set by the session middleware.
// Returns false if it is missing (error response already written).
func extractSessionID(c *gin.Context) (uuid.UUID, bool) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing session context")
		return uuid.Nil, false
	}
	return sessionID, true
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get(middleware.ContextKeyRequestID)
		log.Printf("[%s] %s: %v", requestID, code, err)
	}
	RespondError(c, status, code, msg)
}
