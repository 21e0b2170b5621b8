package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusbot/internal/domain"
	"focusbot/internal/handler"
	"focusbot/internal/middleware"
)

var testTime = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

func setSessionContext(c *gin.Context, sessionID uuid.UUID) {
	c.Set(middleware.ContextKeySessionID, sessionID)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrSessionNotFound, http.StatusUnauthorized, "SESSION_EXPIRED"},
		{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{domain.ErrUnreadableDocument, http.StatusUnprocessableEntity, "UNREADABLE_DOCUMENT"},
		{domain.ErrNoDocument, http.StatusNotFound, "NO_DOCUMENT"},
		{domain.ErrPageOutOfRange, http.StatusBadRequest, "PAGE_OUT_OF_RANGE"},
		{domain.ErrEmptyMessage, http.StatusBadRequest, "EMPTY_MESSAGE"},
		{fmt.Errorf("chat: %w: %w", domain.ErrModelUnavailable, assert.AnError), http.StatusBadGateway, "MODEL_UNAVAILABLE"},
		{domain.ErrInvalidVideoURL, http.StatusBadRequest, "INVALID_VIDEO_URL"},
		{domain.ErrSameCurrency, http.StatusBadRequest, "SAME_CURRENCY"},
		{domain.ErrCurrencyNotSupported, http.StatusUnprocessableEntity, "CURRENCY_NOT_SUPPORTED"},
		{domain.ErrRateUnavailable, http.StatusBadGateway, "RATE_UNAVAILABLE"},
		{domain.ErrUnsupportedExport, http.StatusBadRequest, "UNSUPPORTED_EXPORT_FORMAT"},
		{assert.AnError, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestMapDomainError_UserFacingMessages(t *testing.T) {
	_, _, msg := handler.MapDomainError(domain.ErrSameCurrency)
	assert.Equal(t, "Please select two different currencies.", msg)

	_, _, msg = handler.MapDomainError(domain.ErrCurrencyNotSupported)
	assert.Equal(t, "Currency not supported.", msg)

	_, _, msg = handler.MapDomainError(fmt.Errorf("%w: %w", domain.ErrRateUnavailable, fmt.Errorf("timeout")))
	assert.Contains(t, msg, "Error fetching conversion: ")
	assert.Contains(t, msg, "timeout")
}

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/readyz", http.NoBody)

	handler.NewHealthHandler(nil).Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	handler.NewHealthHandler(nil).Liveness(c)
	assert.Equal(t, http.StatusOK, w.Code)
}
