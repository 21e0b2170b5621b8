package handler

import (
	"github.com/gin-gonic/gin"

	"focusbot/internal/service"
)

// SessionHandler handles session lifecycle endpoints.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Create handles POST /api/v1/sessions
// @Summary Start a session
// @Description Create an in-memory session holding a conversation log and the current document
// @Tags sessions
// @Produce json
// @Success 201 {object} Response{data=SessionTokenResponse} "Session created"
// @Failure 500 {object} ErrorResponseBody "Internal error"
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	tok, err := h.sessionService.Create(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, tok)
}

// End handles DELETE /api/v1/sessions
// @Summary End the current session
// @Description Discard the session's conversation log and document
// @Tags sessions
// @Produce json
// @Success 200 {object} Response{data=MessageResponse} "Session ended"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security SessionAuth
// @Router /sessions [delete]
func (h *SessionHandler) End(c *gin.Context) {
	sessionID, ok := extractSessionID(c)
	if !ok {
		return
	}
	if err := h.sessionService.End(c.Request.Context(), sessionID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageResponse{Message: "session ended"})
}
