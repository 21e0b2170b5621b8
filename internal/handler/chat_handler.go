package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"focusbot/internal/domain"
	"focusbot/internal/export"
	"focusbot/internal/service"
)

// ChatHandler handles chatbot endpoints.
type ChatHandler struct {
	chatService service.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Send handles POST /api/v1/chat/messages
// @Summary Send a chat message
// @Description Send a message to the language model and append the exchange to the conversation log
// @Tags chat
// @Accept json
// @Produce json
// @Param request body SendMessageRequest true "Message"
// @Success 200 {object} Response{data=service.ChatReply} "Model reply and updated log"
// @Failure 400 {object} ErrorResponseBody "Empty message"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 502 {object} ErrorResponseBody "Model unavailable"
// @Security SessionAuth
// @Router /chat/messages [post]
func (h *ChatHandler) Send(c *gin.Context) {
	sessionID, ok := extractSessionID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	reply, err := h.chatService.Send(c.Request.Context(), sessionID, req.Message)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, reply)
}

// History handles GET /api/v1/chat/messages
// @Summary Get the conversation log
// @Tags chat
// @Produce json
// @Success 200 {object} Response{data=[]domain.ChatTurn} "Conversation log, oldest first"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security SessionAuth
// @Router /chat/messages [get]
func (h *ChatHandler) History(c *gin.Context) {
	sessionID, ok := extractSessionID(c)
	if !ok {
		return
	}

	history, err := h.chatService.History(c.Request.Context(), sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, history)
}

// Clear handles DELETE /api/v1/chat/messages
// @Summary Clear the conversation log
// @Tags chat
// @Produce json
// @Success 200 {object} Response{data=MessageResponse} "Log cleared"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security SessionAuth
// @Router /chat/messages [delete]
func (h *ChatHandler) Clear(c *gin.Context) {
	sessionID, ok := extractSessionID(c)
	if !ok {
		return
	}

	if err := h.chatService.Clear(c.Request.Context(), sessionID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageResponse{Message: "conversation cleared"})
}

// Export handles GET /api/v1/chat/export
// @Summary Download the conversation log
// @Description Download the transcript as CSV (UTF-8 with BOM) or XLSX
// @Tags chat
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file "Transcript"
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security SessionAuth
// @Router /chat/export [get]
func (h *ChatHandler) Export(c *gin.Context) {
	sessionID, ok := extractSessionID(c)
	if !ok {
		return
	}

	format, err := domain.ParseExportFormat(c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.chatService.Export(c.Request.Context(), sessionID, format, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("focusbot_chat", format, time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, export.ContentType(format), buf.Bytes())
}
