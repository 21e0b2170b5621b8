package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"focusbot/internal/service"
)

// DocumentHandler handles document upload and query endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Upload handles POST /api/v1/documents
// @Summary Upload a document
// @Description Upload a PDF, DOCX or TXT file; it replaces the session's current document.
// @Description Other file types are accepted and hold the single page "Unsupported file type."
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document to upload"
// @Success 201 {object} Response{data=service.DocumentInfo} "Document extracted"
// @Failure 400 {object} ErrorResponseBody "Missing file"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 422 {object} ErrorResponseBody "Unreadable document"
// @Security SessionAuth
// @Router /documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	sessionID, ok := extractSessionID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	info, err := h.documentService.Upload(c.Request.Context(), &service.UploadDocumentInput{
		SessionID: sessionID,
		FileName:  header.Filename,
		Size:      header.Size,
		Reader:    file,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, info)
}

// Current handles GET /api/v1/documents/current
// @Summary Describe the current document
// @Tags documents
// @Produce json
// @Success 200 {object} Response{data=service.DocumentInfo} "Current document"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "No document uploaded"
// @Security SessionAuth
// @Router /documents/current [get]
func (h *DocumentHandler) Current(c *gin.Context) {
	sessionID, ok := extractSessionID(c)
	if !ok {
		return
	}

	info, err := h.documentService.Current(c.Request.Context(), sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, info)
}

// Page handles GET /api/v1/documents/current/pages/:index
// @Summary View one page
// @Description Returns the 1-based page truncated to 3000 characters
// @Tags documents
// @Produce json
// @Param index path int true "1-based page index"
// @Success 200 {object} Response{data=domain.PageView} "Page view"
// @Failure 400 {object} ErrorResponseBody "Invalid or out of range index"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "No document uploaded"
// @Security SessionAuth
// @Router /documents/current/pages/{index} [get]
func (h *DocumentHandler) Page(c *gin.Context) {
	sessionID, ok := extractSessionID(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_PAGE", "page index must be an integer")
		return
	}

	view, err := h.documentService.Page(c.Request.Context(), sessionID, index)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Summarize handles POST /api/v1/documents/current/summary
// @Summary Summarize the current document
// @Tags documents
// @Produce json
// @Success 200 {object} Response{data=service.SummaryResult} "Summary"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "No document uploaded"
// @Failure 502 {object} ErrorResponseBody "Model unavailable"
// @Security SessionAuth
// @Router /documents/current/summary [post]
func (h *DocumentHandler) Summarize(c *gin.Context) {
	sessionID, ok := extractSessionID(c)
	if !ok {
		return
	}

	res, err := h.documentService.Summarize(c.Request.Context(), sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, res)
}

// DownloadSummary handles GET /api/v1/documents/current/summary.txt
// @Summary Download the last summary
// @Tags documents
// @Produce text/plain
// @Success 200 {file} file "summary.txt"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "No document or no summary yet"
// @Security SessionAuth
// @Router /documents/current/summary.txt [get]
func (h *DocumentHandler) DownloadSummary(c *gin.Context) {
	sessionID, ok := extractSessionID(c)
	if !ok {
		return
	}

	summary, err := h.documentService.LastSummary(c.Request.Context(), sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, service.SummaryFileName))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(summary))
}

// Ask handles POST /api/v1/documents/current/questions
// @Summary Ask a question about the current document
// @Tags documents
// @Accept json
// @Produce json
// @Param request body AskQuestionRequest true "Question"
// @Success 200 {object} Response{data=service.Answer} "Answer"
// @Failure 400 {object} ErrorResponseBody "Empty question"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "No document uploaded"
// @Failure 502 {object} ErrorResponseBody "Model unavailable"
// @Security SessionAuth
// @Router /documents/current/questions [post]
func (h *DocumentHandler) Ask(c *gin.Context) {
	sessionID, ok := extractSessionID(c)
	if !ok {
		return
	}

	var req AskQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	ans, err := h.documentService.Ask(c.Request.Context(), sessionID, req.Question)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, ans)
}
