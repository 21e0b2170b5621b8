package handler

import (
	"github.com/gin-gonic/gin"

	"focusbot/internal/service"
)

// VideoHandler handles video embed endpoints.
type VideoHandler struct {
	videoService service.VideoService
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(videoService service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// Embed handles GET /api/v1/videos/embed
// @Summary Resolve a YouTube link to an embeddable player
// @Tags videos
// @Produce json
// @Param url query string true "YouTube URL"
// @Success 200 {object} Response{data=domain.VideoEmbed} "Embed details"
// @Failure 400 {object} ErrorResponseBody "Invalid YouTube URL format."
// @Router /videos/embed [get]
func (h *VideoHandler) Embed(c *gin.Context) {
	embed, err := h.videoService.Embed(c.Query("url"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, embed)
}
