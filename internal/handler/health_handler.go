package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"focusbot/internal/port"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	completer port.Completer
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(completer port.Completer) *HealthHandler {
	return &HealthHandler{completer: completer}
}

// Liveness handles GET /healthz
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Readiness handles GET /readyz
// @Summary Readiness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.completer == nil {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Error: "language model not configured"})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Model: h.completer.Name()})
}
