package api

import (
	"net/http"

	"ai-character-chat/backend/pkg/health"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	checker *health.Checker
}

func NewHealthHandler(checker *health.Checker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Health runs all registered checks. A degraded system still answers,
// with a 503 and per-component detail.
func (h *HealthHandler) Health(c *gin.Context) {
	status, components := h.checker.RunChecks()

	code := http.StatusOK
	message := "AI Character Chat backend is running"
	if status != health.StatusUp {
		code = http.StatusServiceUnavailable
		message = "One or more components are unavailable"
	}

	c.JSON(code, gin.H{
		"status":     status,
		"message":    message,
		"components": components,
	})
}
