package api

import (
	"net/http"

	"ai-character-chat/backend/internal/ai"

	"github.com/gin-gonic/gin"
)

type ProviderHandler struct {
	gateway ai.Gateway
}

func NewProviderHandler(gateway ai.Gateway) *ProviderHandler {
	return &ProviderHandler{gateway: gateway}
}

// ListProviders returns the static catalog with availability flags
// derived from API-key presence.
func (h *ProviderHandler) ListProviders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"providers": h.gateway.Catalog()})
}
