package api

import (
	"net/http"

	"ai-character-chat/backend/internal/models"
	"ai-character-chat/backend/internal/service"
	apperrors "ai-character-chat/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	service *service.ChatService
}

func NewChatHandler(service *service.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Chat performs one chat turn against a conversation or room.
func (h *ChatHandler) Chat(c *gin.Context) {
	user, ok := MustCurrentUser(c)
	if !ok {
		return
	}

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("INVALID_BODY", err.Error()))
		return
	}

	resp, err := h.service.Chat(c.Request.Context(), user, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
