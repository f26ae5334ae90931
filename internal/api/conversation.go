package api

import (
	"net/http"

	"ai-character-chat/backend/internal/models"
	"ai-character-chat/backend/internal/service"
	apperrors "ai-character-chat/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

type ConversationHandler struct {
	conversations *service.ConversationService
	messages      *service.MessageService
}

func NewConversationHandler(conversations *service.ConversationService, messages *service.MessageService) *ConversationHandler {
	return &ConversationHandler{conversations: conversations, messages: messages}
}

// CreateConversation starts a thread. The owner is the resolved session
// user, or the user_id query parameter for anonymous callers.
func (h *ConversationHandler) CreateConversation(c *gin.Context) {
	var req models.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("INVALID_BODY", err.Error()))
		return
	}

	userID := c.Query("user_id")
	if user := CurrentUser(c); user != nil {
		userID = user.ID
	}
	if userID == "" {
		c.Error(apperrors.NewUnauthorizedError("NO_SESSION", "Identity or user_id required"))
		return
	}

	conversation, err := h.conversations.CreateConversation(userID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversation_id": conversation.ID,
		"message":         "Conversation created successfully",
	})
}

// ListForUser returns all conversations of the user named in the path.
func (h *ConversationHandler) ListForUser(c *gin.Context) {
	conversations, err := h.conversations.ListConversations(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// GetMessages returns the thread in timestamp order.
func (h *ConversationHandler) GetMessages(c *gin.Context) {
	messages, err := h.messages.ListByConversation(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// UpdateAISettings changes provider and model via query parameters,
// validated against the static catalog.
func (h *ConversationHandler) UpdateAISettings(c *gin.Context) {
	user, ok := MustCurrentUser(c)
	if !ok {
		return
	}

	conversation, err := h.conversations.UpdateAISettings(
		user.ID, c.Param("id"), c.Query("ai_provider"), c.Query("ai_model"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "AI settings updated",
		"ai_provider": conversation.AIProvider,
		"ai_model":    conversation.AIModel,
	})
}
