package api

import (
	"net/http"

	"ai-character-chat/backend/internal/models"
	"ai-character-chat/backend/internal/service"
	apperrors "ai-character-chat/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	sessions *service.SessionService
}

func NewAuthHandler(sessions *service.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Callback verifies a caller-supplied session id against the external
// auth service and mints a local session.
func (h *AuthHandler) Callback(c *gin.Context) {
	var req models.AuthCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("INVALID_BODY", err.Error()))
		return
	}

	user, session, err := h.sessions.AuthCallback(c.Request.Context(), req.SessionID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       user,
		"session_id": session.ID,
		"expires_at": session.ExpiresAt,
	})
}

// Me returns the user behind the session header.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := MustCurrentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout deletes the local session. Always succeeds for a syntactically
// present session id.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetHeader(SessionHeader)
	if sessionID == "" {
		c.Error(apperrors.NewUnauthorizedError("NO_SESSION", "Session ID required"))
		return
	}
	if err := h.sessions.Logout(c.Request.Context(), sessionID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
