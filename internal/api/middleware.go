package api

import (
	"ai-character-chat/backend/internal/models"
	"ai-character-chat/backend/internal/service"
	apperrors "ai-character-chat/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// SessionHeader carries the opaque session identifier on every
// authenticated request.
const SessionHeader = "X-Session-ID"

// NOTE: The context key for the resolved user is always 'currentUser'.
const currentUserKey = "currentUser"

// RequireIdentity resolves the session header to a user and aborts with
// 401 when it cannot.
func RequireIdentity(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := sessions.Resolve(c.Request.Context(), c.GetHeader(SessionHeader))
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// OptionalIdentity resolves the session header when present but lets
// anonymous requests through.
func OptionalIdentity(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionID := c.GetHeader(SessionHeader); sessionID != "" {
			if user, err := sessions.Resolve(c.Request.Context(), sessionID); err == nil {
				c.Set(currentUserKey, user)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the resolved user, or nil on anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	if v, exists := c.Get(currentUserKey); exists {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// MustCurrentUser returns the resolved user or attaches a 401 error.
func MustCurrentUser(c *gin.Context) (*models.User, bool) {
	user := CurrentUser(c)
	if user == nil {
		c.Error(apperrors.NewUnauthorizedError("NO_SESSION", "Authentication required"))
		c.Abort()
		return nil, false
	}
	return user, true
}
