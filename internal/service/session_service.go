package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"ai-character-chat/backend/internal/models"
	"ai-character-chat/backend/pkg/config"
	apperrors "ai-character-chat/backend/pkg/errors"
	"ai-character-chat/backend/pkg/metrics"
	"ai-character-chat/backend/shared/redis"

	"gorm.io/gorm"
)

// SessionService resolves opaque session ids to users and mints local
// sessions after external verification. Expiry is checked at read time;
// there is no sliding refresh or revocation list.
type SessionService struct {
	db         *gorm.DB
	users      *UserService
	redis      *redis.Client
	httpClient *http.Client
	verifyURL  string
	sessionTTL time.Duration
	cacheTTL   time.Duration
}

// NewSessionService creates a new session service.
func NewSessionService(db *gorm.DB, users *UserService, rdb *redis.Client, cfg *config.Config) *SessionService {
	return &SessionService{
		db:         db,
		users:      users,
		redis:      rdb,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		verifyURL:  cfg.Auth.VerifyURL,
		sessionTTL: cfg.Auth.SessionTTL,
		cacheTTL:   cfg.Auth.SessionCacheTTL,
	}
}

func sessionCacheKey(sessionID string) string {
	return "session:user:" + sessionID
}

// Resolve looks up a session id and returns the associated user, or an
// unauthorized error when the session is absent or expired.
func (s *SessionService) Resolve(ctx context.Context, sessionID string) (*models.User, error) {
	if sessionID == "" {
		metrics.SessionResolutions.WithLabelValues("miss").Inc()
		return nil, apperrors.NewUnauthorizedError("NO_SESSION", "Session ID required")
	}

	// Read-through cache: a hit skips both store lookups.
	if s.redis != nil {
		if userID, err := s.redis.Get(ctx, sessionCacheKey(sessionID)); err == nil && userID != "" {
			if user, err := s.users.GetUser(userID); err == nil {
				metrics.SessionResolutions.WithLabelValues("ok").Inc()
				return user, nil
			}
		}
	}

	var session models.Session
	if err := s.db.First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.SessionResolutions.WithLabelValues("miss").Inc()
			return nil, apperrors.NewUnauthorizedError("INVALID_SESSION", "Invalid session")
		}
		return nil, err
	}

	if !session.ExpiresAt.After(time.Now().UTC()) {
		metrics.SessionResolutions.WithLabelValues("expired").Inc()
		return nil, apperrors.NewUnauthorizedError("SESSION_EXPIRED", "Session expired")
	}

	user, err := s.users.GetUser(session.UserID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("INVALID_SESSION", "Invalid session")
	}

	if s.redis != nil {
		// Cache population is best-effort.
		_ = s.redis.Set(ctx, sessionCacheKey(sessionID), user.ID, s.cacheTTL)
	}

	metrics.SessionResolutions.WithLabelValues("ok").Inc()
	return user, nil
}

// verifiedIdentity is the payload returned by the external auth service.
type verifiedIdentity struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	SessionToken string `json:"session_token"`
}

// AuthCallback verifies a caller-supplied session id against the external
// identity provider, upserts the user by email and mints a local session
// with a fixed 7-day expiry.
func (s *SessionService) AuthCallback(ctx context.Context, sessionID string) (*models.User, *models.Session, error) {
	if s.verifyURL == "" {
		return nil, nil, apperrors.NewUpstreamError("AUTH_UNAVAILABLE", "Auth verification service not configured")
	}

	identity, err := s.verifySession(ctx, sessionID)
	if err != nil {
		return nil, nil, apperrors.NewUnauthorizedError("AUTH_FAILED", fmt.Sprintf("Session verification failed: %v", err))
	}

	user, err := s.users.UpsertByEmail(identity.Email, identity.Name, identity.Picture, "external")
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	session := &models.Session{
		ID:           sessionID,
		UserID:       user.ID,
		SessionToken: identity.SessionToken,
		ExpiresAt:    now.Add(s.sessionTTL),
		CreatedAt:    now,
	}

	// Re-verification of a live session replaces the existing row.
	if err := s.db.Save(session).Error; err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// Logout deletes the local session row and its cache entry.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if s.redis != nil {
		_ = s.redis.Del(ctx, sessionCacheKey(sessionID))
	}
	return s.db.Delete(&models.Session{}, "id = ?", sessionID).Error
}

func (s *SessionService) verifySession(ctx context.Context, sessionID string) (*verifiedIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.verifyURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("verification service returned status %d", resp.StatusCode)
	}

	var identity verifiedIdentity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, err
	}
	if identity.Email == "" {
		return nil, fmt.Errorf("verification response missing email")
	}
	return &identity, nil
}
