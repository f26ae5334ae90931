package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-character-chat/backend/internal/models"
	"ai-character-chat/backend/internal/service"
	"ai-character-chat/backend/internal/testutil"
	"ai-character-chat/backend/pkg/config"
	apperrors "ai-character-chat/backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionService(t *testing.T, verifyURL string) (*testutil.TestDB, *service.SessionService) {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	users := service.NewUserService(testDB.DB)

	cfg := &config.Config{}
	cfg.Auth.VerifyURL = verifyURL
	cfg.Auth.SessionTTL = 7 * 24 * time.Hour
	cfg.Auth.SessionCacheTTL = time.Minute

	return testDB, service.NewSessionService(testDB.DB, users, nil, cfg)
}

func TestSessionService_AuthCallbackMintsSession(t *testing.T) {
	verify := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sess-123", r.Header.Get("X-Session-ID"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"email":"eve@example.com","name":"Eve","picture":"","session_token":"tok"}`))
	}))
	defer verify.Close()

	_, sessions := newSessionService(t, verify.URL)
	ctx := context.Background()

	user, session, err := sessions.AuthCallback(ctx, "sess-123")
	require.NoError(t, err)
	assert.Equal(t, "eve@example.com", user.Email)
	assert.Equal(t, "sess-123", session.ID)
	assert.WithinDuration(t, time.Now().UTC().Add(7*24*time.Hour), session.ExpiresAt, time.Minute)

	// The minted session resolves to the same user.
	resolved, err := sessions.Resolve(ctx, "sess-123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	// A second callback for the same email reuses the user.
	again, _, err := sessions.AuthCallback(ctx, "sess-456")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
}

func TestSessionService_AuthCallbackVerificationFailure(t *testing.T) {
	verify := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer verify.Close()

	_, sessions := newSessionService(t, verify.URL)

	_, _, err := sessions.AuthCallback(context.Background(), "bad-sess")
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.GetStatusCode(err))
}

func TestSessionService_ResolveUnknownSession(t *testing.T) {
	_, sessions := newSessionService(t, "")

	_, err := sessions.Resolve(context.Background(), "ghost")
	assert.Equal(t, 401, apperrors.GetStatusCode(err))

	_, err = sessions.Resolve(context.Background(), "")
	assert.Equal(t, 401, apperrors.GetStatusCode(err))
}

func TestSessionService_ResolveExpiredSession(t *testing.T) {
	testDB, sessions := newSessionService(t, "")
	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	expired := &models.Session{
		ID:        "old-session",
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(-time.Hour),
		CreatedAt: time.Now().UTC().Add(-8 * 24 * time.Hour),
	}
	require.NoError(t, testDB.DB.Create(expired).Error)

	_, err := sessions.Resolve(context.Background(), "old-session")
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.GetStatusCode(err))
	assert.Equal(t, "SESSION_EXPIRED", apperrors.FromError(err).Code)
}

func TestSessionService_Logout(t *testing.T) {
	testDB, sessions := newSessionService(t, "")
	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	live := &models.Session{
		ID:        "live-session",
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, testDB.DB.Create(live).Error)

	require.NoError(t, sessions.Logout(context.Background(), "live-session"))

	_, err := sessions.Resolve(context.Background(), "live-session")
	assert.Equal(t, 401, apperrors.GetStatusCode(err))
}
