package service_test

import (
	"testing"

	"ai-character-chat/backend/internal/service"
	"ai-character-chat/backend/internal/testutil"
	apperrors "ai-character-chat/backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateUser(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	users := service.NewUserService(testDB.DB)

	user, err := users.CreateUser("alice", "alice@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	users := service.NewUserService(testDB.DB)

	_, err := users.CreateUser("bob", "bob@example.com")
	require.NoError(t, err)

	_, err = users.CreateUser("robert", "bob@example.com")
	require.Error(t, err)
	assert.Equal(t, 400, apperrors.GetStatusCode(err))

	appErr := apperrors.FromError(err)
	assert.Equal(t, "USER_EXISTS", appErr.Code)
}

func TestUserService_CreateUser_MissingFields(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	users := service.NewUserService(testDB.DB)

	_, err := users.CreateUser("", "x@example.com")
	assert.Equal(t, 400, apperrors.GetStatusCode(err))

	_, err = users.CreateUser("x", "")
	assert.Equal(t, 400, apperrors.GetStatusCode(err))
}

func TestUserService_GetUser(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	users := service.NewUserService(testDB.DB)

	created, err := users.CreateUser("carol", "carol@example.com")
	require.NoError(t, err)

	found, err := users.GetUser(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "carol", found.Username)

	_, err = users.GetUser("no-such-id")
	assert.Equal(t, 404, apperrors.GetStatusCode(err))
}

func TestUserService_UpsertByEmail(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	users := service.NewUserService(testDB.DB)

	first, err := users.UpsertByEmail("dave@example.com", "Dave", "", "external")
	require.NoError(t, err)

	second, err := users.UpsertByEmail("dave@example.com", "David", "", "external")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Dave", second.Username)
}
