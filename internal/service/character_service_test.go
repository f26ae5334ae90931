package service_test

import (
	"testing"
	"time"

	"ai-character-chat/backend/internal/models"
	"ai-character-chat/backend/internal/service"
	"ai-character-chat/backend/internal/testutil"
	"ai-character-chat/backend/pkg/cache"
	apperrors "ai-character-chat/backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharacterService_CreateAndGet(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	characters := service.NewCharacterService(testDB.DB, nil)

	created, err := characters.CreateCharacter(&models.CreateCharacterRequest{
		Name:        "Luna",
		Description: "A mystical sorceress",
		Personality: "wise and mysterious",
	}, "creator-1")
	require.NoError(t, err)

	assert.Equal(t, "openai", created.AIProvider, "provider defaults to openai")
	assert.Equal(t, "gpt-4.1", created.AIModel, "model defaults to the provider's first catalog entry")
	assert.Equal(t, "creator-1", created.CreatedBy)

	found, err := characters.GetCharacter(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Luna", found.Name)
	assert.Equal(t, "wise and mysterious", found.Personality)
}

func TestCharacterService_GetUnknown(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	characters := service.NewCharacterService(testDB.DB, nil)

	_, err := characters.GetCharacter("no-such-id")
	assert.Equal(t, 404, apperrors.GetStatusCode(err))
}

func TestCharacterService_CacheHitSkipsStore(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	characterCache := cache.New(time.Minute, time.Minute, 100)
	characters := service.NewCharacterService(testDB.DB, characterCache)

	created, err := characters.CreateCharacter(&models.CreateCharacterRequest{
		Name:        "Cached",
		Description: "d",
		Personality: "p",
	}, "")
	require.NoError(t, err)

	// Delete the row behind the cache's back; the read still succeeds.
	require.NoError(t, testDB.DB.Delete(&models.Character{}, "id = ?", created.ID).Error)

	found, err := characters.GetCharacter(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cached", found.Name)
}

func TestCharacterService_ListFilters(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	characters := service.NewCharacterService(testDB.DB, nil)

	for i := 0; i < 3; i++ {
		testutil.NewCharacterBuilder().Build(t, testDB.DB)
	}
	mp := testutil.NewCharacterBuilder().Multiplayer().Build(t, testDB.DB)

	all, err := characters.ListCharacters(models.ListCharactersQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	multiplayerOnly, err := characters.ListCharacters(models.ListCharactersQuery{MultiplayerOnly: true})
	require.NoError(t, err)
	require.Len(t, multiplayerOnly, 1)
	assert.Equal(t, mp.ID, multiplayerOnly[0].ID)

	paged, err := characters.ListCharacters(models.ListCharactersQuery{Skip: 2, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, paged, 1)
}
