package service_test

import (
	"testing"

	"ai-character-chat/backend/internal/models"
	"ai-character-chat/backend/internal/service"
	"ai-character-chat/backend/internal/testutil"
	apperrors "ai-character-chat/backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConversationService(t *testing.T) (*testutil.TestDB, *service.ConversationService) {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	characters := service.NewCharacterService(testDB.DB, nil)
	return testDB, service.NewConversationService(testDB.DB, characters)
}

func TestConversationService_Create(t *testing.T) {
	testDB, conversations := newConversationService(t)
	user := testutil.NewUserBuilder().Build(t, testDB.DB)
	character := testutil.NewCharacterBuilder().WithProvider("anthropic", "claude-3-5-haiku-20241022").Build(t, testDB.DB)

	conversation, err := conversations.CreateConversation(user.ID, &models.CreateConversationRequest{
		CharacterID: character.ID,
		Title:       "First chat",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ModeCasual, conversation.Mode, "mode defaults to casual")
	assert.Equal(t, "anthropic", conversation.AIProvider, "provider inherited from character")
	assert.Equal(t, "claude-3-5-haiku-20241022", conversation.AIModel)
}

func TestConversationService_Create_UnknownCharacter(t *testing.T) {
	testDB, conversations := newConversationService(t)
	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	_, err := conversations.CreateConversation(user.ID, &models.CreateConversationRequest{
		CharacterID: "no-such-character",
		Title:       "Doomed",
	})
	assert.Equal(t, 404, apperrors.GetStatusCode(err))
}

func TestConversationService_UpdateAISettings(t *testing.T) {
	testDB, conversations := newConversationService(t)
	user := testutil.NewUserBuilder().Build(t, testDB.DB)
	character := testutil.NewCharacterBuilder().Build(t, testDB.DB)

	conversation, err := conversations.CreateConversation(user.ID, &models.CreateConversationRequest{
		CharacterID: character.ID,
		Title:       "Settings",
	})
	require.NoError(t, err)

	tests := []struct {
		name       string
		provider   string
		model      string
		wantStatus int
	}{
		{"valid pair", "anthropic", "claude-3-5-sonnet-20241022", 0},
		{"empty model gets provider default", "gemini", "", 0},
		{"unknown provider", "mistral", "mistral-large", 400},
		{"model from wrong provider", "openai", "gemini-1.5-pro", 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := conversations.UpdateAISettings(user.ID, conversation.ID, tt.provider, tt.model)
			if tt.wantStatus != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantStatus, apperrors.GetStatusCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.provider, updated.AIProvider)
			assert.NotEmpty(t, updated.AIModel)
		})
	}
}

func TestConversationService_ListOrderedByActivity(t *testing.T) {
	testDB, conversations := newConversationService(t)
	user := testutil.NewUserBuilder().Build(t, testDB.DB)
	character := testutil.NewCharacterBuilder().Build(t, testDB.DB)

	older, err := conversations.CreateConversation(user.ID, &models.CreateConversationRequest{
		CharacterID: character.ID, Title: "older",
	})
	require.NoError(t, err)
	newer, err := conversations.CreateConversation(user.ID, &models.CreateConversationRequest{
		CharacterID: character.ID, Title: "newer",
	})
	require.NoError(t, err)

	require.NoError(t, conversations.Touch(older.ID))

	list, err := conversations.ListConversations(user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, older.ID, list[0].ID, "touched conversation floats to the top")
	assert.Equal(t, newer.ID, list[1].ID)
}

func TestMessageService_OrderedByTimestamp(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	messages := service.NewMessageService(testDB.DB)

	first, err := messages.SaveUserMessage("conv-1", "", "user-1", "Hello")
	require.NoError(t, err)
	second, err := messages.SaveCharacterMessage("conv-1", "", "char-1", "Greetings, wanderer", "openai", "gpt-4.1")
	require.NoError(t, err)

	list, err := messages.ListByConversation("conv-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, models.SenderUser, list[0].Sender)
	assert.Equal(t, models.SenderCharacter, list[1].Sender)
	assert.Equal(t, "openai", list[1].AIProvider)
	assert.Empty(t, list[0].AIProvider, "provider is stamped only on character turns")
}
