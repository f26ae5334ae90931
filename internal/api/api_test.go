package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"ai-character-chat/backend/internal/ai"
	"ai-character-chat/backend/internal/api"
	"ai-character-chat/backend/internal/models"
	"ai-character-chat/backend/internal/service"
	"ai-character-chat/backend/internal/testutil"
	"ai-character-chat/backend/pkg/config"
	"ai-character-chat/backend/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct{ keys map[string]bool }

func (s *stubGateway) Generate(ctx context.Context, req ai.GenerateRequest) (string, error) {
	return "stub reply", nil
}
func (s *stubGateway) HasKey(provider string) bool { return s.keys[provider] }
func (s *stubGateway) Catalog() []ai.ProviderInfo {
	return []ai.ProviderInfo{{ID: "openai", Name: "OpenAI GPT", Models: []string{"gpt-4.1"}, Available: s.keys["openai"]}}
}

type testAPI struct {
	db     *testutil.TestDB
	engine *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	testDB := testutil.NewTestDB(t)

	cfg := &config.Config{}
	cfg.Auth.SessionTTL = 7 * 24 * time.Hour
	cfg.Auth.SessionCacheTTL = time.Minute

	users := service.NewUserService(testDB.DB)
	sessions := service.NewSessionService(testDB.DB, users, nil, cfg)
	characters := service.NewCharacterService(testDB.DB, nil)
	personas := service.NewPersonaService(testDB.DB)
	messages := service.NewMessageService(testDB.DB)
	conversations := service.NewConversationService(testDB.DB, characters)
	gateway := &stubGateway{keys: map[string]bool{"openai": true}}

	engine := gin.New()
	engine.Use(errors.ErrorHandler())

	requireIdentity := api.RequireIdentity(sessions)
	optionalIdentity := api.OptionalIdentity(sessions)

	userHandler := api.NewUserHandler(users)
	characterHandler := api.NewCharacterHandler(characters)
	personaHandler := api.NewPersonaHandler(personas)
	conversationHandler := api.NewConversationHandler(conversations, messages)
	providerHandler := api.NewProviderHandler(gateway)

	apiRoutes := engine.Group("/api")
	apiRoutes.POST("/users", userHandler.CreateUser)
	apiRoutes.GET("/users/:id", userHandler.GetUser)
	apiRoutes.POST("/characters", optionalIdentity, characterHandler.CreateCharacter)
	apiRoutes.GET("/characters", characterHandler.ListCharacters)
	apiRoutes.GET("/characters/:id", characterHandler.GetCharacter)
	apiRoutes.POST("/conversations", optionalIdentity, conversationHandler.CreateConversation)
	apiRoutes.GET("/conversations/:id/messages", conversationHandler.GetMessages)
	apiRoutes.GET("/ai-providers", providerHandler.ListProviders)
	personaRoutes := apiRoutes.Group("/personas", requireIdentity)
	personaRoutes.POST("", personaHandler.CreatePersona)
	personaRoutes.GET("", personaHandler.ListPersonas)

	return &testAPI{db: testDB, engine: engine}
}

func (a *testAPI) request(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestUserEndpoints(t *testing.T) {
	a := newTestAPI(t)

	q := url.Values{"username": {"alice"}, "email": {"alice@example.com"}}
	w := a.request(t, http.MethodPost, "/api/users?"+q.Encode(), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	userID, _ := body["user_id"].(string)
	assert.NotEmpty(t, userID)

	// Duplicate email reports 400 with a detail string.
	w = a.request(t, http.MethodPost, "/api/users?"+q.Encode(), nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "detail")

	w = a.request(t, http.MethodGet, "/api/users/"+userID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decode(t, w)["username"])

	w = a.request(t, http.MethodGet, "/api/users/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCharacterRoundtrip(t *testing.T) {
	a := newTestAPI(t)

	w := a.request(t, http.MethodPost, "/api/characters", map[string]any{
		"name":        "Luna",
		"description": "A mystical sorceress",
		"personality": "wise and mysterious",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	characterID, _ := decode(t, w)["character_id"].(string)
	require.NotEmpty(t, characterID)

	w = a.request(t, http.MethodGet, "/api/characters/"+characterID, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decode(t, w)
	assert.Equal(t, characterID, got["character_id"])
	assert.Equal(t, "Luna", got["name"])
	assert.Equal(t, "wise and mysterious", got["personality"])
}

func TestCharacterValidation(t *testing.T) {
	a := newTestAPI(t)

	// Missing required personality field fails at bind time.
	w := a.request(t, http.MethodPost, "/api/characters", map[string]any{
		"name":        "Incomplete",
		"description": "d",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPersonasRequireIdentity(t *testing.T) {
	a := newTestAPI(t)

	w := a.request(t, http.MethodGet, "/api/personas", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Seed a user and a live session, then retry with the header.
	user := testutil.NewUserBuilder().Build(t, a.db.DB)
	session := &models.Session{
		ID:        "test-session",
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, a.db.DB.Create(session).Error)

	headers := map[string]string{"X-Session-ID": "test-session"}

	w = a.request(t, http.MethodPost, "/api/personas", map[string]any{"name": "Shadow"}, headers)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.request(t, http.MethodGet, "/api/personas", nil, headers)
	require.Equal(t, http.StatusOK, w.Code)
	personas, _ := decode(t, w)["personas"].([]any)
	assert.Len(t, personas, 1)
}

func TestProviderCatalogEndpoint(t *testing.T) {
	a := newTestAPI(t)

	w := a.request(t, http.MethodGet, "/api/ai-providers", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	providers, _ := decode(t, w)["providers"].([]any)
	require.Len(t, providers, 1)
	first, _ := providers[0].(map[string]any)
	assert.Equal(t, "openai", first["id"])
	assert.Equal(t, true, first["available"])
}

func TestConversationMessagesEmptyThread(t *testing.T) {
	a := newTestAPI(t)

	w := a.request(t, http.MethodGet, "/api/conversations/none/messages", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	messages, ok := decode(t, w)["messages"].([]any)
	assert.True(t, ok || messages == nil)
	assert.Empty(t, messages)
}
