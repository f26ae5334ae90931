package service

import (
	"context"
	"net/http"

	"ai-character-chat/backend/internal/ai"
	"ai-character-chat/backend/internal/models"
	apperrors "ai-character-chat/backend/pkg/errors"
	"ai-character-chat/backend/pkg/logger"
	"ai-character-chat/backend/pkg/metrics"
)

// ChatService orchestrates one chat turn: load context, resolve persona,
// persist the user turn, assemble the prompt, call the gateway, persist
// the reply. Persistence is write-optimistic: a gateway failure leaves
// the user turn in the store, and reads must tolerate the asymmetric
// record. The one exception is a missing provider key, which is checked
// before anything is written.
type ChatService struct {
	conversations *ConversationService
	rooms         *RoomService
	characters    *CharacterService
	personas      *PersonaService
	messages      *MessageService
	gateway       ai.Gateway
	log           *logger.Logger
}

// NewChatService creates a new chat orchestrator.
func NewChatService(
	conversations *ConversationService,
	rooms *RoomService,
	characters *CharacterService,
	personas *PersonaService,
	messages *MessageService,
	gateway ai.Gateway,
	log *logger.Logger,
) *ChatService {
	return &ChatService{
		conversations: conversations,
		rooms:         rooms,
		characters:    characters,
		personas:      personas,
		messages:      messages,
		gateway:       gateway,
		log:           log,
	}
}

// chatContext is the loaded target of one chat turn.
type chatContext struct {
	character     *models.Character
	continuityKey string
	mode          string
	isNSFW        bool
	isMultiplayer bool
	provider      string
	model         string
}

// Chat performs one full chat turn for user against the conversation or
// room named in req.
func (s *ChatService) Chat(ctx context.Context, user *models.User, req *models.ChatRequest) (*models.ChatResponse, error) {
	if (req.ConversationID == "") == (req.RoomID == "") {
		return nil, apperrors.NewInvalidInputError("INVALID_TARGET", "Exactly one of conversation_id or room_id is required")
	}

	cc, err := s.loadContext(user, req)
	if err != nil {
		return nil, err
	}

	// Request overrides beat stored settings.
	if req.AIProvider != "" {
		cc.provider = req.AIProvider
	}
	if req.AIModel != "" {
		cc.model = req.AIModel
	}
	if cc.model == "" {
		cc.model = ai.DefaultModel(cc.provider)
	}

	// Key presence is checked before the user turn is written so an
	// unconfigured provider persists nothing.
	if !s.gateway.HasKey(cc.provider) {
		metrics.ChatFailures.WithLabelValues(cc.provider, "no_key").Inc()
		return nil, apperrors.NewInvalidInputError("PROVIDER_NOT_CONFIGURED",
			"AI provider "+cc.provider+" is not configured")
	}

	persona, err := s.resolvePersona(user.ID, req.PersonaID)
	if err != nil {
		return nil, err
	}

	userMsg, err := s.messages.SaveUserMessage(req.ConversationID, req.RoomID, user.ID, req.Message)
	if err != nil {
		return nil, err
	}

	prompt := BuildSystemPrompt(cc.character, cc.mode, cc.isNSFW, cc.isMultiplayer, persona)

	reply, err := s.gateway.Generate(ctx, ai.GenerateRequest{
		Provider:      cc.provider,
		Model:         cc.model,
		SystemPrompt:  prompt,
		Message:       req.Message,
		ContinuityKey: cc.continuityKey,
	})
	if err != nil {
		s.log.Error("chat generation failed",
			"provider", cc.provider, "model", cc.model, "error", err.Error())
		return nil, apperrors.NewUpstreamError("GENERATION_FAILED", "AI generation failed: "+err.Error())
	}

	aiMsg, err := s.messages.SaveCharacterMessage(req.ConversationID, req.RoomID,
		cc.character.ID, reply, cc.provider, cc.model)
	if err != nil {
		return nil, err
	}

	if req.ConversationID != "" {
		if err := s.conversations.Touch(req.ConversationID); err != nil {
			s.log.Warn("failed to touch conversation", "conversation_id", req.ConversationID, "error", err.Error())
		}
	}

	metrics.ChatTurns.WithLabelValues(cc.provider, cc.model).Inc()

	resp := &models.ChatResponse{
		UserMessage: userMsg,
		AIResponse:  aiMsg,
		AIProvider:  cc.provider,
		AIModel:     cc.model,
	}
	if persona != nil {
		resp.PersonaUsed = persona.Name
	}
	return resp, nil
}

func (s *ChatService) loadContext(user *models.User, req *models.ChatRequest) (*chatContext, error) {
	if req.ConversationID != "" {
		conversation, err := s.conversations.GetConversation(user.ID, req.ConversationID)
		if err != nil {
			return nil, err
		}
		character, err := s.characters.GetCharacter(conversation.CharacterID)
		if err != nil {
			return nil, err
		}
		return &chatContext{
			character:     character,
			continuityKey: conversation.ID,
			mode:          conversation.Mode,
			isNSFW:        conversation.IsNSFW || character.IsNSFW,
			provider:      conversation.AIProvider,
			model:         conversation.AIModel,
		}, nil
	}

	room, err := s.rooms.GetRoom(req.RoomID)
	if err != nil {
		return nil, err
	}
	if !room.HasParticipant(user.ID) {
		return nil, apperrors.NewForbiddenError("NOT_A_PARTICIPANT", "Join the room before chatting")
	}
	character, err := s.characters.GetCharacter(room.CharacterID)
	if err != nil {
		return nil, err
	}
	return &chatContext{
		character:     character,
		continuityKey: room.ID,
		mode:          models.ModeCasual,
		isNSFW:        character.IsNSFW,
		isMultiplayer: true,
		provider:      character.AIProvider,
		model:         character.AIModel,
	}, nil
}

// resolvePersona returns the explicit persona when requested, otherwise
// the caller's default, otherwise nil. Having no personas is not an
// error; an explicit id that does not exist is.
func (s *ChatService) resolvePersona(userID, personaID string) (*models.Persona, error) {
	if personaID != "" {
		return s.personas.GetPersona(userID, personaID)
	}
	persona, err := s.personas.GetDefaultPersona(userID)
	if err != nil {
		if apperrors.GetStatusCode(err) == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return persona, nil
}
