package service

import (
	"errors"
	"time"

	"ai-character-chat/backend/internal/ai"
	"ai-character-chat/backend/internal/models"
	apperrors "ai-character-chat/backend/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConversationService handles private conversation threads. AI settings
// are validated against the provider catalog only when changed through
// UpdateAISettings; the chat path trusts stored values.
type ConversationService struct {
	db         *gorm.DB
	characters *CharacterService
}

// NewConversationService creates a new conversation service.
func NewConversationService(db *gorm.DB, characters *CharacterService) *ConversationService {
	return &ConversationService{db: db, characters: characters}
}

// CreateConversation starts a thread between the user and a character.
// Provider and model default to the character's own settings.
func (s *ConversationService) CreateConversation(userID string, req *models.CreateConversationRequest) (*models.Conversation, error) {
	character, err := s.characters.GetCharacter(req.CharacterID)
	if err != nil {
		return nil, err
	}

	mode := req.Mode
	if mode == "" {
		mode = models.ModeCasual
	}
	provider := req.AIProvider
	if provider == "" {
		provider = character.AIProvider
	}
	model := req.AIModel
	if model == "" {
		model = character.AIModel
	}

	now := time.Now().UTC()
	conversation := &models.Conversation{
		ID:          uuid.New().String(),
		UserID:      userID,
		CharacterID: character.ID,
		Title:       req.Title,
		Mode:        mode,
		IsNSFW:      req.IsNSFW,
		AIProvider:  provider,
		AIModel:     model,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.db.Create(conversation).Error; err != nil {
		return nil, err
	}
	return conversation, nil
}

// ListConversations returns the user's conversations, newest first.
func (s *ConversationService) ListConversations(userID string) ([]models.Conversation, error) {
	var conversations []models.Conversation
	if err := s.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&conversations).Error; err != nil {
		return nil, err
	}
	return conversations, nil
}

// GetConversation retrieves one conversation, scoped to its owner.
func (s *ConversationService) GetConversation(userID, conversationID string) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := s.db.First(&conversation, "id = ? AND user_id = ?", conversationID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("CONVERSATION_NOT_FOUND", "Conversation not found")
		}
		return nil, err
	}
	return &conversation, nil
}

// UpdateAISettings changes the provider and model of a conversation after
// validating both against the static catalog.
func (s *ConversationService) UpdateAISettings(userID, conversationID, provider, model string) (*models.Conversation, error) {
	if !ai.KnownProvider(provider) {
		return nil, apperrors.NewInvalidInputError("UNKNOWN_PROVIDER", "Unknown AI provider: "+provider)
	}
	if model == "" {
		model = ai.DefaultModel(provider)
	}
	if !ai.KnownModel(provider, model) {
		return nil, apperrors.NewInvalidInputError("UNKNOWN_MODEL", "Unknown model for provider "+provider+": "+model)
	}

	conversation, err := s.GetConversation(userID, conversationID)
	if err != nil {
		return nil, err
	}

	conversation.AIProvider = provider
	conversation.AIModel = model
	conversation.UpdatedAt = time.Now().UTC()
	if err := s.db.Save(conversation).Error; err != nil {
		return nil, err
	}
	return conversation, nil
}

// Touch bumps the conversation's updated_at so the list stays ordered by
// recent activity.
func (s *ConversationService) Touch(conversationID string) error {
	return s.db.Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		Update("updated_at", time.Now().UTC()).Error
}
