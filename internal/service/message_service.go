package service

import (
	"time"

	"ai-character-chat/backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageService persists chat turns. Messages are append-only; there is
// no edit or delete surface.
type MessageService struct {
	db *gorm.DB
}

// NewMessageService creates a new message service.
func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// SaveUserMessage appends a user turn to a conversation or room thread.
func (s *MessageService) SaveUserMessage(conversationID, roomID, senderID, content string) (*models.Message, error) {
	now := time.Now().UTC()
	msg := &models.Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		RoomID:         roomID,
		Sender:         models.SenderUser,
		SenderID:       senderID,
		Content:        content,
		Timestamp:      now,
		CreatedAt:      now,
	}
	if err := s.db.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// SaveCharacterMessage appends a character turn stamped with the provider
// and model that produced it.
func (s *MessageService) SaveCharacterMessage(conversationID, roomID, characterID, content, provider, model string) (*models.Message, error) {
	now := time.Now().UTC()
	msg := &models.Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		RoomID:         roomID,
		Sender:         models.SenderCharacter,
		SenderID:       characterID,
		Content:        content,
		Timestamp:      now,
		CreatedAt:      now,
		AIProvider:     provider,
		AIModel:        model,
	}
	if err := s.db.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// ListByConversation returns the thread in timestamp order.
func (s *MessageService) ListByConversation(conversationID string) ([]models.Message, error) {
	var messages []models.Message
	if err := s.db.Where("conversation_id = ?", conversationID).
		Order("timestamp").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// ListByRoom returns the shared room transcript in timestamp order.
func (s *MessageService) ListByRoom(roomID string) ([]models.Message, error) {
	var messages []models.Message
	if err := s.db.Where("room_id = ?", roomID).
		Order("timestamp").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
