package models

import "time"

// Message sender kinds.
const (
	SenderUser      = "user"
	SenderCharacter = "character"
)

// Message is an append-only chat turn, ordered by Timestamp ascending on
// retrieval. Exactly one of ConversationID or RoomID is set. Provider and
// model are stamped only on character turns.
type Message struct {
	ID             string    `json:"message_id" gorm:"primaryKey"`
	ConversationID string    `json:"conversation_id,omitempty" gorm:"index"`
	RoomID         string    `json:"room_id,omitempty" gorm:"index"`
	Sender         string    `json:"sender" gorm:"not null"`
	SenderID       string    `json:"sender_id"`
	Content        string    `json:"content" gorm:"not null"`
	Timestamp      time.Time `json:"timestamp" gorm:"index"`
	AIProvider     string    `json:"ai_provider,omitempty"`
	AIModel        string    `json:"ai_model,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ChatRequest drives the chat orchestrator. Exactly one of ConversationID
// or RoomID must be present; PersonaID overrides the caller's default.
type ChatRequest struct {
	ConversationID string `json:"conversation_id"`
	RoomID         string `json:"room_id"`
	Message        string `json:"message" binding:"required"`
	AIProvider     string `json:"ai_provider"`
	AIModel        string `json:"ai_model"`
	PersonaID      string `json:"persona_id"`
}

// ChatResponse echoes both persisted turns plus the provider metadata used.
type ChatResponse struct {
	UserMessage *Message `json:"user_message"`
	AIResponse  *Message `json:"ai_response"`
	AIProvider  string   `json:"ai_provider"`
	AIModel     string   `json:"ai_model"`
	PersonaUsed string   `json:"persona_used,omitempty"`
}
