package models

import "time"

// Interaction modes. Unrecognized modes degrade silently in the prompt
// assembler rather than failing the request.
const (
	ModeCasual = "casual"
	ModeRP     = "rp"
	ModeRPG    = "rpg"
)

// Conversation is a private, ordered message thread between one user and
// one character. RoomID is set when the thread belongs to a multiplayer
// room instead.
type Conversation struct {
	ID          string    `json:"conversation_id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"index;not null"`
	CharacterID string    `json:"character_id" gorm:"index;not null"`
	RoomID      string    `json:"room_id,omitempty" gorm:"index"`
	Title       string    `json:"title"`
	Mode        string    `json:"mode" gorm:"default:casual"`
	IsNSFW      bool      `json:"is_nsfw" gorm:"default:false"`
	AIProvider  string    `json:"ai_provider" gorm:"default:openai"`
	AIModel     string    `json:"ai_model"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateConversationRequest struct {
	CharacterID string `json:"character_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Mode        string `json:"mode"`
	IsNSFW      bool   `json:"is_nsfw"`
	AIProvider  string `json:"ai_provider"`
	AIModel     string `json:"ai_model"`
}
