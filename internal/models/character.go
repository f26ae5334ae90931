package models

import "time"

// Character is an AI persona template users converse with. Characters are
// immutable after creation; there is no update endpoint.
type Character struct {
	ID            string    `json:"character_id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Description   string    `json:"description" gorm:"not null"`
	Personality   string    `json:"personality" gorm:"not null"`
	Avatar        string    `json:"avatar,omitempty"`
	AIProvider    string    `json:"ai_provider" gorm:"default:openai"`
	AIModel       string    `json:"ai_model"`
	SystemPrompt  string    `json:"system_prompt"`
	IsNSFW        bool      `json:"is_nsfw" gorm:"default:false"`
	IsMultiplayer bool      `json:"is_multiplayer" gorm:"default:false"`
	CreatedBy     string    `json:"created_by" gorm:"index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateCharacterRequest struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description" binding:"required"`
	Personality   string `json:"personality" binding:"required"`
	Avatar        string `json:"avatar"`
	AIProvider    string `json:"ai_provider"`
	AIModel       string `json:"ai_model"`
	SystemPrompt  string `json:"system_prompt"`
	IsNSFW        bool   `json:"is_nsfw"`
	IsMultiplayer bool   `json:"is_multiplayer"`
}

// ListCharactersQuery is the pagination filter for character listings.
// Limit is capped by the handler; there is no total-count metadata.
type ListCharactersQuery struct {
	Skip            int  `form:"skip"`
	Limit           int  `form:"limit"`
	MultiplayerOnly bool `form:"multiplayer_only"`
}
