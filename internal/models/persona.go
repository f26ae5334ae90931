package models

import (
	"time"

	"gorm.io/datatypes"
)

// Persona is a user's own self-presentation context, optionally injected
// into the assembled prompt. At most one persona per user is flagged
// default at any externally observable instant.
type Persona struct {
	ID          string            `json:"persona_id" gorm:"primaryKey"`
	UserID      string            `json:"user_id" gorm:"index;not null"`
	Name        string            `json:"name" gorm:"not null"`
	Description string            `json:"description"`
	Traits      string            `json:"traits"`
	Avatar      string            `json:"avatar,omitempty"`
	Preferences datatypes.JSONMap `json:"preferences" gorm:"type:jsonb"`
	IsDefault   bool              `json:"is_default" gorm:"default:false"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type CreatePersonaRequest struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	Traits      string         `json:"traits"`
	Avatar      string         `json:"avatar"`
	Preferences map[string]any `json:"preferences"`
	IsDefault   bool           `json:"is_default"`
}

// UpdatePersonaRequest uses pointers so absent fields are left untouched.
type UpdatePersonaRequest struct {
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Traits      *string        `json:"traits"`
	Avatar      *string        `json:"avatar"`
	Preferences map[string]any `json:"preferences"`
	IsDefault   *bool          `json:"is_default"`
}
