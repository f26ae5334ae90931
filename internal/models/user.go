package models

import (
	"time"

	"gorm.io/datatypes"
)

// User is the identity root. IDs are application-generated UUID strings;
// email uniqueness is enforced by the database index.
type User struct {
	ID           string            `json:"user_id" gorm:"primaryKey"`
	Username     string            `json:"username" gorm:"not null"`
	Email        string            `json:"email" gorm:"uniqueIndex;not null"`
	AuthProvider string            `json:"auth_provider"`
	Avatar       string            `json:"avatar,omitempty"`
	Preferences  datatypes.JSONMap `json:"preferences" gorm:"type:jsonb"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// Session maps an externally issued session token to a local user.
// The row ID is the token itself; expiry is checked at read time only.
type Session struct {
	ID           string    `json:"session_id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"index;not null"`
	SessionToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthCallbackRequest carries the session id handed back by the external
// identity provider after login.
type AuthCallbackRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}
