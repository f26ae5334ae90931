package models

import (
	"time"

	"gorm.io/datatypes"
)

// Room is a shared, capacity-bounded multiplayer context binding multiple
// users to one character. The host is always an initial participant and
// the participant count never exceeds MaxParticipants.
type Room struct {
	ID              string                     `json:"room_id" gorm:"primaryKey"`
	Name            string                     `json:"name" gorm:"not null"`
	Description     string                     `json:"description"`
	HostID          string                     `json:"host_id" gorm:"index;not null"`
	CharacterID     string                     `json:"character_id" gorm:"index;not null"`
	MaxParticipants int                        `json:"max_participants" gorm:"default:10"`
	Participants    datatypes.JSONSlice[string] `json:"participants" gorm:"type:jsonb"`
	IsActive        bool                       `json:"is_active" gorm:"default:true"`
	IsPrivate       bool                       `json:"is_private" gorm:"default:false"`
	PasswordHash    string                     `json:"-"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}

// HasParticipant reports whether userID is already a member.
func (r *Room) HasParticipant(userID string) bool {
	for _, p := range r.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

type CreateRoomRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	CharacterID     string `json:"character_id" binding:"required"`
	MaxParticipants int    `json:"max_participants"`
	IsPrivate       bool   `json:"is_private"`
	Password        string `json:"password"`
}

type JoinRoomRequest struct {
	Password string `json:"password"`
}
