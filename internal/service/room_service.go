package service

import (
	"errors"
	"time"

	"ai-character-chat/backend/internal/models"
	apperrors "ai-character-chat/backend/pkg/errors"
	"ai-character-chat/backend/pkg/metrics"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultRoomCapacity = 10

// RoomService handles multiplayer rooms. Membership mutations lock the
// room row so concurrent joins observe a consistent participant list and
// the capacity bound holds.
type RoomService struct {
	db         *gorm.DB
	characters *CharacterService
}

// NewRoomService creates a new room service.
func NewRoomService(db *gorm.DB, characters *CharacterService) *RoomService {
	return &RoomService{db: db, characters: characters}
}

// CreateRoom creates a room hosted by hostID. The host is seeded as the
// first participant; private rooms require a password, stored hashed.
func (s *RoomService) CreateRoom(hostID string, req *models.CreateRoomRequest) (*models.Room, error) {
	character, err := s.characters.GetCharacter(req.CharacterID)
	if err != nil {
		return nil, err
	}
	if !character.IsMultiplayer {
		return nil, apperrors.NewInvalidInputError("NOT_MULTIPLAYER", "Character does not support multiplayer rooms")
	}

	if req.IsPrivate && req.Password == "" {
		return nil, apperrors.NewInvalidInputError("PASSWORD_REQUIRED", "Private rooms require a password")
	}

	capacity := req.MaxParticipants
	if capacity <= 0 {
		capacity = defaultRoomCapacity
	}

	var passwordHash string
	if req.IsPrivate {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		passwordHash = string(hash)
	}

	now := time.Now().UTC()
	room := &models.Room{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Description:     req.Description,
		HostID:          hostID,
		CharacterID:     character.ID,
		MaxParticipants: capacity,
		Participants:    []string{hostID},
		IsActive:        true,
		IsPrivate:       req.IsPrivate,
		PasswordHash:    passwordHash,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.db.Create(room).Error; err != nil {
		return nil, err
	}
	return room, nil
}

// ListRooms returns active rooms, newest first.
func (s *RoomService) ListRooms() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.db.Where("is_active = ?", true).Order("created_at DESC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// GetRoom retrieves one room by id.
func (s *RoomService) GetRoom(roomID string) (*models.Room, error) {
	var room models.Room
	if err := s.db.First(&room, "id = ?", roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("ROOM_NOT_FOUND", "Room not found")
		}
		return nil, err
	}
	return &room, nil
}

// JoinRoom adds the user to the room's participant list. The join is
// idempotent; a member rejoining succeeds without re-checking capacity.
// Password and capacity checks run under a row lock.
func (s *RoomService) JoinRoom(userID, roomID string, req *models.JoinRoomRequest) (*models.Room, error) {
	var room models.Room

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&room, "id = ?", roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				metrics.RoomJoins.WithLabelValues("not_found").Inc()
				return apperrors.NewNotFoundError("ROOM_NOT_FOUND", "Room not found")
			}
			return err
		}

		if !room.IsActive {
			metrics.RoomJoins.WithLabelValues("inactive").Inc()
			return apperrors.NewForbiddenError("ROOM_INACTIVE", "Room is no longer active")
		}

		if room.HasParticipant(userID) {
			metrics.RoomJoins.WithLabelValues("already_member").Inc()
			return nil
		}

		if room.IsPrivate {
			if err := bcrypt.CompareHashAndPassword([]byte(room.PasswordHash), []byte(req.Password)); err != nil {
				metrics.RoomJoins.WithLabelValues("bad_password").Inc()
				return apperrors.NewForbiddenError("INVALID_PASSWORD", "Invalid room password")
			}
		}

		if len(room.Participants) >= room.MaxParticipants {
			metrics.RoomJoins.WithLabelValues("full").Inc()
			return apperrors.NewForbiddenError("ROOM_FULL", "Room is full")
		}

		room.Participants = append(room.Participants, userID)
		room.UpdatedAt = time.Now().UTC()
		if err := tx.Save(&room).Error; err != nil {
			return err
		}

		metrics.RoomJoins.WithLabelValues("ok").Inc()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// LeaveRoom removes the user from the participant list. Leaving a room
// the user is not in succeeds without change.
func (s *RoomService) LeaveRoom(userID, roomID string) (*models.Room, error) {
	var room models.Room

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&room, "id = ?", roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFoundError("ROOM_NOT_FOUND", "Room not found")
			}
			return err
		}

		if !room.HasParticipant(userID) {
			return nil
		}

		remaining := room.Participants[:0]
		for _, p := range room.Participants {
			if p != userID {
				remaining = append(remaining, p)
			}
		}
		room.Participants = remaining

		// A room with no participants is closed rather than deleted so
		// its transcript stays addressable.
		if len(room.Participants) == 0 {
			room.IsActive = false
		}

		room.UpdatedAt = time.Now().UTC()
		return tx.Save(&room).Error
	})
	if err != nil {
		return nil, err
	}
	return &room, nil
}
