package service

import (
	"errors"
	"strings"
	"time"

	"ai-character-chat/backend/internal/models"
	apperrors "ai-character-chat/backend/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService handles user CRUD. Email uniqueness is enforced by the
// database index; the insert conflict is translated here rather than
// checked first, so concurrent creates cannot both succeed.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new user service
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// CreateUser creates a new user with an application-generated id.
func (s *UserService) CreateUser(username, email string) (*models.User, error) {
	if username == "" || email == "" {
		return nil, apperrors.NewInvalidInputError("MISSING_FIELDS", "username and email are required")
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewConflictError("USER_EXISTS", "User already exists")
		}
		return nil, err
	}

	return user, nil
}

// GetUser retrieves a user by id.
func (s *UserService) GetUser(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("USER_NOT_FOUND", "User not found")
		}
		return nil, err
	}
	return &user, nil
}

// UpsertByEmail returns the user with the given email, creating one when
// absent. Used by the auth callback after external verification.
func (s *UserService) UpsertByEmail(email, username, avatar, authProvider string) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "email = ?", email).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	user = models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		Avatar:       avatar,
		AuthProvider: authProvider,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			// Lost the race to a concurrent callback; read the winner.
			if err := s.db.First(&user, "email = ?", email).Error; err != nil {
				return nil, err
			}
			return &user, nil
		}
		return nil, err
	}
	return &user, nil
}

// isUniqueViolation matches both gorm's translated error and the raw
// postgres duplicate-key text.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "UNIQUE constraint")
}
