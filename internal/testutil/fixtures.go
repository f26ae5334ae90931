package testutil

import (
	"fmt"
	"testing"
	"time"

	"ai-character-chat/backend/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("test_%s@example.com", suffix),
	}
}

// WithUsername sets the username
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// Build creates the user in the database
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	now := time.Now().UTC()
	user := &models.User{
		ID:        uuid.New().String(),
		Username:  b.username,
		Email:     b.email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// CharacterBuilder creates test characters with a builder pattern
type CharacterBuilder struct {
	name          string
	description   string
	personality   string
	systemPrompt  string
	provider      string
	model         string
	isNSFW        bool
	isMultiplayer bool
}

// NewCharacterBuilder creates a new CharacterBuilder with default values
func NewCharacterBuilder() *CharacterBuilder {
	return &CharacterBuilder{
		name:        fmt.Sprintf("character_%s", uuid.New().String()[:8]),
		description: "A test character",
		personality: "friendly and curious",
		provider:    "openai",
		model:       "gpt-4.1",
	}
}

// WithName sets the character name
func (b *CharacterBuilder) WithName(name string) *CharacterBuilder {
	b.name = name
	return b
}

// WithDescription sets the description
func (b *CharacterBuilder) WithDescription(description string) *CharacterBuilder {
	b.description = description
	return b
}

// WithPersonality sets the personality
func (b *CharacterBuilder) WithPersonality(personality string) *CharacterBuilder {
	b.personality = personality
	return b
}

// WithSystemPrompt sets the system prompt fragment
func (b *CharacterBuilder) WithSystemPrompt(prompt string) *CharacterBuilder {
	b.systemPrompt = prompt
	return b
}

// WithProvider sets the AI provider and model
func (b *CharacterBuilder) WithProvider(provider, model string) *CharacterBuilder {
	b.provider = provider
	b.model = model
	return b
}

// NSFW marks the character as NSFW
func (b *CharacterBuilder) NSFW() *CharacterBuilder {
	b.isNSFW = true
	return b
}

// Multiplayer marks the character as multiplayer-capable
func (b *CharacterBuilder) Multiplayer() *CharacterBuilder {
	b.isMultiplayer = true
	return b
}

// Build creates the character in the database
func (b *CharacterBuilder) Build(t *testing.T, db *gorm.DB) *models.Character {
	t.Helper()

	now := time.Now().UTC()
	character := &models.Character{
		ID:            uuid.New().String(),
		Name:          b.name,
		Description:   b.description,
		Personality:   b.personality,
		SystemPrompt:  b.systemPrompt,
		AIProvider:    b.provider,
		AIModel:       b.model,
		IsNSFW:        b.isNSFW,
		IsMultiplayer: b.isMultiplayer,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := db.Create(character).Error; err != nil {
		t.Fatalf("failed to create character: %v", err)
	}
	return character
}

// RoomBuilder creates test rooms with a builder pattern
type RoomBuilder struct {
	name        string
	hostID      string
	characterID string
	capacity    int
	password    string
}

// NewRoomBuilder creates a new RoomBuilder for the given host and character
func NewRoomBuilder(hostID, characterID string) *RoomBuilder {
	return &RoomBuilder{
		name:        fmt.Sprintf("room_%s", uuid.New().String()[:8]),
		hostID:      hostID,
		characterID: characterID,
		capacity:    10,
	}
}

// WithCapacity sets max participants
func (b *RoomBuilder) WithCapacity(capacity int) *RoomBuilder {
	b.capacity = capacity
	return b
}

// WithPassword makes the room private with the given password
func (b *RoomBuilder) WithPassword(password string) *RoomBuilder {
	b.password = password
	return b
}

// Build creates the room in the database with the host as first participant
func (b *RoomBuilder) Build(t *testing.T, db *gorm.DB) *models.Room {
	t.Helper()

	var passwordHash string
	if b.password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}
		passwordHash = string(hash)
	}

	now := time.Now().UTC()
	room := &models.Room{
		ID:              uuid.New().String(),
		Name:            b.name,
		HostID:          b.hostID,
		CharacterID:     b.characterID,
		MaxParticipants: b.capacity,
		Participants:    []string{b.hostID},
		IsActive:        true,
		IsPrivate:       b.password != "",
		PasswordHash:    passwordHash,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := db.Create(room).Error; err != nil {
		t.Fatalf("failed to create room: %v", err)
	}
	return room
}
