package service

import (
	"errors"
	"time"

	"ai-character-chat/backend/internal/ai"
	"ai-character-chat/backend/internal/models"
	"ai-character-chat/backend/pkg/cache"
	apperrors "ai-character-chat/backend/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxCharacterPageSize = 100

// CharacterService handles character CRUD. Characters are immutable after
// creation, which makes them safe to cache in process.
type CharacterService struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewCharacterService creates a new character service. cache may be nil.
func NewCharacterService(db *gorm.DB, cache *cache.Cache) *CharacterService {
	return &CharacterService{db: db, cache: cache}
}

// CreateCharacter creates a character owned by createdBy (empty when the
// caller is anonymous).
func (s *CharacterService) CreateCharacter(req *models.CreateCharacterRequest, createdBy string) (*models.Character, error) {
	provider := req.AIProvider
	if provider == "" {
		provider = ai.ProviderOpenAI
	}
	model := req.AIModel
	if model == "" {
		model = ai.DefaultModel(provider)
	}

	now := time.Now().UTC()
	character := &models.Character{
		ID:            uuid.New().String(),
		Name:          req.Name,
		Description:   req.Description,
		Personality:   req.Personality,
		Avatar:        req.Avatar,
		AIProvider:    provider,
		AIModel:       model,
		SystemPrompt:  req.SystemPrompt,
		IsNSFW:        req.IsNSFW,
		IsMultiplayer: req.IsMultiplayer,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.db.Create(character).Error; err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set("character:"+character.ID, character)
	}

	return character, nil
}

// GetCharacter retrieves a character by id, consulting the cache first.
func (s *CharacterService) GetCharacter(id string) (*models.Character, error) {
	if s.cache != nil {
		if v, ok := s.cache.Get("character:" + id); ok {
			if character, ok := v.(*models.Character); ok {
				return character, nil
			}
		}
	}

	var character models.Character
	if err := s.db.First(&character, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("CHARACTER_NOT_FOUND", "Character not found")
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set("character:"+id, &character)
	}

	return &character, nil
}

// ListCharacters returns a page of characters. There is no total-count
// metadata; ordering is by creation time for a stable page walk.
func (s *CharacterService) ListCharacters(q models.ListCharactersQuery) ([]models.Character, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > maxCharacterPageSize {
		limit = maxCharacterPageSize
	}

	tx := s.db.Order("created_at").Offset(q.Skip).Limit(limit)
	if q.MultiplayerOnly {
		tx = tx.Where("is_multiplayer = ?", true)
	}

	var characters []models.Character
	if err := tx.Find(&characters).Error; err != nil {
		return nil, err
	}
	return characters, nil
}
