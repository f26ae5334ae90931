package service

import (
	"errors"
	"time"

	"ai-character-chat/backend/internal/models"
	apperrors "ai-character-chat/backend/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PersonaService maintains the default-selection invariant: at most one
// persona per user is flagged default at any externally observable
// instant. Every clear-then-set sequence runs inside one transaction.
type PersonaService struct {
	db *gorm.DB
}

// NewPersonaService creates a new persona service
func NewPersonaService(db *gorm.DB) *PersonaService {
	return &PersonaService{db: db}
}

// CreatePersona creates a persona. A first persona becomes default
// regardless of the request flag.
func (s *PersonaService) CreatePersona(userID string, req *models.CreatePersonaRequest) (*models.Persona, error) {
	now := time.Now().UTC()
	persona := &models.Persona{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Traits:      req.Traits,
		Avatar:      req.Avatar,
		Preferences: datatypes.JSONMap(req.Preferences),
		IsDefault:   req.IsDefault,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Persona{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			persona.IsDefault = true
		}

		if persona.IsDefault {
			if err := tx.Model(&models.Persona{}).
				Where("user_id = ? AND is_default", userID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(persona).Error
	})
	if err != nil {
		return nil, err
	}
	return persona, nil
}

// ListPersonas returns all personas of a user in creation order.
func (s *PersonaService) ListPersonas(userID string) ([]models.Persona, error) {
	var personas []models.Persona
	if err := s.db.Where("user_id = ?", userID).Order("created_at").Find(&personas).Error; err != nil {
		return nil, err
	}
	return personas, nil
}

// GetPersona retrieves one persona, scoped to its owner.
func (s *PersonaService) GetPersona(userID, personaID string) (*models.Persona, error) {
	var persona models.Persona
	if err := s.db.First(&persona, "id = ? AND user_id = ?", personaID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("PERSONA_NOT_FOUND", "Persona not found")
		}
		return nil, err
	}
	return &persona, nil
}

// UpdatePersona applies the non-nil fields of req. Setting is_default
// runs the clear-then-set sequence scoped to exclude the target.
func (s *PersonaService) UpdatePersona(userID, personaID string, req *models.UpdatePersonaRequest) (*models.Persona, error) {
	var persona models.Persona

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&persona, "id = ? AND user_id = ?", personaID, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFoundError("PERSONA_NOT_FOUND", "Persona not found")
			}
			return err
		}

		if req.Name != nil {
			persona.Name = *req.Name
		}
		if req.Description != nil {
			persona.Description = *req.Description
		}
		if req.Traits != nil {
			persona.Traits = *req.Traits
		}
		if req.Avatar != nil {
			persona.Avatar = *req.Avatar
		}
		if req.Preferences != nil {
			persona.Preferences = datatypes.JSONMap(req.Preferences)
		}
		if req.IsDefault != nil && *req.IsDefault && !persona.IsDefault {
			if err := tx.Model(&models.Persona{}).
				Where("user_id = ? AND id <> ? AND is_default", userID, personaID).
				Update("is_default", false).Error; err != nil {
				return err
			}
			persona.IsDefault = true
		}
		persona.UpdatedAt = time.Now().UTC()

		return tx.Save(&persona).Error
	})
	if err != nil {
		return nil, err
	}
	return &persona, nil
}

// DeletePersona removes a persona. The last persona cannot be deleted;
// deleting the default promotes the oldest remaining one in the same
// transaction.
func (s *PersonaService) DeletePersona(userID, personaID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var persona models.Persona
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&persona, "id = ? AND user_id = ?", personaID, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFoundError("PERSONA_NOT_FOUND", "Persona not found")
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.Persona{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count <= 1 {
			return apperrors.NewInvalidInputError("LAST_PERSONA", "Cannot delete your only persona")
		}

		if err := tx.Delete(&persona).Error; err != nil {
			return err
		}

		if persona.IsDefault {
			var next models.Persona
			if err := tx.Where("user_id = ?", userID).Order("created_at").First(&next).Error; err != nil {
				return err
			}
			return tx.Model(&next).Update("is_default", true).Error
		}
		return nil
	})
}

// GetDefaultPersona returns the persona flagged default. Legacy data with
// no flagged row falls back to the user's first persona without writing
// the promotion back; the read path stays read-only.
func (s *PersonaService) GetDefaultPersona(userID string) (*models.Persona, error) {
	var persona models.Persona
	err := s.db.First(&persona, "user_id = ? AND is_default", userID).Error
	if err == nil {
		return &persona, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.db.Where("user_id = ?", userID).Order("created_at").First(&persona).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("PERSONA_NOT_FOUND", "No personas found")
		}
		return nil, err
	}
	return &persona, nil
}

// SetDefaultPersona makes the target the single default persona.
func (s *PersonaService) SetDefaultPersona(userID, personaID string) (*models.Persona, error) {
	var persona models.Persona

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&persona, "id = ? AND user_id = ?", personaID, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFoundError("PERSONA_NOT_FOUND", "Persona not found")
			}
			return err
		}

		if err := tx.Model(&models.Persona{}).
			Where("user_id = ? AND id <> ? AND is_default", userID, personaID).
			Update("is_default", false).Error; err != nil {
			return err
		}

		persona.IsDefault = true
		persona.UpdatedAt = time.Now().UTC()
		return tx.Save(&persona).Error
	})
	if err != nil {
		return nil, err
	}
	return &persona, nil
}
