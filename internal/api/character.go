package api

import (
	"net/http"

	"ai-character-chat/backend/internal/models"
	"ai-character-chat/backend/internal/service"
	apperrors "ai-character-chat/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

type CharacterHandler struct {
	service *service.CharacterService
}

func NewCharacterHandler(service *service.CharacterService) *CharacterHandler {
	return &CharacterHandler{service: service}
}

// CreateCharacter creates a character. Identity is optional; a resolved
// session stamps the creator.
func (h *CharacterHandler) CreateCharacter(c *gin.Context) {
	var req models.CreateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("INVALID_BODY", err.Error()))
		return
	}

	var createdBy string
	if user := CurrentUser(c); user != nil {
		createdBy = user.ID
	}

	character, err := h.service.CreateCharacter(&req, createdBy)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"character_id": character.ID,
		"message":      "Character created successfully",
	})
}

func (h *CharacterHandler) GetCharacter(c *gin.Context) {
	character, err := h.service.GetCharacter(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *CharacterHandler) ListCharacters(c *gin.Context) {
	var q models.ListCharactersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.Error(apperrors.NewInvalidInputError("INVALID_QUERY", err.Error()))
		return
	}

	characters, err := h.service.ListCharacters(q)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"characters": characters})
}
