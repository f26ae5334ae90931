package api

import (
	"net/http"

	"ai-character-chat/backend/internal/models"
	"ai-character-chat/backend/internal/service"
	apperrors "ai-character-chat/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// PersonaHandler requires a resolved identity on every route.
type PersonaHandler struct {
	service *service.PersonaService
}

func NewPersonaHandler(service *service.PersonaService) *PersonaHandler {
	return &PersonaHandler{service: service}
}

func (h *PersonaHandler) CreatePersona(c *gin.Context) {
	user, ok := MustCurrentUser(c)
	if !ok {
		return
	}

	var req models.CreatePersonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("INVALID_BODY", err.Error()))
		return
	}

	persona, err := h.service.CreatePersona(user.ID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"persona_id": persona.ID,
		"message":    "Persona created successfully",
	})
}

func (h *PersonaHandler) ListPersonas(c *gin.Context) {
	user, ok := MustCurrentUser(c)
	if !ok {
		return
	}

	personas, err := h.service.ListPersonas(user.ID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"personas": personas})
}

func (h *PersonaHandler) GetPersona(c *gin.Context) {
	user, ok := MustCurrentUser(c)
	if !ok {
		return
	}

	persona, err := h.service.GetPersona(user.ID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, persona)
}

func (h *PersonaHandler) UpdatePersona(c *gin.Context) {
	user, ok := MustCurrentUser(c)
	if !ok {
		return
	}

	var req models.UpdatePersonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("INVALID_BODY", err.Error()))
		return
	}

	persona, err := h.service.UpdatePersona(user.ID, c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, persona)
}

func (h *PersonaHandler) DeletePersona(c *gin.Context) {
	user, ok := MustCurrentUser(c)
	if !ok {
		return
	}

	if err := h.service.DeletePersona(user.ID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Persona deleted"})
}

func (h *PersonaHandler) GetDefaultPersona(c *gin.Context) {
	user, ok := MustCurrentUser(c)
	if !ok {
		return
	}

	persona, err := h.service.GetDefaultPersona(user.ID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, persona)
}

func (h *PersonaHandler) SetDefaultPersona(c *gin.Context) {
	user, ok := MustCurrentUser(c)
	if !ok {
		return
	}

	persona, err := h.service.SetDefaultPersona(user.ID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, persona)
}
