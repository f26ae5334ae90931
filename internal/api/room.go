package api

import (
	"net/http"

	"ai-character-chat/backend/internal/models"
	"ai-character-chat/backend/internal/service"
	apperrors "ai-character-chat/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	service  *service.RoomService
	messages *service.MessageService
}

func NewRoomHandler(service *service.RoomService, messages *service.MessageService) *RoomHandler {
	return &RoomHandler{service: service, messages: messages}
}

func (h *RoomHandler) CreateRoom(c *gin.Context) {
	user, ok := MustCurrentUser(c)
	if !ok {
		return
	}

	var req models.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidInputError("INVALID_BODY", err.Error()))
		return
	}

	room, err := h.service.CreateRoom(user.ID, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room_id": room.ID,
		"message": "Room created successfully",
	})
}

func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.service.ListRooms()
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

func (h *RoomHandler) GetRoom(c *gin.Context) {
	room, err := h.service.GetRoom(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// JoinRoom adds the caller to the participant list. The password field is
// optional for public rooms and bound leniently.
func (h *RoomHandler) JoinRoom(c *gin.Context) {
	user, ok := MustCurrentUser(c)
	if !ok {
		return
	}

	var req models.JoinRoomRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperrors.NewInvalidInputError("INVALID_BODY", err.Error()))
			return
		}
	}

	room, err := h.service.JoinRoom(user.ID, c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Joined room",
		"room":    room,
	})
}

func (h *RoomHandler) LeaveRoom(c *gin.Context) {
	user, ok := MustCurrentUser(c)
	if !ok {
		return
	}

	room, err := h.service.LeaveRoom(user.ID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Left room",
		"room":    room,
	})
}

// GetRoomMessages returns the shared transcript in timestamp order.
func (h *RoomHandler) GetRoomMessages(c *gin.Context) {
	msgs, err := h.messages.ListByRoom(c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}
