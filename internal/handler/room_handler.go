package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/pkg/response"
)

type roomService interface {
	List(ctx context.Context) ([]models.Room, error)
	Create(ctx context.Context, req models.RoomRequest) (*models.Room, error)
	Update(ctx context.Context, id string, req models.UpdateRoomRequest) (*models.Room, error)
	Delete(ctx context.Context, id string) (*models.Room, error)
}

// RoomHandler serves /classrooms and /labs; one instance per collection.
type RoomHandler struct {
	service roomService
}

// NewRoomHandler constructs a room handler.
func NewRoomHandler(svc roomService) *RoomHandler {
	return &RoomHandler{service: svc}
}

// List godoc
// @Summary List classrooms or labs
// @Tags Rooms
// @Produce json
// @Success 200 {array} models.Room
// @Router /classrooms [get]
// @Router /labs [get]
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms)
}

// Create godoc
// @Summary Create classroom or lab
// @Tags Rooms
// @Accept json
// @Produce json
// @Param payload body models.RoomRequest true "Room"
// @Success 201 {object} models.Room
// @Failure 400 {object} response.MessageBody
// @Router /classrooms [post]
// @Router /labs [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req models.RoomRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

// Update godoc
// @Summary Update classroom or lab
// @Tags Rooms
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param payload body models.UpdateRoomRequest true "Fields to change"
// @Success 200 {object} models.Room
// @Failure 400 {object} response.MessageBody
// @Router /classrooms/{id} [put]
// @Router /labs/{id} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	var req models.UpdateRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	room, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room)
}

// Delete godoc
// @Summary Delete classroom or lab
// @Tags Rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} models.Room
// @Failure 400 {object} response.MessageBody
// @Router /classrooms/{id} [delete]
// @Router /labs/{id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
	room, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room)
}
