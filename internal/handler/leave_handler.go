package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/pkg/response"
)

type leaveService interface {
	List(ctx context.Context) ([]models.Leave, error)
	Create(ctx context.Context, req models.LeaveRequest) (*models.Leave, error)
	Update(ctx context.Context, id string, req models.UpdateLeaveRequest) (*models.Leave, error)
	Delete(ctx context.Context, id string) (*models.Leave, error)
}

// LeaveHandler serves /leaves.
type LeaveHandler struct {
	service leaveService
}

// NewLeaveHandler constructs a leave handler.
func NewLeaveHandler(svc leaveService) *LeaveHandler {
	return &LeaveHandler{service: svc}
}

// List godoc
// @Summary List leaves
// @Tags Leaves
// @Produce json
// @Success 200 {array} models.Leave
// @Router /leaves [get]
func (h *LeaveHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Create godoc
// @Summary Create leave
// @Tags Leaves
// @Accept json
// @Produce json
// @Param payload body models.LeaveRequest true "Leave"
// @Success 201 {object} models.Leave
// @Failure 400 {object} response.MessageBody
// @Router /leaves [post]
func (h *LeaveHandler) Create(c *gin.Context) {
	var req models.LeaveRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update leave
// @Tags Leaves
// @Accept json
// @Produce json
// @Param id path string true "Leave ID"
// @Param payload body models.UpdateLeaveRequest true "Fields to change"
// @Success 200 {object} models.Leave
// @Failure 400 {object} response.MessageBody
// @Router /leaves/{id} [put]
func (h *LeaveHandler) Update(c *gin.Context) {
	var req models.UpdateLeaveRequest
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}

// Delete godoc
// @Summary Delete leave
// @Tags Leaves
// @Produce json
// @Param id path string true "Leave ID"
// @Success 200 {object} models.Leave
// @Failure 400 {object} response.MessageBody
// @Router /leaves/{id} [delete]
func (h *LeaveHandler) Delete(c *gin.Context) {
	item, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}
