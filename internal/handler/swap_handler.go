package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/pkg/response"
)

type swapService interface {
	List(ctx context.Context) ([]models.SwapRequest, error)
	Create(ctx context.Context, req models.SwapRequestInput) (*models.SwapRequest, error)
	Approve(ctx context.Context, id string) (*models.SwapRequest, error)
	Reject(ctx context.Context, id string) (*models.SwapRequest, error)
	Delete(ctx context.Context, id string) (*models.SwapRequest, error)
}

// SwapHandler serves swap requests and their review.
type SwapHandler struct {
	service swapService
}

// NewSwapHandler constructs a swap handler.
func NewSwapHandler(svc swapService) *SwapHandler {
	return &SwapHandler{service: svc}
}

// List godoc
// @Summary List swap requests
// @Tags Swaps
// @Produce json
// @Success 200 {array} models.SwapRequest
// @Router /swaps [get]
func (h *SwapHandler) List(c *gin.Context) {
	swaps, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, swaps)
}

// Create godoc
// @Summary File a swap request
// @Description The status is always stored as pending.
// @Tags Swaps
// @Accept json
// @Produce json
// @Param payload body models.SwapRequestInput true "Swap"
// @Success 201 {object} models.SwapRequest
// @Failure 400 {object} response.MessageBody
// @Router /swaps [post]
func (h *SwapHandler) Create(c *gin.Context) {
	var req models.SwapRequestInput
	if !bindJSON(c, &req) {
		return
	}
	swap, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, swap)
}

// Approve godoc
// @Summary Approve a pending swap
// @Description Reassigns the matching schedule entry to toFaculty when one is given.
// @Tags Swaps
// @Produce json
// @Param id path string true "Swap ID"
// @Success 200 {object} models.SwapRequest
// @Failure 400 {object} response.MessageBody
// @Router /swaps/{id}/approve [put]
func (h *SwapHandler) Approve(c *gin.Context) {
	swap, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, swap)
}

// Reject godoc
// @Summary Reject a pending swap
// @Tags Swaps
// @Produce json
// @Param id path string true "Swap ID"
// @Success 200 {object} models.SwapRequest
// @Failure 400 {object} response.MessageBody
// @Router /swaps/{id}/reject [put]
func (h *SwapHandler) Reject(c *gin.Context) {
	swap, err := h.service.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, swap)
}

// Delete godoc
// @Summary Delete a swap request
// @Tags Swaps
// @Produce json
// @Param id path string true "Swap ID"
// @Success 200 {object} models.SwapRequest
// @Failure 400 {object} response.MessageBody
// @Router /swaps/{id} [delete]
func (h *SwapHandler) Delete(c *gin.Context) {
	swap, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, swap)
}
