package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/pkg/response"
)

type feedbackService interface {
	List(ctx context.Context) ([]models.Feedback, error)
	Create(ctx context.Context, req models.FeedbackRequest) (*models.Feedback, error)
	Update(ctx context.Context, id string, req models.UpdateFeedbackRequest) (*models.Feedback, error)
	Delete(ctx context.Context, id string) (*models.Feedback, error)
}

// FeedbackHandler serves /feedback.
type FeedbackHandler struct {
	service feedbackService
}

// NewFeedbackHandler constructs a feedback handler.
func NewFeedbackHandler(svc feedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: svc}
}

// List godoc
// @Summary List feedback
// @Tags Feedback
// @Produce json
// @Success 200 {array} models.Feedback
// @Router /feedback [get]
func (h *FeedbackHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Create godoc
// @Summary Create feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Param payload body models.FeedbackRequest true "Feedback"
// @Success 201 {object} models.Feedback
// @Failure 400 {object} response.MessageBody
// @Router /feedback [post]
func (h *FeedbackHandler) Create(c *gin.Context) {
	var req models.FeedbackRequest
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
// @Summary Update feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Param id path string true "Feedback ID"
// @Param payload body models.UpdateFeedbackRequest true "Fields to change"
// @Success 200 {object} models.Feedback
// @Failure 400 {object} response.MessageBody
// @Router /feedback/{id} [put]
func (h *FeedbackHandler) Update(c *gin.Context) {
	var req models.UpdateFeedbackRequest
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
// @Summary Delete feedback
// @Tags Feedback
// @Produce json
// @Param id path string true "Feedback ID"
// @Success 200 {object} models.Feedback
// @Failure 400 {object} response.MessageBody
// @Router /feedback/{id} [delete]
func (h *FeedbackHandler) Delete(c *gin.Context) {
	item, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}
