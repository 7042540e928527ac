package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/pkg/response"
)

type subjectService interface {
	List(ctx context.Context) ([]models.Subject, error)
	Create(ctx context.Context, req models.SubjectRequest) (*models.Subject, error)
	Update(ctx context.Context, id string, req models.UpdateSubjectRequest) (*models.Subject, error)
	Delete(ctx context.Context, id string) (*models.Subject, error)
}

// SubjectHandler serves /subjects.
type SubjectHandler struct {
	service subjectService
}

// NewSubjectHandler constructs a subject handler.
func NewSubjectHandler(svc subjectService) *SubjectHandler {
	return &SubjectHandler{service: svc}
}

// List godoc
// @Summary List subjects
// @Tags Subjects
// @Produce json
// @Success 200 {array} models.Subject
// @Router /subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Create godoc
// @Summary Create subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param payload body models.SubjectRequest true "Subject"
// @Success 201 {object} models.Subject
// @Failure 400 {object} response.MessageBody
// @Router /subjects [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	var req models.SubjectRequest
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
// @Summary Update subject
// @Tags Subjects
// @Accept json
// @Produce json
// @Param id path string true "Subject ID"
// @Param payload body models.UpdateSubjectRequest true "Fields to change"
// @Success 200 {object} models.Subject
// @Failure 400 {object} response.MessageBody
// @Router /subjects/{id} [put]
func (h *SubjectHandler) Update(c *gin.Context) {
	var req models.UpdateSubjectRequest
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
// @Summary Delete subject
// @Tags Subjects
// @Produce json
// @Param id path string true "Subject ID"
// @Success 200 {object} models.Subject
// @Failure 400 {object} response.MessageBody
// @Router /subjects/{id} [delete]
func (h *SubjectHandler) Delete(c *gin.Context) {
	item, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item)
}
