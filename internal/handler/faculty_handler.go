package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/pkg/response"
)

type facultyService interface {
	List(ctx context.Context) ([]models.Faculty, error)
	Create(ctx context.Context, req models.FacultyRequest) (*models.Faculty, error)
	Update(ctx context.Context, id string, req models.UpdateFacultyRequest) (*models.Faculty, error)
	Delete(ctx context.Context, id string) (*models.Faculty, error)
}

// FacultyHandler serves /faculty.
type FacultyHandler struct {
	service facultyService
}

// NewFacultyHandler constructs a faculty handler.
func NewFacultyHandler(svc facultyService) *FacultyHandler {
	return &FacultyHandler{service: svc}
}

// List godoc
// @Summary List faculty
// @Tags Faculty
// @Produce json
// @Success 200 {array} models.Faculty
// @Router /faculty [get]
func (h *FacultyHandler) List(c *gin.Context) {
	faculty, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, faculty)
}

// Create godoc
// @Summary Create faculty
// @Tags Faculty
// @Accept json
// @Produce json
// @Param payload body models.FacultyRequest true "Faculty"
// @Success 201 {object} models.Faculty
// @Failure 400 {object} response.MessageBody
// @Router /faculty [post]
func (h *FacultyHandler) Create(c *gin.Context) {
	var req models.FacultyRequest
	if !bindJSON(c, &req) {
		return
	}
	f, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, f)
}

// Update godoc
// @Summary Update faculty
// @Tags Faculty
// @Accept json
// @Produce json
// @Param id path string true "Faculty ID"
// @Param payload body models.UpdateFacultyRequest true "Fields to change"
// @Success 200 {object} models.Faculty
// @Failure 400 {object} response.MessageBody
// @Router /faculty/{id} [put]
func (h *FacultyHandler) Update(c *gin.Context) {
	var req models.UpdateFacultyRequest
	if !bindJSON(c, &req) {
		return
	}
	f, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, f)
}

// Delete godoc
// @Summary Delete faculty
// @Tags Faculty
// @Produce json
// @Param id path string true "Faculty ID"
// @Success 200 {object} models.Faculty
// @Failure 400 {object} response.MessageBody
// @Router /faculty/{id} [delete]
func (h *FacultyHandler) Delete(c *gin.Context) {
	f, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, f)
}
