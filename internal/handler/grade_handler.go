package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/pkg/response"
)

type gradeService interface {
	List(ctx context.Context) ([]models.Grade, error)
	Create(ctx context.Context, req models.GradeRequest) (*models.Grade, error)
	Update(ctx context.Context, id string, req models.UpdateGradeRequest) (*models.Grade, error)
	Delete(ctx context.Context, id string) (*models.Grade, error)
}

// GradeHandler serves /grades.
type GradeHandler struct {
	service gradeService
}

// NewGradeHandler constructs a grade handler.
func NewGradeHandler(svc gradeService) *GradeHandler {
	return &GradeHandler{service: svc}
}

// List godoc
// @Summary List grades
// @Tags Grades
// @Produce json
// @Success 200 {array} models.Grade
// @Router /grades [get]
func (h *GradeHandler) List(c *gin.Context) {
	grades, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grades)
}

// Create godoc
// @Summary Create grade
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body models.GradeRequest true "Grade"
// @Success 201 {object} models.Grade
// @Failure 400 {object} response.MessageBody
// @Router /grades [post]
func (h *GradeHandler) Create(c *gin.Context) {
	var req models.GradeRequest
	if !bindJSON(c, &req) {
		return
	}
	grade, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, grade)
}

// Update godoc
// @Summary Update grade
// @Tags Grades
// @Accept json
// @Produce json
// @Param id path string true "Grade ID"
// @Param payload body models.UpdateGradeRequest true "Fields to change"
// @Success 200 {object} models.Grade
// @Failure 400 {object} response.MessageBody
// @Router /grades/{id} [put]
func (h *GradeHandler) Update(c *gin.Context) {
	var req models.UpdateGradeRequest
	if !bindJSON(c, &req) {
		return
	}
	grade, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grade)
}

// Delete godoc
// @Summary Delete grade
// @Tags Grades
// @Produce json
// @Param id path string true "Grade ID"
// @Success 200 {object} models.Grade
// @Failure 400 {object} response.MessageBody
// @Router /grades/{id} [delete]
func (h *GradeHandler) Delete(c *gin.Context) {
	grade, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grade)
}
