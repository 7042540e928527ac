package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/internal/service"
	"github.com/noah-isme/class-scheduler-api/pkg/response"
)

type scheduleService interface {
	List(ctx context.Context, filter models.ScheduleFilter) ([]models.Schedule, error)
	Replace(ctx context.Context, req models.ReplaceSchedulesRequest) ([]models.Schedule, error)
	Update(ctx context.Context, id string, req models.UpdateScheduleRequest) (*models.Schedule, error)
	Delete(ctx context.Context, id string) (*models.Schedule, error)
	DeleteAll(ctx context.Context) (int64, error)
	Export(ctx context.Context, format, grade string) (*service.ScheduleExport, error)
}

// ScheduleHandler serves the timetable endpoints.
type ScheduleHandler struct {
	service scheduleService
}

// NewScheduleHandler constructs a schedule handler.
func NewScheduleHandler(svc scheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// List godoc
// @Summary List schedule entries
// @Tags Schedules
// @Produce json
// @Param grade query string false "Grade filter"
// @Param faculty query string false "Faculty filter"
// @Success 200 {array} models.Schedule
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	filter := models.ScheduleFilter{
		Grade:   c.Query("grade"),
		Faculty: c.Query("faculty"),
	}
	schedules, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules)
}

// Replace godoc
// @Summary Replace the timetable of one grade
// @Description Deletes every entry of the grade and inserts the submitted list in one transaction.
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body models.ReplaceSchedulesRequest true "Grade timetable"
// @Success 201 {array} models.Schedule
// @Failure 400 {object} response.MessageBody
// @Router /schedules [post]
func (h *ScheduleHandler) Replace(c *gin.Context) {
	var req models.ReplaceSchedulesRequest
	if !bindJSON(c, &req) {
		return
	}
	schedules, err := h.service.Replace(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, schedules)
}

// Update godoc
// @Summary Update schedule entry
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param payload body models.UpdateScheduleRequest true "Fields to change"
// @Success 200 {object} models.Schedule
// @Failure 400 {object} response.MessageBody
// @Router /schedules/{id} [put]
func (h *ScheduleHandler) Update(c *gin.Context) {
	var req models.UpdateScheduleRequest
	if !bindJSON(c, &req) {
		return
	}
	schedule, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule)
}

// Delete godoc
// @Summary Delete schedule entry
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} models.Schedule
// @Failure 400 {object} response.MessageBody
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	schedule, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule)
}

// DeleteAll godoc
// @Summary Delete every schedule entry
// @Tags Schedules
// @Produce json
// @Success 200 {object} response.MessageBody
// @Router /schedules [delete]
func (h *ScheduleHandler) DeleteAll(c *gin.Context) {
	if _, err := h.service.DeleteAll(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "All schedules deleted")
}

// Export godoc
// @Summary Download the timetable
// @Tags Schedules
// @Produce text/csv
// @Produce application/pdf
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv, pdf or xlsx" default(csv)
// @Param grade query string false "Grade filter"
// @Success 200 {file} file
// @Failure 400 {object} response.MessageBody
// @Router /schedules/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	file, err := h.service.Export(c.Request.Context(), c.Query("format"), c.Query("grade"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}
