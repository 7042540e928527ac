package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/class-scheduler-api/pkg/errors"
	"github.com/noah-isme/class-scheduler-api/pkg/response"
)

type auditReader interface {
	ListRecent(ctx context.Context, limit int) ([]models.AuditLog, error)
}

// AuditHandler exposes the audit trail.
type AuditHandler struct {
	service auditReader
}

// NewAuditHandler constructs an audit handler.
func NewAuditHandler(svc auditReader) *AuditHandler {
	return &AuditHandler{service: svc}
}

// List godoc
// @Summary Recent audit entries
// @Tags Audit
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum entries (1-200)" default(50)
// @Success 200 {array} models.AuditLog
// @Failure 400 {object} response.MessageBody
// @Router /audit-logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}
	logs, err := h.service.ListRecent(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, logs)
}
