package handler

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/class-scheduler-api/pkg/errors"
	"github.com/noah-isme/class-scheduler-api/pkg/response"
)

// bindJSON decodes the request body into dest, answering 400 on malformed input.
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload"))
		return false
	}
	return true
}
