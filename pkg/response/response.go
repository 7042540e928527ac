package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/class-scheduler-api/pkg/errors"
)

// MessageBody is the body of acknowledgements and every error response.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON sends the payload as-is. Collections are plain arrays and documents
// plain objects, there is no envelope.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Message responds with a {message} acknowledgement.
func Message(c *gin.Context, status int, message string) {
	JSON(c, status, MessageBody{Message: message})
}

// Error converts err to its HTTP status and a {message} body. The error is
// also attached to the gin context so reporting middleware can see it.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	_ = c.Error(appErr)
	message := appErr.Message
	if appErr.Status >= http.StatusInternalServerError {
		message = appErrors.ErrInternal.Message
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, MessageBody{Message: message})
}

// Attachment streams a generated file download.
func Attachment(c *gin.Context, filename, contentType string, payload []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
