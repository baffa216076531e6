package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/sangkips/billbook-api/pkg/logger"
	"github.com/sirupsen/logrus"
)

// ErrorResponse is the envelope for every failed request
type ErrorResponse struct {
	Success bool                  `json:"success"`
	Error   string                `json:"error"`
	Errors  []apperror.FieldError `json:"errors,omitempty"`
}

// MessageResponse acknowledges a write that returns no resource
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// JSON writes data as-is. Resources are returned without a wrapper.
func JSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// OK sends a 200 with the resource
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data)
}

// Created sends a 201 with the created resource
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Message sends {success:true, message}
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, MessageResponse{Success: true, Message: message})
}

// Error renders err through the error envelope. Anything that is not an
// AppError is logged and reported as a 500 with its message.
func Error(c *gin.Context, err error) {
	appErr := apperror.GetAppError(err)
	if appErr.Kind == apperror.KindInternal {
		logger.Get().WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).WithError(err).Error("request failed")
	}
	c.JSON(appErr.Code, ErrorResponse{
		Success: false,
		Error:   appErr.Message,
		Errors:  appErr.Errors,
	})
}

// ErrorWithCode sends the error envelope with a specific status code
func ErrorWithCode(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{Success: false, Error: message})
}

// AbortWithError renders err and stops the handler chain
func AbortWithError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// NotFound sends a 404 Not Found response
func NotFound(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusNotFound, message)
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusBadRequest, message)
}

// TooManyRequests sends a 429 response
func TooManyRequests(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusTooManyRequests, message)
}

// InternalServerError sends a 500 Internal Server Error response
func InternalServerError(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusInternalServerError, message)
}
