package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/pkg/apperror"
	"github.com/sangkips/gopos-api/pkg/pagination"
)

const requestIDHeader = "X-Request-ID"

// APIResponse is the envelope of every JSON response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta identifies the response. Pagination is set on list endpoints only.
type Meta struct {
	Timestamp  string           `json:"timestamp"`
	RequestID  string           `json:"request_id"`
	Pagination *pagination.Info `json:"pagination,omitempty"`
}

// newMeta reuses the caller's X-Request-ID and echoes it back
func newMeta(c *gin.Context) *Meta {
	requestID := c.GetString("request_id")
	if requestID == "" {
		requestID = c.GetHeader(requestIDHeader)
	}
	if requestID == "" {
		requestID = uuid.New().String()
		c.Set("request_id", requestID)
	}
	c.Header(requestIDHeader, requestID)
	return &Meta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	}
}

func write(c *gin.Context, status int, body APIResponse) {
	body.Success = status < http.StatusBadRequest
	if body.Meta == nil {
		body.Meta = newMeta(c)
	}
	c.JSON(status, body)
}

// Success sends data with the given status
func Success(c *gin.Context, statusCode int, message string, data interface{}) {
	write(c, statusCode, APIResponse{Message: message, Data: data})
}

// Paginated sends one page of items with its page info in meta
func Paginated[T any](c *gin.Context, message string, items []T, info *pagination.Info) {
	if items == nil {
		items = []T{}
	}
	meta := newMeta(c)
	meta.Pagination = info
	write(c, http.StatusOK, APIResponse{Message: message, Data: items, Meta: meta})
}

// OK sends a 200 response
func OK(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusOK, message, data)
}

// Created sends a 201 response
func Created(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusCreated, message, data)
}

// Error maps err to its status. Anything that is not an AppError is
// attached to the gin context for the logger and answered with a 500.
func Error(c *gin.Context, err error) {
	if !apperror.IsAppError(err) {
		_ = c.Error(err)
	}
	appErr := apperror.GetAppError(err)
	write(c, appErr.Code, APIResponse{Message: appErr.Message, Errors: appErr.Errors})
}

// ErrorWithCode sends a bare error message
func ErrorWithCode(c *gin.Context, statusCode int, message string) {
	write(c, statusCode, APIResponse{Message: message})
}

// ValidationError sends 422 with per-field errors
func ValidationError(c *gin.Context, errors []apperror.FieldError) {
	write(c, http.StatusUnprocessableEntity, APIResponse{Message: "Validation failed", Errors: errors})
}

func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusNotFound, message)
}

func TooManyRequests(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusTooManyRequests, message)
}

func ServiceUnavailable(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusServiceUnavailable, message)
}
