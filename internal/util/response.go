package util

import (
	"errors"
	"lms_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope for single-entity and mutation responses.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ListResponse is the envelope for every paginated list.
type ListResponse struct {
	Success     bool        `json:"success"`
	Count       int         `json:"count"`
	Total       int64       `json:"total"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
	Data        interface{} `json:"data"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message})
}

func List(c *gin.Context, data interface{}, count int, total int64, p Page) {
	c.JSON(http.StatusOK, ListResponse{
		Success:     true,
		Count:       count,
		Total:       total,
		TotalPages:  p.TotalPages(total),
		CurrentPage: p.Page,
		Data:        data,
	})
}

func Error(c *gin.Context, code int, message, kind string) {
	c.JSON(code, Response{
		Success: false,
		Message: message,
		Error:   kind,
	})
}

// Fail writes err using the status of its kind. Unexpected errors are logged and only an
// AppError's own message reaches the client, never the underlying cause.
func Fail(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		LogInternalError(c, err)
		return
	}
	if appErr.Kind == KindUnexpected {
		logger.Log.Error("Internal server error",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	Error(c, appErr.Kind.Status(), appErr.Message, appErr.Kind.String())
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized", KindUnauthorized.String())
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden", KindForbidden.String())
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message, KindValidation.String())
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found", KindNotFound.String())
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error", KindUnexpected.String())
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	InternalServerError(c)
}
