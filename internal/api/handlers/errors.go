package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"zendata/internal/service"
	"zendata/pkg/schema"
	"zendata/pkg/task"
)

// statusFor 错误到 HTTP 状态码的映射
func statusFor(err error) int {
	var runErr *service.RunError
	switch {
	case errors.Is(err, task.ErrTypeMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrServiceNotFound):
		return http.StatusNotFound
	case errors.As(err, &runErr):
		return http.StatusInternalServerError
	case errors.Is(err, task.ErrInvalidRecord),
		errors.Is(err, task.ErrNotAType),
		errors.Is(err, task.ErrUnknownType),
		errors.Is(err, schema.ErrInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
}
