package middleware

import (
	"errors"
	"net/http"

	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
	"go-interview-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		switch {
		case errors.As(err, &appErr):
			response.Error(c, appErr.Code, appErr.Message, nil)
		case errors.Is(err, domain.ErrNotFound):
			response.Error(c, http.StatusNotFound, "Resource not found", nil)
		default:
			// Never expose internal error details to clients.
			logger.Log.Error("unhandled request error",
				"path", c.FullPath(),
				"error", err.Error())
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		}
	}
}
