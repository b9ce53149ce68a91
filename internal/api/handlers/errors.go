package handlers

import (
	"errors"
	"net/http"

	"github.com/Sonder9999/Daily-Web/internal/api/dto"
	"github.com/Sonder9999/Daily-Web/internal/domain/apperror"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const internalErrorMessage = "服务器错误"

// respondError maps domain errors onto HTTP statuses. Anything that is not
// a validation or not-found error is logged and reported as a bare 500.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var validationErr *apperror.ValidationError
	var notFoundErr *apperror.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: validationErr.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: notFoundErr.Error()})
	default:
		logger.Error("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: internalErrorMessage})
	}
}

// validated returns the body or query model stored by the validation
// middleware under key, or false when it is missing or of another type.
func validated[T any](c *gin.Context, key string) (*T, bool) {
	v, exists := c.Get(key)
	if !exists {
		return nil, false
	}
	model, ok := v.(*T)
	return model, ok
}
