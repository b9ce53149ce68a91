package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/Sonder9999/Daily-Web/internal/domain/event"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Context keys set by the validation middleware.
const (
	ValidatedModelKey = "validated_model"
	ValidatedQueryKey = "validated_query"
)

// ValidationMiddleware handles request validation
type ValidationMiddleware struct {
	validator *validator.Validate
}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware() *ValidationMiddleware {
	v := validator.New()

	// Use json/form tag names in error details
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})

	v.RegisterValidation("not_empty", validateNotEmpty)
	v.RegisterValidation("clock", validateClock)
	v.RegisterValidation("calendar_date", validateCalendarDate)

	return &ValidationMiddleware{validator: v}
}

// Validator exposes the configured validator for handlers that bind by hand.
func (m *ValidationMiddleware) Validator() *validator.Validate {
	return m.validator
}

// ValidateRequest validates the request body against the provided struct
func (m *ValidationMiddleware) ValidateRequest(model interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		modelType := reflect.TypeOf(model)
		if modelType.Kind() == reflect.Ptr {
			modelType = modelType.Elem()
		}
		modelValue := reflect.New(modelType).Interface()

		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		if err := json.Unmarshal(bodyBytes, modelValue); err != nil {
			log.Error("JSON unmarshal failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.Int("content_length", len(bodyBytes)))
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Invalid JSON format: %v", err.Error()),
			})
			c.Abort()
			return
		}

		if !m.validate(c, modelValue, "Validation failed") {
			return
		}

		c.Set(ValidatedModelKey, modelValue)
		c.Next()
	}
}

// ValidateQuery validates query parameters against the provided struct
func (m *ValidationMiddleware) ValidateQuery(model interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		modelType := reflect.TypeOf(model)
		if modelType.Kind() == reflect.Ptr {
			modelType = modelType.Elem()
		}
		modelValue := reflect.New(modelType).Interface()

		if err := c.ShouldBindQuery(modelValue); err != nil {
			log.Error("Failed to bind query parameters",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "invalid query parameters",
			})
			c.Abort()
			return
		}

		if !m.validate(c, modelValue, "Query validation failed") {
			return
		}

		c.Set(ValidatedQueryKey, modelValue)
		c.Next()
	}
}

func (m *ValidationMiddleware) validate(c *gin.Context, modelValue interface{}, logMsg string) bool {
	err := m.validator.Struct(modelValue)
	if err == nil {
		return true
	}

	details := make(map[string]string)
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			details[fe.Field()] = formatValidationError(fe)
		}
	}

	log.Error(logMsg,
		zap.Any("errors", details),
		zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "validation failed",
		"details": details,
	})
	c.Abort()
	return false
}

// Custom validators
func validateNotEmpty(fl validator.FieldLevel) bool {
	return len(strings.TrimSpace(fl.Field().String())) > 0
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := event.ParseClock(strings.TrimSpace(fl.Field().String()))
	return err == nil
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := event.ParseDate(event.NormalizeDate(strings.TrimSpace(fl.Field().String())))
	return err == nil
}

func formatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return "value is too long"
	case "not_empty":
		return "this field cannot be empty"
	case "clock":
		return "invalid time, expected HH:MM or HH:MM:SS"
	case "calendar_date":
		return "invalid date, expected YYYY-MM-DD"
	case "oneof":
		return "must be one of: " + err.Param()
	default:
		return "invalid value"
	}
}
