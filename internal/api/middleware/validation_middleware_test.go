package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type clockRequest struct {
	Date  string `json:"date" validate:"required,calendar_date"`
	Start string `json:"start" validate:"required,clock"`
	Name  string `json:"name" validate:"required,not_empty"`
}

func TestValidateRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	v := NewValidationMiddleware()

	router := gin.New()
	router.POST("/", v.ValidateRequest(&clockRequest{}), func(c *gin.Context) {
		req := c.MustGet(ValidatedModelKey).(*clockRequest)
		c.String(http.StatusOK, req.Name)
	})

	tests := []struct {
		name string
		body string
		code int
	}{
		{"valid", `{"date":"2024-01-15","start":"08:00:30","name":"a"}`, http.StatusOK},
		{"timestamp date", `{"date":"2024-01-15T00:00:00.000Z","start":"08:00","name":"a"}`, http.StatusOK},
		{"hour out of range", `{"date":"2024-01-15","start":"24:00","name":"a"}`, http.StatusBadRequest},
		{"blank name", `{"date":"2024-01-15","start":"08:00","name":" "}`, http.StatusBadRequest},
		{"not json", `date=2024-01-15`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)
			require.Equal(t, tt.code, w.Code, w.Body.String())
		})
	}
}
