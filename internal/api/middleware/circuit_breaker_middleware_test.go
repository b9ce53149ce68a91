package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newBreakerRouter(cb *CircuitBreaker, status *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(cb.CircuitBreakerMiddleware())
	r.GET("/api/events/:date", func(c *gin.Context) {
		c.JSON(*status, gin.H{})
	})
	return r
}

func hit(r *gin.Engine) int {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/events/2024-01-01", nil))
	return w.Code
}

func TestCircuitBreakerOpensAndRecovers(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, SuccessThreshold: 1, Timeout: time.Minute}, zap.NewNop())
	cb.now = func() time.Time { return now }

	status := http.StatusInternalServerError
	r := newBreakerRouter(cb, &status)

	assert.Equal(t, http.StatusInternalServerError, hit(r))
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, http.StatusInternalServerError, hit(r))
	assert.Equal(t, StateOpen, cb.State())

	status = http.StatusOK
	assert.Equal(t, http.StatusServiceUnavailable, hit(r))

	now = now.Add(2 * time.Minute)
	assert.Equal(t, http.StatusOK, hit(r))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreakerSuccessResetsFailures(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, SuccessThreshold: 1, Timeout: time.Minute}, zap.NewNop())
	status := http.StatusInternalServerError
	r := newBreakerRouter(cb, &status)

	hit(r)
	status = http.StatusBadRequest
	hit(r)
	status = http.StatusInternalServerError
	hit(r)

	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Second}, zap.NewNop())
	cb.now = func() time.Time { return now }
	status := http.StatusInternalServerError
	r := newBreakerRouter(cb, &status)

	hit(r)
	now = now.Add(2 * time.Second)
	assert.Equal(t, http.StatusInternalServerError, hit(r))
	assert.Equal(t, StateOpen, cb.State())
	assert.Equal(t, http.StatusServiceUnavailable, hit(r))
}
