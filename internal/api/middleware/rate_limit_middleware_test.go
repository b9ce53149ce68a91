package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sonder9999/Daily-Web/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type countingLimiter struct {
	max  int64
	seen map[string]int64
	err  error
}

func (l *countingLimiter) Allow(_ context.Context, key string) (ratelimit.Decision, error) {
	if l.err != nil {
		return ratelimit.Decision{}, l.err
	}
	l.seen[key]++
	n := l.seen[key]
	remaining := l.max - n
	if remaining < 0 {
		remaining = 0
	}
	return ratelimit.Decision{Allowed: n <= l.max, Remaining: remaining, ResetAt: time.Unix(60, 0)}, nil
}

func (l *countingLimiter) Reset(_ context.Context, key string) error {
	delete(l.seen, key)
	return nil
}

func limitedRouter(l ratelimit.Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/import", RateLimit(l, "import"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func post(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/import", nil))
	return w
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	l := &countingLimiter{max: 2, seen: map[string]int64{}}
	r := limitedRouter(l)

	assert.Equal(t, http.StatusOK, post(r).Code)
	w := post(r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = post(r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("X-RateLimit-Reset"))
	assert.Len(t, l.seen, 1)
	for key := range l.seen {
		assert.Contains(t, key, "import:")
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	r := limitedRouter(&countingLimiter{err: errors.New("redis down")})
	assert.Equal(t, http.StatusOK, post(r).Code)

	assert.Equal(t, http.StatusOK, post(limitedRouter(nil)).Code)
}
