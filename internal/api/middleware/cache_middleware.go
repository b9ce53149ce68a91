package middleware

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ResponseCache is the key/value store behind CacheMiddleware. It is
// satisfied by *cache.RedisClient.
type ResponseCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	ClearByPattern(ctx context.Context, pattern string) error
}

// CacheMiddleware caches JSON GET responses by path. A nil *CacheMiddleware
// or one without a store passes every request through.
type CacheMiddleware struct {
	cache  ResponseCache
	prefix string
	ttl    time.Duration
}

func NewCacheMiddleware(cache ResponseCache, prefix string, ttl time.Duration) *CacheMiddleware {
	return &CacheMiddleware{
		cache:  cache,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (m *CacheMiddleware) enabled() bool {
	return m != nil && m.cache != nil
}

// responseBuffer is a custom ResponseWriter that stores the response
type responseBuffer struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func newResponseBuffer(original gin.ResponseWriter) *responseBuffer {
	return &responseBuffer{
		ResponseWriter: original,
		body:           bytes.NewBufferString(""),
	}
}

func (r *responseBuffer) Write(b []byte) (int, error) {
	r.ResponseWriter.Write(b)
	return r.body.Write(b)
}

func (r *responseBuffer) WriteString(s string) (int, error) {
	r.ResponseWriter.WriteString(s)
	return r.body.WriteString(s)
}

// CacheResponse caches the response of an endpoint
func (m *CacheMiddleware) CacheResponse() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled() || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := m.CacheKey(c.Request.URL.Path, c.Request.URL.RawQuery)

		if cached, err := m.cache.Get(c.Request.Context(), key); err == nil {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			c.Abort()
			return
		}

		writer := c.Writer
		buff := newResponseBuffer(writer)
		c.Writer = buff

		c.Next()

		if c.Writer.Status() == http.StatusOK && buff.body.Len() > 0 {
			if err := m.cache.Set(c.Request.Context(), key, buff.body.String(), m.ttl); err != nil {
				log.Error("Failed to cache response", zap.Error(err), zap.String("key", key))
			}
		}

		c.Writer = writer
	}
}

// CacheInvalidate invalidates cache entries after a successful write.
func (m *CacheMiddleware) CacheInvalidate(patterns ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if !m.enabled() {
			return
		}
		if c.Writer.Status() >= 200 && c.Writer.Status() < 300 {
			m.Invalidate(c.Request.Context(), patterns...)
		}
	}
}

// Invalidate clears the given resource patterns, e.g. "events:*".
func (m *CacheMiddleware) Invalidate(ctx context.Context, patterns ...string) {
	if !m.enabled() {
		return
	}
	for _, pattern := range patterns {
		key := fmt.Sprintf("%s:%s", m.prefix, pattern)
		if err := m.cache.ClearByPattern(ctx, key); err != nil {
			log.Error("Failed to invalidate cache", zap.Error(err), zap.String("pattern", pattern))
		}
	}
}

// CacheKey builds "{prefix}:{resource}:{rest of path}[:{query}]" from an
// /api/... path, e.g. /api/events/2024-01-15 -> http:events:2024-01-15.
func (m *CacheMiddleware) CacheKey(path, rawQuery string) string {
	parts := []string{m.prefix}

	pathParts := strings.Split(strings.Trim(path, "/"), "/")
	if len(pathParts) >= 2 {
		parts = append(parts, pathParts[1])
		if len(pathParts) >= 3 {
			parts = append(parts, pathParts[2:]...)
		} else {
			parts = append(parts, "list")
		}
	}

	if rawQuery != "" {
		parts = append(parts, rawQuery)
	}

	return strings.Join(parts, ":")
}
