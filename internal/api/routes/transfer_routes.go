package routes

import (
	"github.com/Sonder9999/Daily-Web/internal/api/dto"
	"github.com/Sonder9999/Daily-Web/internal/api/handlers"
	"github.com/Sonder9999/Daily-Web/internal/api/middleware"
	"github.com/Sonder9999/Daily-Web/pkg/ratelimit"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

type TransferRoutes struct {
	handler *handlers.TransferHandler
	limiter ratelimit.Limiter
}

// NewTransferRoutes takes an optional limiter for uploads; pass nil to
// leave imports unthrottled.
func NewTransferRoutes(handler *handlers.TransferHandler, limiter ratelimit.Limiter) *TransferRoutes {
	return &TransferRoutes{handler: handler, limiter: limiter}
}

func (r *TransferRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()

	api := router.Group("/api")
	// Exports can be large; compress them
	api.GET("/export", validation.ValidateQuery(&dto.ExportQuery{}), gzip.Gzip(gzip.DefaultCompression), r.handler.Export)
	api.POST("/import", middleware.RateLimit(r.limiter, "import"), cache.CacheInvalidate(ChangeCachePatterns...), r.handler.Import)
	api.GET("/imports", validation.ValidateQuery(&dto.ImportListQuery{}), r.handler.ListImports)
}
