package routes

import (
	"github.com/Sonder9999/Daily-Web/internal/api/dto"
	"github.com/Sonder9999/Daily-Web/internal/api/handlers"
	"github.com/Sonder9999/Daily-Web/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// Cache patterns cleared after writes, relative to the cache prefix.
const (
	eventsCachePattern    = "events:*"
	templatesCachePattern = "event-templates:*"
)

// ChangeCachePatterns are the response cache patterns that any change to
// stored events makes stale.
var ChangeCachePatterns = []string{eventsCachePattern, templatesCachePattern}

type EventRoutes struct {
	handler *handlers.EventHandler
}

func NewEventRoutes(handler *handlers.EventHandler) *EventRoutes {
	return &EventRoutes{handler: handler}
}

func (r *EventRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()

	events := router.Group("/api/events")

	events.GET("/:date", cache.CacheResponse(), r.handler.ListEvents)
	events.GET("/:date/layout", cache.CacheResponse(), r.handler.GetLayout)
	events.POST("", validation.ValidateRequest(&dto.EventRequest{}), cache.CacheInvalidate(eventsCachePattern), r.handler.CreateEvent)
	events.PUT("/:id", validation.ValidateRequest(&dto.EventRequest{}), cache.CacheInvalidate(eventsCachePattern), r.handler.UpdateEvent)
	events.DELETE("/:id", cache.CacheInvalidate(eventsCachePattern), r.handler.DeleteEvent)
}
