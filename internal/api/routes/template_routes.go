package routes

import (
	"github.com/Sonder9999/Daily-Web/internal/api/dto"
	"github.com/Sonder9999/Daily-Web/internal/api/handlers"
	"github.com/Sonder9999/Daily-Web/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

type TemplateRoutes struct {
	handler *handlers.TemplateHandler
}

func NewTemplateRoutes(handler *handlers.TemplateHandler) *TemplateRoutes {
	return &TemplateRoutes{handler: handler}
}

func (r *TemplateRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()

	templates := router.Group("/api/event-templates")
	templates.GET("", cache.CacheResponse(), r.handler.ListTemplates)
	templates.POST("", validation.ValidateRequest(&dto.CreateTemplateRequest{}), cache.CacheInvalidate(templatesCachePattern), r.handler.CreateTemplate)
}
