package routes

import (
	"github.com/Sonder9999/Daily-Web/internal/api/handlers"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// StatisticsRoutes are not response-cached here: the statistics service
// keeps its own cache.
type StatisticsRoutes struct {
	handler *handlers.StatisticsHandler
}

func NewStatisticsRoutes(handler *handlers.StatisticsHandler) *StatisticsRoutes {
	return &StatisticsRoutes{handler: handler}
}

func (r *StatisticsRoutes) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/statistics/:startDate/:endDate", gzip.Gzip(gzip.DefaultCompression), r.handler.GetStatistics)
}
