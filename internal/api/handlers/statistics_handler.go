package handlers

import (
	"net/http"

	"github.com/Sonder9999/Daily-Web/internal/domain/statistics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StatisticsHandler struct {
	service statistics.Service
	logger  *zap.Logger
}

func NewStatisticsHandler(service statistics.Service, logger *zap.Logger) *StatisticsHandler {
	return &StatisticsHandler{service: service, logger: logger}
}

// GetStatistics godoc
// @Summary Per-name frequency and duration over an inclusive date range
// @Tags statistics
// @Produce json
// @Param startDate path string true "First date (YYYY-MM-DD)"
// @Param endDate path string true "Last date (YYYY-MM-DD)"
// @Success 200 {object} statistics.Report
// @Failure 400 {object} dto.ErrorResponse "Malformed or reversed range"
// @Router /api/statistics/{startDate}/{endDate} [get]
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	report, err := h.service.GetStatistics(c.Request.Context(), c.Param("startDate"), c.Param("endDate"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
