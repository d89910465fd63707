package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techblitz/techblitz-backend/internal/logger"
	"github.com/techblitz/techblitz-backend/internal/services"
)

type StatisticsHandler struct {
	log               *logger.Logger
	statisticsService services.StatisticsService
}

func NewStatisticsHandler(log *logger.Logger, statisticsService services.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{
		log:               log.With("handler", "StatisticsHandler"),
		statisticsService: statisticsService,
	}
}

func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	userID, err := requestUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
		return
	}
	rangeKey := c.DefaultQuery("range", "7d")

	chartData, err := h.statisticsService.GetStatsChartData(c.Request.Context(), userID, rangeKey)
	if err != nil {
		if errors.Is(err, services.ErrBadStatsRange) {
			RespondError(c, http.StatusBadRequest, "invalid_stats_range", err)
			return
		}
		h.log.Error("GetStatistics chart failed", "error", err, "user_id", userID)
		RespondError(c, http.StatusInternalServerError, "load_statistics_failed", err)
		return
	}
	summary, err := h.statisticsService.GetStatsSummary(c.Request.Context(), userID, rangeKey)
	if err != nil {
		h.log.Error("GetStatistics summary failed", "error", err, "user_id", userID)
		RespondError(c, http.StatusInternalServerError, "load_statistics_failed", err)
		return
	}
	RespondOK(c, gin.H{"chart_data": chartData, "summary": summary})
}
