package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/invman/internal/domain"
	"github.com/jafarshop/invman/internal/service"
)

// TrackPerformanceRequest represents a performance tracking request
type TrackPerformanceRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// HandleTrackPerformance handles POST /v1/performance
func HandleTrackPerformance(analytics *service.AnalyticsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req TrackPerformanceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid start_date, want YYYY-MM-DD"})
			return
		}
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid end_date, want YYYY-MM-DD"})
			return
		}
		if end.Before(start) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "end_date is before start_date"})
			return
		}

		snapshot, err := analytics.TrackPerformance(c.Request.Context(), start, end)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"start_date": snapshot.StartDate.Format(domain.PerformanceDateFormat),
			"end_date":   snapshot.EndDate.Format(domain.PerformanceDateFormat),
			"net_profit": snapshot.NetProfit.InexactFloat64(),
			"tracked_on": snapshot.TrackedOn.Format(domain.TrackedOnFormat),
		})
	}
}

// HandleBestWorstSellers handles GET /v1/performance/sellers
func HandleBestWorstSellers(analytics *service.AnalyticsService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := strconv.Atoi(c.DefaultQuery("n", "3"))
		if err != nil || n < 1 {
			n = 3
		}

		report, err := analytics.BestWorstSellers(c.Request.Context(), n)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}
