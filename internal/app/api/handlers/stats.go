package handlers

import (
	"net/http"

	"github.com/atomictrack/atomictrack/internal/app/service/stats"
	"github.com/atomictrack/atomictrack/pkg/response"

	"github.com/gin-gonic/gin"
)

// @Summary      Completion Statistics
// @Description  Cross-habit totals and streaks derived from completion history.
// @Tags         Stats
// @Produce      json
// @Success      200  {object}  handlers.RespStatsSummary
// @Router       /api/v1/stats [get]
func ApiStatsSummary(svc *stats.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sum, err := svc.Summary(c.Request.Context(), userIDFrom(c))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(sum))
	}
}

// @Summary      Weekly Completion Series
// @Description  Qualifying completion counts per day over the last seven days.
// @Tags         Stats
// @Produce      json
// @Success      200  {object}  handlers.RespWeeklyStats
// @Router       /api/v1/stats/weekly [get]
func ApiStatsWeekly(svc *stats.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.Weekly(c.Request.Context(), userIDFrom(c))
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(items))
	}
}

func RegisterStatsRoutes(r gin.IRouter, svc *stats.Service) {
	r.GET("/stats", ApiStatsSummary(svc))
	r.GET("/stats/weekly", ApiStatsWeekly(svc))
}
