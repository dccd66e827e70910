package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jengzang/taxi-dashboard/internal/config"
	"github.com/jengzang/taxi-dashboard/internal/handler"
	"github.com/jengzang/taxi-dashboard/internal/middleware"
	"github.com/jengzang/taxi-dashboard/internal/models"
	"github.com/jengzang/taxi-dashboard/pkg/logger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, h *handler.DashboardHandler, log logger.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log))

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.RequestIDHeader)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Taxi Dashboard API is running",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.Server.RateLimit, time.Minute))
	{
		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("", h.GetDashboard)
			dashboard.GET("/bounds", h.GetBounds)
			dashboard.GET("/export", h.Export)
			dashboard.GET("/charts/:name", h.GetChart)

			for _, name := range models.Aggregations {
				dashboard.GET("/"+name, h.GetAggregation(name))
			}
		}
	}

	return r
}
