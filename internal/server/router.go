// Package server exposes the optimization engine over HTTP with gin.
package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/piwi3910/plycut/internal/config"
)

// NewRouter creates and configures the gin router.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	corsConfig := cors.Config{
		AllowOrigins:  cfg.Server.CORSOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.Server.CORSOrigins) == 1 && cfg.Server.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowOrigins = nil
	}
	router.Use(cors.New(corsConfig))

	router.Use(
		requestID(),
		recovery(),
		prometheusMiddleware(),
		requestLogger(),
	)

	handler := NewHandler(cfg.Run)

	router.GET("/healthz", handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.POST("/optimize", handler.Optimize)
	api.POST("/optimize/cutlist", handler.OptimizeCutList)

	return router
}
