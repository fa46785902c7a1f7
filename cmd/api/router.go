package api

import (
	"net/http"

	"messenger-notifier/internal/auth/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler, metricsHandler http.Handler) {
	r.GET("/metrics", gin.WrapH(metricsHandler))

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "messenger-notifier"})
		})

		triggers := api.Group("/triggers")
		triggers.Use(delivery.AuthMiddleware(h.config.IngressJWTSecret, h.logger))
		{
			triggers.POST("/message-created", h.MessageCreated)
		}
	}
}
