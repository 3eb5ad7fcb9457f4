package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"payzen.backend/internal/interfaces/http/handlers"
	"payzen.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler      *handlers.AuthHandler
	paymentHandler   *handlers.PaymentHandler
	dashboardHandler *handlers.DashboardHandler
	authMiddleware   gin.HandlerFunc
	rateLimit        gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public, rate limited)
		auth := v1.Group("/auth")
		auth.Use(d.rateLimit)
		{
			auth.POST("/nonce", d.authHandler.Nonce)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/register", d.authHandler.Register)
			auth.GET("/username/check", d.authHandler.UsernameCheck)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
		}

		// Liveness (public)
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"status": "ok"}})
		})

		// Dashboard routes (protected)
		dashboard := v1.Group("/dashboard")
		dashboard.Use(d.authMiddleware)
		{
			dashboard.GET("/stats", d.dashboardHandler.Stats)
			dashboard.GET("/balance", d.dashboardHandler.Balance)
			dashboard.GET("/health", d.dashboardHandler.Health)
		}

		// Payment routes (protected)
		payments := v1.Group("/payments")
		payments.Use(d.authMiddleware)
		{
			payments.POST("/send", middleware.IdempotencyMiddleware(), d.paymentHandler.Send)
			payments.GET("/transactions", d.paymentHandler.ListTransactions)
			payments.GET("/transactions/sent", d.paymentHandler.ListSent)
			payments.GET("/transactions/received", d.paymentHandler.ListReceived)
			payments.GET("/transactions/:id", d.paymentHandler.GetTransaction)
			payments.PUT("/transactions/:id", d.paymentHandler.UpdateTransaction)

			payments.POST("/links", d.paymentHandler.CreateLink)
			payments.GET("/links", d.paymentHandler.ListLinks)
			payments.DELETE("/links/:code", d.paymentHandler.DeactivateLink)
		}

		// Public payment link route (for payers)
		v1.GET("/payments/links/:code", d.paymentHandler.GetLink)
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "payzen-backend",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
