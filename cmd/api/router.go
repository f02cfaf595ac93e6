package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/shared/middleware"
	"marketplace-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupShippingRoutes(v1, c)
		setupOrderRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// SHIPPING ROUTES
// ========================================
func setupShippingRoutes(v1 *gin.RouterGroup, c *container.Container) {
	rates := v1.Group("/shipping-rates")
	{
		rates.POST("/calculate", c.ShippingHandler.CalculateFee)
		rates.GET("/options", c.ShippingHandler.GetOptions)
	}
}

// ========================================
// ORDER ROUTES
// ========================================
func setupOrderRoutes(v1 *gin.RouterGroup, c *container.Container) {
	orders := v1.Group("/orders")
	{
		orders.GET("/:id", c.OrderHandler.GetOrder)
		orders.PATCH("/:id/shipping", c.OrderHandler.UpdateShipping)
		orders.POST("/:id/shipping/payment-resolution", c.OrderHandler.ResolvePayment)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	// TODO: Add Auth + Role middleware
	admin := v1.Group("/admin")
	{
		admin.GET("/shipping-rates", c.ShippingHandler.ListRateRules)
		admin.POST("/shipping-rates", c.ShippingHandler.UpsertRateRule)
		admin.POST("/shipping-rates/reload", c.ShippingHandler.ReloadRates)
		admin.GET("/zone-mappings", c.ShippingHandler.ListZoneMappings)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		dbStatus := "ok"
		if err := c.DB.HealthCheck(checkCtx); err != nil {
			dbStatus = "down"
		}

		cacheStatus := "ok"
		if err := c.Cache.Ping(checkCtx); err != nil {
			cacheStatus = "down"
		}

		status := http.StatusOK
		if dbStatus != "ok" || cacheStatus != "ok" {
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":   "up",
			"database": dbStatus,
			"cache":    cacheStatus,
			"version":  c.Config.App.Version,
		})
	}
}
