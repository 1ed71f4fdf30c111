package router

import (
	"github.com/labstack/echo/v4"

	"gretastore/internal/adapter/api/handler"
	"gretastore/internal/adapter/api/middleware"
)

func SetupAdminRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	adminHandler := handler.GetAdminHandler()

	// Admin routes - require a verified session token and the admin role
	admin := e.Group("/v1/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.POST("/products", adminHandler.CreateProduct)
	admin.PUT("/products/:id", adminHandler.UpdateProduct)
	admin.DELETE("/products/:id", adminHandler.DeleteProduct)

	admin.GET("/orders", adminHandler.ListOrders)
	admin.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
	admin.POST("/orders/generate", adminHandler.GenerateHistory)

	admin.GET("/analytics", adminHandler.Analytics)
	admin.POST("/analytics/sync-sales", adminHandler.SyncSales)
	admin.GET("/customers", adminHandler.Customers)
	admin.GET("/alerts", adminHandler.Alerts)

	admin.PUT("/users/:id/role", adminHandler.UpdateUserRole)
}
