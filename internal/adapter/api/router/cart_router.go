package router

import (
	"github.com/labstack/echo/v4"

	"gretastore/internal/adapter/api/handler"
)

func SetupCartRouter(e *echo.Echo) {
	cartHandler := handler.GetCartHandler()
	orderHandler := handler.GetOrderHandler()

	cart := e.Group("/v1/cart")
	cart.GET("", cartHandler.GetCart)
	cart.DELETE("", cartHandler.ClearCart)
	cart.POST("/items", cartHandler.AddItem)
	cart.DELETE("/items/:id", cartHandler.RemoveItem)
	cart.POST("/items/:id/decrement", cartHandler.DecrementItem)
	cart.GET("/upsells", cartHandler.Upsells)

	e.POST("/v1/checkout", orderHandler.Checkout)
}
