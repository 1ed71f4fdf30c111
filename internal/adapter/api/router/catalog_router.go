package router

import (
	"github.com/labstack/echo/v4"

	"gretastore/internal/adapter/api/handler"
)

func SetupCatalogRouter(e *echo.Echo) {
	catalogHandler := handler.GetCatalogHandler()

	products := e.Group("/v1/products")
	products.GET("", catalogHandler.ListProducts)
	products.GET("/:id", catalogHandler.GetProduct)
	products.GET("/:id/related", catalogHandler.RelatedProducts)
}
