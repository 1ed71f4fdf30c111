package router

import (
	"github.com/labstack/echo/v4"

	"gretastore/internal/adapter/api/handler"
)

func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/v1/events", wsHandler.HandleEvents)
}
