package router

import (
	"github.com/labstack/echo/v4"

	"gretastore/internal/adapter/api/handler"
	"gretastore/internal/adapter/api/middleware"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	authRateLimit echo.MiddlewareFunc,
	wsHandler *handler.WebSocketHandler,
) {
	SetupHealthRouter(e)
	SetupAuthRouter(e, authMiddleware, authRateLimit)
	SetupCatalogRouter(e)
	SetupCartRouter(e)
	SetupAdminRouter(e, authMiddleware, adminMiddleware)
	SetupWebSocketRouter(e, wsHandler)
}
