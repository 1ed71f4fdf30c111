package router

import (
	"github.com/labstack/echo/v4"

	"gretastore/internal/adapter/api/handler"
	"gretastore/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, authRateLimit echo.MiddlewareFunc) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/v1/auth")
	auth.POST("/signup", authHandler.Signup, authRateLimit)
	auth.POST("/login", authHandler.Login, authRateLimit)
	auth.POST("/logout", authHandler.Logout, authMiddleware.Authenticate)

	auth.GET("/me", authHandler.Me, authMiddleware.Authenticate)
	auth.PUT("/profile", authHandler.UpdateProfile, authMiddleware.Authenticate, authRateLimit)
}
