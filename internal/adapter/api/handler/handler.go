package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"gretastore/internal/usecase"
	"gretastore/pkg/errors"
	"gretastore/pkg/response"
)

var (
	authHandler    *AuthHandler
	catalogHandler *CatalogHandler
	cartHandler    *CartHandler
	orderHandler   *OrderHandler
	adminHandler   *AdminHandler
)

func Setup(store *usecase.StoreUseCase, checkoutDelay time.Duration) {
	authHandler = NewAuthHandler(store)
	catalogHandler = NewCatalogHandler(store)
	cartHandler = NewCartHandler(store)
	orderHandler = NewOrderHandler(store, checkoutDelay)
	adminHandler = NewAdminHandler(store)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetCatalogHandler() *CatalogHandler {
	return catalogHandler
}

func GetCartHandler() *CartHandler {
	return cartHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}

// mutationResult answers a store mutation. A backend failure after the
// local change was applied is reported as 202 with the data and the error.
func mutationResult(c echo.Context, data interface{}, err error) error {
	if err == nil {
		return response.Success(c, data)
	}
	if errors.Is(err, "BACKEND_UNAVAILABLE") {
		return response.Accepted(c, data, err)
	}
	return response.Error(c, err)
}

func productIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errors.BadRequest("Invalid product ID", err)
	}
	return id, nil
}

func limitParam(c echo.Context, fallback int) int {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
