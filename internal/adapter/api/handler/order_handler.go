package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"gretastore/internal/domain/entity"
	"gretastore/internal/usecase"
	"gretastore/pkg/errors"
	"gretastore/pkg/response"
)

type OrderHandler struct {
	store         *usecase.StoreUseCase
	checkoutDelay time.Duration
}

func NewOrderHandler(store *usecase.StoreUseCase, checkoutDelay time.Duration) *OrderHandler {
	return &OrderHandler{
		store:         store,
		checkoutDelay: checkoutDelay,
	}
}

type checkoutRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// Checkout waits out the simulated payment and then places the order.
func (h *OrderHandler) Checkout(c echo.Context) error {
	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ctx := c.Request().Context()
	if h.checkoutDelay > 0 {
		timer := time.NewTimer(h.checkoutDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return response.Error(c, errors.BadRequest("Checkout cancelled", ctx.Err()))
		}
	}

	order, err := h.store.PlaceOrder(ctx, entity.CustomerInfo{Name: req.Name, Email: req.Email})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, order)
}
