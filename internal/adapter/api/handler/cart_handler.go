package handler

import (
	"github.com/labstack/echo/v4"

	"gretastore/internal/domain/entity"
	"gretastore/internal/usecase"
	"gretastore/pkg/errors"
	"gretastore/pkg/response"
)

const defaultUpsellLimit = 2

type CartHandler struct {
	store *usecase.StoreUseCase
}

func NewCartHandler(store *usecase.StoreUseCase) *CartHandler {
	return &CartHandler{
		store: store,
	}
}

type addToCartRequest struct {
	ProductID int64 `json:"productId" validate:"required"`
	Quantity  int   `json:"quantity" validate:"omitempty,min=1"`
}

type cartResponse struct {
	Items    []entity.CartItem       `json:"items"`
	Total    float64                 `json:"total"`
	Shipping entity.ShippingProgress `json:"shipping"`
}

func (h *CartHandler) view(c echo.Context) error {
	items := h.store.Cart()
	if items == nil {
		items = []entity.CartItem{}
	}
	return response.Success(c, cartResponse{
		Items:    items,
		Total:    h.store.CartTotal(),
		Shipping: h.store.ShippingProgress(),
	})
}

func (h *CartHandler) GetCart(c echo.Context) error {
	return h.view(c)
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.store.ProductByID(req.ProductID)
	if err != nil {
		return response.Error(c, err)
	}

	if req.Quantity == 0 {
		h.store.AddToCart(c.Request().Context(), product)
	} else {
		h.store.AddQuantityToCart(c.Request().Context(), product, req.Quantity)
	}
	return h.view(c)
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	id, err := productIDParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	h.store.RemoveFromCart(c.Request().Context(), id)
	return h.view(c)
}

func (h *CartHandler) DecrementItem(c echo.Context) error {
	id, err := productIDParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	h.store.DecrementCartItem(c.Request().Context(), id)
	return h.view(c)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	h.store.ClearCart(c.Request().Context())
	return h.view(c)
}

func (h *CartHandler) Upsells(c echo.Context) error {
	return response.Success(c, h.store.Upsells(limitParam(c, defaultUpsellLimit)))
}
