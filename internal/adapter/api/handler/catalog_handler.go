package handler

import (
	"github.com/labstack/echo/v4"

	"gretastore/internal/domain/entity"
	"gretastore/internal/usecase"
	"gretastore/pkg/errors"
	"gretastore/pkg/response"
)

const defaultRelatedLimit = 6

type CatalogHandler struct {
	store *usecase.StoreUseCase
}

func NewCatalogHandler(store *usecase.StoreUseCase) *CatalogHandler {
	return &CatalogHandler{
		store: store,
	}
}

// ListProducts filters by ?category=, ?q= and orders by ?sort=asc|desc.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	sort := entity.ProductSort(c.QueryParam("sort"))
	switch sort {
	case "", entity.SortDefault, entity.SortPriceAsc, entity.SortPriceDesc:
	default:
		return response.Error(c, errors.BadRequest("sort must be one of: default asc desc", nil))
	}

	products := h.store.QueryProducts(entity.ProductFilter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("q"),
		Sort:     sort,
	})
	return response.Success(c, products)
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	id, err := productIDParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	product, err := h.store.ProductByID(id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, product)
}

func (h *CatalogHandler) RelatedProducts(c echo.Context) error {
	id, err := productIDParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	related, err := h.store.RelatedProducts(id, limitParam(c, defaultRelatedLimit))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, related)
}
