package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"gretastore/internal/domain/entity"
	"gretastore/internal/usecase"
	"gretastore/pkg/errors"
	"gretastore/pkg/response"
	"gretastore/pkg/utils"
)

type AdminHandler struct {
	store *usecase.StoreUseCase
}

func NewAdminHandler(store *usecase.StoreUseCase) *AdminHandler {
	return &AdminHandler{
		store: store,
	}
}

type productRequest struct {
	Name              string  `json:"name" validate:"required"`
	Price             float64 `json:"price" validate:"min=0"`
	Category          string  `json:"category" validate:"required"`
	Image             string  `json:"image"`
	Description       string  `json:"description"`
	NutritionInfo     string  `json:"nutritionInfo"`
	ShippingInfo      string  `json:"shippingInfo"`
	RelatedProductIDs []int64 `json:"relatedProductIds"`
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type roleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin client"`
}

type productWithSync struct {
	entity.Product
	SyncState entity.SyncState `json:"syncState,omitempty"`
}

func (h *AdminHandler) withSync(p entity.Product) productWithSync {
	return productWithSync{Product: p, SyncState: h.store.SyncState(entity.KindProduct, strconv.FormatInt(p.ID, 10))}
}

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.store.AddProduct(c.Request().Context(), entity.ProductDraft{
		Name:              req.Name,
		Price:             req.Price,
		Category:          req.Category,
		Image:             req.Image,
		Description:       req.Description,
		NutritionInfo:     req.NutritionInfo,
		ShippingInfo:      req.ShippingInfo,
		RelatedProductIDs: req.RelatedProductIDs,
	})
	if err != nil {
		return mutationResult(c, h.withSync(product), err)
	}

	return response.Created(c, h.withSync(product))
}

// UpdateProduct edits the descriptive fields; rating and sales are kept.
func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	id, err := productIDParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.store.ProductByID(id)
	if err != nil {
		return response.Error(c, err)
	}
	product.Name = req.Name
	product.Price = req.Price
	product.Category = req.Category
	product.Image = req.Image
	product.Description = req.Description
	product.NutritionInfo = req.NutritionInfo
	product.ShippingInfo = req.ShippingInfo
	product.RelatedProductIDs = req.RelatedProductIDs

	err = h.store.UpdateProduct(c.Request().Context(), product)
	return mutationResult(c, h.withSync(product), err)
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	id, err := productIDParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	err = h.store.DeleteProduct(c.Request().Context(), id)
	return mutationResult(c, map[string]int64{"id": id}, err)
}

// ListOrders filters by ?status= and ?payment_status= ("All" matches
// everything) and paginates with ?page= and ?limit=.
func (h *AdminHandler) ListOrders(c echo.Context) error {
	orders := h.store.FilterOrders(entity.OrderFilter{
		Status:        c.QueryParam("status"),
		PaymentStatus: c.QueryParam("payment_status"),
	})

	params := utils.GetPaginationParams(c)
	start, end := params.Window(len(orders))
	page := orders[start:end]
	if page == nil {
		page = []entity.Order{}
	}

	return response.Paginated(c, page, int64(len(orders)), params.Page, params.PageSize)
}

func (h *AdminHandler) UpdateOrderStatus(c echo.Context) error {
	var req orderStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	id := c.Param("id")
	err := h.store.UpdateOrderStatus(c.Request().Context(), id, entity.OrderStatus(req.Status))
	return mutationResult(c, map[string]string{"id": id, "status": req.Status}, err)
}

func (h *AdminHandler) GenerateHistory(c echo.Context) error {
	result := h.store.GenerateHistoricalOrders(c.Request().Context())
	return response.Created(c, result)
}

func (h *AdminHandler) Analytics(c echo.Context) error {
	return response.Success(c, h.store.GetAnalytics())
}

func (h *AdminHandler) SyncSales(c echo.Context) error {
	return response.Success(c, map[string]int{"updated": h.store.SyncSalesCounts()})
}

func (h *AdminHandler) Customers(c echo.Context) error {
	return response.Success(c, h.store.Customers())
}

func (h *AdminHandler) Alerts(c echo.Context) error {
	return response.Success(c, h.store.Alerts())
}

func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	id := c.Param("id")
	if err := h.store.UpdateUserRole(c.Request().Context(), id, entity.Role(req.Role)); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"id": id, "role": req.Role})
}
