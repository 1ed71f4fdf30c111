package repository

import (
	"context"

	"gretastore/internal/domain/entity"
)

type OrderRepository interface {
	ListByDateDesc(ctx context.Context) ([]entity.Order, error)
	Create(ctx context.Context, order entity.Order) (entity.Order, error)
	// CreateMany inserts all orders or none.
	CreateMany(ctx context.Context, orders []entity.Order) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error
}
