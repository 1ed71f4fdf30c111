package repository

import (
	"context"

	"gretastore/internal/domain/entity"
)

// ProductRepository persists the catalog. Create and CreateMany ignore the
// incoming ID and return records carrying the backend-assigned one.
type ProductRepository interface {
	List(ctx context.Context) ([]entity.Product, error)
	Create(ctx context.Context, product entity.Product) (entity.Product, error)
	CreateMany(ctx context.Context, products []entity.Product) ([]entity.Product, error)
	Update(ctx context.Context, product entity.Product) error
	Delete(ctx context.Context, id int64) error
}
