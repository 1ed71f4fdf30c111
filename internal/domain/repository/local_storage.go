package repository

import (
	"context"

	"gretastore/internal/domain/entity"
)

// LocalStorage is a small key/value store that outlives the process, the
// way browser storage outlives a page reload.
type LocalStorage interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}

type CartRepository interface {
	Load(ctx context.Context) ([]entity.CartItem, error)
	Save(ctx context.Context, items []entity.CartItem) error
}
