package repository

import (
	"context"
	"encoding/json"

	"gretastore/internal/domain/entity"
	"gretastore/internal/domain/repository"
	"gretastore/pkg/errors"
	"gretastore/pkg/logger"
)

const cartKey = "cart"

type localCartRepository struct {
	store repository.LocalStorage
}

// NewLocalCartRepository keeps the cart as a JSON array under the "cart"
// key of the given local storage.
func NewLocalCartRepository(store repository.LocalStorage) repository.CartRepository {
	return &localCartRepository{store: store}
}

// Load returns an empty cart when nothing is stored or the stored value
// cannot be decoded.
func (r *localCartRepository) Load(ctx context.Context) ([]entity.CartItem, error) {
	raw, ok, err := r.store.Get(ctx, cartKey)
	if err != nil {
		return nil, errors.Internal("Failed to read cart", err)
	}
	if !ok {
		return []entity.CartItem{}, nil
	}

	var items []entity.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Warn("Discarding unreadable cart: %v", err)
		return []entity.CartItem{}, nil
	}
	if items == nil {
		items = []entity.CartItem{}
	}
	return items, nil
}

func (r *localCartRepository) Save(ctx context.Context, items []entity.CartItem) error {
	if items == nil {
		items = []entity.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return errors.Internal("Failed to encode cart", err)
	}
	if err := r.store.Set(ctx, cartKey, raw); err != nil {
		return errors.Internal("Failed to save cart", err)
	}
	return nil
}
