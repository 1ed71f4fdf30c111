package usecase

import (
	"context"
	"math"

	"gretastore/internal/domain/entity"
	"gretastore/pkg/logger"
)

func (s *StoreUseCase) rehydrateCart(ctx context.Context) {
	items, err := s.cartRepo.Load(ctx)
	if err != nil {
		logger.Warn("Could not rehydrate cart, starting empty: %v", err)
		items = nil
	}

	s.mu.Lock()
	s.cart = items
	s.mu.Unlock()
}

// AddToCart adds one unit of product. An existing line for the same product
// is incremented instead of duplicated.
func (s *StoreUseCase) AddToCart(ctx context.Context, product entity.Product) {
	s.AddQuantityToCart(ctx, product, 1)
}

func (s *StoreUseCase) AddQuantityToCart(ctx context.Context, product entity.Product, quantity int) {
	if quantity < 1 {
		return
	}

	s.mutateCart(ctx, func(cart []entity.CartItem) []entity.CartItem {
		for i := range cart {
			if cart[i].ID == product.ID {
				cart[i].Quantity += quantity
				return cart
			}
		}
		return append(cart, entity.CartItem{Product: product.Clone(), Quantity: quantity})
	})
}

// RemoveFromCart drops the whole line for productID regardless of quantity.
func (s *StoreUseCase) RemoveFromCart(ctx context.Context, productID int64) {
	s.mutateCart(ctx, func(cart []entity.CartItem) []entity.CartItem {
		kept := cart[:0]
		for _, item := range cart {
			if item.ID != productID {
				kept = append(kept, item)
			}
		}
		return kept
	})
}

// DecrementCartItem lowers the quantity by one and drops the line at zero.
func (s *StoreUseCase) DecrementCartItem(ctx context.Context, productID int64) {
	s.mutateCart(ctx, func(cart []entity.CartItem) []entity.CartItem {
		for i := range cart {
			if cart[i].ID != productID {
				continue
			}
			if cart[i].Quantity > 1 {
				cart[i].Quantity--
				return cart
			}
			return append(cart[:i], cart[i+1:]...)
		}
		return cart
	})
}

func (s *StoreUseCase) ClearCart(ctx context.Context) {
	s.mutateCart(ctx, func([]entity.CartItem) []entity.CartItem {
		return nil
	})
}

func (s *StoreUseCase) Cart() []entity.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCart(s.cart)
}

// CartTotal is recomputed on every call.
func (s *StoreUseCase) CartTotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cartTotal(s.cart)
}

func (s *StoreUseCase) ShippingProgress() entity.ShippingProgress {
	total := s.CartTotal()
	return entity.ShippingProgress{
		Threshold: entity.FreeShippingThreshold,
		Percent:   math.Min(total/entity.FreeShippingThreshold*100, 100),
		Remaining: math.Max(entity.FreeShippingThreshold-total, 0),
	}
}

// Upsells suggests catalog products that are not in the cart yet.
func (s *StoreUseCase) Upsells(limit int) []entity.Product {
	if limit <= 0 {
		limit = 2
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	inCart := make(map[int64]bool, len(s.cart))
	for _, item := range s.cart {
		inCart[item.ID] = true
	}

	var out []entity.Product
	for _, p := range s.products {
		if inCart[p.ID] {
			continue
		}
		out = append(out, p.Clone())
		if len(out) == limit {
			break
		}
	}
	return out
}

// mutateCart applies fn to a private copy of the cart, publishes it and
// writes it through to local storage. Saves are ordered by version so an
// older snapshot never overwrites a newer one.
func (s *StoreUseCase) mutateCart(ctx context.Context, fn func([]entity.CartItem) []entity.CartItem) {
	s.mu.Lock()
	next := fn(cloneCart(s.cart))
	s.cart = next
	s.cartVersion++
	version := s.cartVersion
	snapshot := cloneCart(next)
	s.mu.Unlock()

	s.persistCart(ctx, snapshot, version)
	s.notifier.Notify(EventCartUpdated)
}

func (s *StoreUseCase) persistCart(ctx context.Context, snapshot []entity.CartItem, version uint64) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if version <= s.savedCart {
		return
	}
	if err := s.cartRepo.Save(ctx, snapshot); err != nil {
		logger.Error("Failed to persist cart: %v", err)
		return
	}
	s.savedCart = version
}

func cartTotal(items []entity.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}

func cloneCart(in []entity.CartItem) []entity.CartItem {
	if in == nil {
		return nil
	}
	out := make([]entity.CartItem, len(in))
	for i, item := range in {
		out[i] = item.Clone()
	}
	return out
}
