package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gretastore/internal/domain/entity"
	"gretastore/internal/usecase/usecasetest"
)

func TestAddToCartTwiceIncrementsSingleLine(t *testing.T) {
	h := newHarness(t)
	h.products.Items = catalogAB()
	s := h.start(t)
	ctx := context.Background()

	a := catalogAB()[0]
	s.AddToCart(ctx, a)
	s.AddToCart(ctx, a)

	cart := s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, a.ID, cart[0].ID)
	assert.Equal(t, 2, cart[0].Quantity)
}

func TestCartTotalExample(t *testing.T) {
	h := newHarness(t)
	h.products.Items = catalogAB()
	s := h.start(t)
	ctx := context.Background()

	a, b := catalogAB()[0], catalogAB()[1]
	s.AddToCart(ctx, a)
	s.AddToCart(ctx, a)
	s.AddToCart(ctx, b)

	assert.InDelta(t, 11.50, s.CartTotal(), 1e-9)
}

func TestRemoveFromCartRemovesWholeLine(t *testing.T) {
	h := newHarness(t)
	h.products.Items = catalogAB()
	s := h.start(t)
	ctx := context.Background()

	a, b := catalogAB()[0], catalogAB()[1]
	s.AddQuantityToCart(ctx, a, 3)
	s.AddToCart(ctx, b)

	s.RemoveFromCart(ctx, a.ID)

	cart := s.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, b.ID, cart[0].ID)
}

func TestDecrementCartItem(t *testing.T) {
	h := newHarness(t)
	h.products.Items = catalogAB()
	s := h.start(t)
	ctx := context.Background()

	a := catalogAB()[0]
	s.AddQuantityToCart(ctx, a, 2)

	s.DecrementCartItem(ctx, a.ID)
	require.Len(t, s.Cart(), 1)
	assert.Equal(t, 1, s.Cart()[0].Quantity)

	s.DecrementCartItem(ctx, a.ID)
	assert.Empty(t, s.Cart())

	s.DecrementCartItem(ctx, 404)
	assert.Empty(t, s.Cart())
}

func TestCartSurvivesReload(t *testing.T) {
	h := newHarness(t)
	h.products.Items = catalogAB()
	s := h.start(t)
	ctx := context.Background()

	a, b := catalogAB()[0], catalogAB()[1]
	s.AddQuantityToCart(ctx, a, 2)
	s.AddToCart(ctx, b)
	before := s.Cart()

	reloaded := NewStoreUseCase(StoreDeps{
		Products: h.products,
		Orders:   h.orders,
		Profiles: h.profiles,
		Cart:     h.cart,
		Auth:     usecasetest.NewAuth(),
	})
	reloaded.Init(ctx)
	defer reloaded.Close()

	assert.Equal(t, before, reloaded.Cart())
}

func TestEveryCartMutationIsWrittenThrough(t *testing.T) {
	h := newHarness(t)
	h.products.Items = catalogAB()
	s := h.start(t)
	ctx := context.Background()

	a := catalogAB()[0]
	s.AddToCart(ctx, a)
	s.AddToCart(ctx, a)
	s.RemoveFromCart(ctx, a.ID)
	s.ClearCart(ctx)

	assert.Equal(t, 4, h.cart.Saves)
	assert.Equal(t, 4, h.notifier.Count(EventCartUpdated))
}

func TestCartLoadFailureStartsEmpty(t *testing.T) {
	h := newHarness(t)
	h.products.Items = catalogAB()
	h.cart.LoadErr = usecasetest.ErrBackendDown

	s := h.start(t)

	assert.Empty(t, s.Cart())
	assert.Zero(t, s.CartTotal())
}

func TestCartSaveFailureKeepsMemoryState(t *testing.T) {
	h := newHarness(t)
	h.products.Items = catalogAB()
	h.cart.SaveErr = usecasetest.ErrBackendDown
	s := h.start(t)

	s.AddToCart(context.Background(), catalogAB()[0])

	assert.Len(t, s.Cart(), 1)
}

func TestShippingProgress(t *testing.T) {
	h := newHarness(t)
	h.products.Items = []entity.Product{{ID: 1, Name: "Caja", Price: 25}}
	s := h.start(t)
	ctx := context.Background()

	s.AddQuantityToCart(ctx, s.Products()[0], 2)
	progress := s.ShippingProgress()
	assert.InDelta(t, 50, progress.Percent, 1e-9)
	assert.InDelta(t, 50, progress.Remaining, 1e-9)

	s.AddQuantityToCart(ctx, s.Products()[0], 4)
	progress = s.ShippingProgress()
	assert.InDelta(t, 100, progress.Percent, 1e-9)
	assert.Zero(t, progress.Remaining)
}

func TestUpsellsSkipCartProducts(t *testing.T) {
	h := newHarness(t)
	s := h.start(t)

	catalog := s.Products()
	s.AddToCart(context.Background(), catalog[0])

	upsells := s.Upsells(0)
	require.Len(t, upsells, 2)
	assert.Equal(t, catalog[1].ID, upsells[0].ID)
	assert.Equal(t, catalog[2].ID, upsells[1].ID)
}
